package playlist

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Recognized manifest tags. Unrecognized tag lines are ignored so that
// playlists using newer tags still parse.
const (
	tagVersion        = "#EXT-X-VERSION:"
	tagStreamInf      = "#EXT-X-STREAM-INF:"
	tagTargetDuration = "#EXT-X-TARGETDURATION:"
	tagSegmentInf     = "#EXTINF:"
)

// Stream-info attribute names.
const (
	attrBandwidth  = "BANDWIDTH"
	attrCodecs     = "CODECS"
	attrResolution = "RESOLUTION"
	attrFrameRate  = "FRAME-RATE"
	attrVideoRange = "VIDEO-RANGE"
)

// ParseMaster parses master playlist text into a MasterPlaylist.
// A version tag is mandatory; variants are returned in declaration order.
// An unparseable version value is ignored (last valid one wins).
func ParseMaster(data []byte) (*MasterPlaylist, error) {
	lines, err := splitLines(data)
	if err != nil {
		return nil, err
	}

	master := &MasterPlaylist{}
	versionSeen := false

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		switch {
		case strings.HasPrefix(line, tagVersion):
			if v, err := strconv.Atoi(strings.TrimPrefix(line, tagVersion)); err == nil {
				master.Version = v
				versionSeen = true
			}
		case strings.HasPrefix(line, tagStreamInf):
			attrs := ParseAttributeList(strings.TrimPrefix(line, tagStreamInf))
			if i+1 >= len(lines) || lines[i+1] == "" {
				return nil, fmt.Errorf("stream-info at line %d: %w", i+1, ErrMissingURI)
			}
			i++
			variant, err := buildVariant(attrs, lines[i])
			if err != nil {
				return nil, err
			}
			master.Variants = append(master.Variants, variant)
		}
	}

	if !versionSeen {
		return nil, ErrMissingVersion
	}
	return master, nil
}

// ParseMedia parses media playlist text into a MediaPlaylist.
// Version and target-duration tags are mandatory; segments are returned in
// declaration order, which is playback order.
func ParseMedia(data []byte) (*MediaPlaylist, error) {
	lines, err := splitLines(data)
	if err != nil {
		return nil, err
	}

	media := &MediaPlaylist{}
	versionSeen := false
	targetSeen := false

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		switch {
		case strings.HasPrefix(line, tagVersion):
			if v, err := strconv.Atoi(strings.TrimPrefix(line, tagVersion)); err == nil {
				media.Version = v
				versionSeen = true
			}
		case strings.HasPrefix(line, tagTargetDuration):
			if d, err := strconv.Atoi(strings.TrimPrefix(line, tagTargetDuration)); err == nil {
				media.TargetDuration = d
				targetSeen = true
			}
		case strings.HasPrefix(line, tagSegmentInf):
			// The tag value is "<duration>,<optional title>".
			value := strings.TrimPrefix(line, tagSegmentInf)
			if idx := strings.IndexByte(value, ','); idx >= 0 {
				value = value[:idx]
			}
			duration, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("segment duration at line %d: %w", i+1, ErrInvalidFormat)
			}
			if i+1 >= len(lines) || lines[i+1] == "" {
				return nil, fmt.Errorf("segment at line %d: %w", i+1, ErrMissingURI)
			}
			i++
			media.Segments = append(media.Segments, Segment{Duration: duration, URI: lines[i]})
		}
	}

	if !versionSeen {
		return nil, ErrMissingVersion
	}
	if !targetSeen {
		return nil, ErrMissingTargetDuration
	}
	return media, nil
}

// buildVariant constructs a VariantStream from a stream-info attribute map
// and the URI on the following line. BANDWIDTH and CODECS are mandatory;
// a malformed RESOLUTION or FRAME-RATE is dropped rather than rejected.
func buildVariant(attrs map[string]string, uri string) (VariantStream, error) {
	bandwidth, err := strconv.ParseInt(attrs[attrBandwidth], 10, 64)
	if err != nil {
		return VariantStream{}, fmt.Errorf("%s: %w", attrBandwidth, ErrInvalidAttribute)
	}
	codecs, ok := attrs[attrCodecs]
	if !ok {
		return VariantStream{}, fmt.Errorf("%s: %w", attrCodecs, ErrInvalidAttribute)
	}

	variant := VariantStream{
		Bandwidth:  bandwidth,
		Codecs:     codecs,
		VideoRange: attrs[attrVideoRange],
		URI:        uri,
	}

	if res, ok := parseResolution(attrs[attrResolution]); ok {
		variant.Resolution = &res
	}
	if fr, err := strconv.ParseFloat(attrs[attrFrameRate], 64); err == nil {
		variant.FrameRate = fr
	}

	return variant, nil
}

// parseResolution parses "<width>x<height>". Malformed values report !ok.
func parseResolution(v string) (Resolution, bool) {
	w, h, found := strings.Cut(v, "x")
	if !found {
		return Resolution{}, false
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return Resolution{}, false
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return Resolution{}, false
	}
	return Resolution{Width: width, Height: height}, true
}

// splitLines validates the input as UTF-8 text and splits it into trimmed
// lines. Callers index into the result, so blank lines are kept in place.
func splitLines(data []byte) ([]string, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("playlist is not valid UTF-8: %w", ErrInvalidFormat)
	}
	raw := strings.Split(string(data), "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSpace(l)
	}
	return lines, nil
}
