package playlist

import (
	"errors"
	"testing"
)

const masterFixture = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-STREAM-INF:BANDWIDTH=1727000,CODECS="avc1",RESOLUTION=1280x720
variant_720p.m3u8
`

func TestParseMaster_single_variant(t *testing.T) {
	master, err := ParseMaster([]byte(masterFixture))
	if err != nil {
		t.Fatalf("ParseMaster: %v", err)
	}
	if master.Version != 3 {
		t.Errorf("version: got %d want 3", master.Version)
	}
	if len(master.Variants) != 1 {
		t.Fatalf("expected 1 variant, got %d", len(master.Variants))
	}

	v := master.Variants[0]
	if v.Bandwidth != 1727000 {
		t.Errorf("bandwidth: got %d", v.Bandwidth)
	}
	if v.Codecs != "avc1" {
		t.Errorf("codecs: got %q", v.Codecs)
	}
	if v.Resolution == nil || v.Resolution.Width != 1280 || v.Resolution.Height != 720 {
		t.Errorf("resolution: got %+v", v.Resolution)
	}
	if v.URI != "variant_720p.m3u8" {
		t.Errorf("uri: got %q", v.URI)
	}
}

func TestParseMaster_variant_order_preserved(t *testing.T) {
	input := "#EXT-X-VERSION:4\n" +
		"#EXT-X-STREAM-INF:BANDWIDTH=100,CODECS=\"avc1\"\n" +
		"low.m3u8\n" +
		"#EXT-X-STREAM-INF:BANDWIDTH=200,CODECS=\"avc1\",FRAME-RATE=29.97,VIDEO-RANGE=SDR\n" +
		"high.m3u8\n"

	master, err := ParseMaster([]byte(input))
	if err != nil {
		t.Fatalf("ParseMaster: %v", err)
	}
	if len(master.Variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(master.Variants))
	}
	if master.Variants[0].URI != "low.m3u8" || master.Variants[1].URI != "high.m3u8" {
		t.Errorf("variants out of order: %v, %v", master.Variants[0].URI, master.Variants[1].URI)
	}
	if master.Variants[1].FrameRate != 29.97 {
		t.Errorf("frame rate: got %v", master.Variants[1].FrameRate)
	}
	if master.Variants[1].VideoRange != "SDR" {
		t.Errorf("video range: got %q", master.Variants[1].VideoRange)
	}
}

func TestParseMaster_missing_version(t *testing.T) {
	input := "#EXTM3U\n#EXT-X-STREAM-INF:BANDWIDTH=100,CODECS=\"avc1\"\nv.m3u8\n"
	_, err := ParseMaster([]byte(input))
	if !errors.Is(err, ErrMissingVersion) {
		t.Errorf("expected ErrMissingVersion, got %v", err)
	}
}

func TestParseMaster_unparseable_version_ignored(t *testing.T) {
	input := "#EXT-X-VERSION:abc\n#EXT-X-VERSION:5\n"
	master, err := ParseMaster([]byte(input))
	if err != nil {
		t.Fatalf("ParseMaster: %v", err)
	}
	if master.Version != 5 {
		t.Errorf("version: got %d want 5", master.Version)
	}
}

func TestParseMaster_stream_inf_at_eof(t *testing.T) {
	input := "#EXT-X-VERSION:3\n#EXT-X-STREAM-INF:BANDWIDTH=100,CODECS=\"avc1\""
	_, err := ParseMaster([]byte(input))
	if !errors.Is(err, ErrMissingURI) {
		t.Errorf("expected ErrMissingURI, got %v", err)
	}
}

func TestParseMaster_stream_inf_blank_uri_line(t *testing.T) {
	input := "#EXT-X-VERSION:3\n#EXT-X-STREAM-INF:BANDWIDTH=100,CODECS=\"avc1\"\n\n"
	_, err := ParseMaster([]byte(input))
	if !errors.Is(err, ErrMissingURI) {
		t.Errorf("expected ErrMissingURI, got %v", err)
	}
}

func TestParseMaster_missing_bandwidth(t *testing.T) {
	input := "#EXT-X-VERSION:3\n#EXT-X-STREAM-INF:CODECS=\"avc1\"\nv.m3u8\n"
	_, err := ParseMaster([]byte(input))
	if !errors.Is(err, ErrInvalidAttribute) {
		t.Errorf("expected ErrInvalidAttribute, got %v", err)
	}
}

func TestParseMaster_missing_codecs(t *testing.T) {
	input := "#EXT-X-VERSION:3\n#EXT-X-STREAM-INF:BANDWIDTH=100\nv.m3u8\n"
	_, err := ParseMaster([]byte(input))
	if !errors.Is(err, ErrInvalidAttribute) {
		t.Errorf("expected ErrInvalidAttribute, got %v", err)
	}
}

func TestParseMaster_malformed_resolution_dropped(t *testing.T) {
	input := "#EXT-X-VERSION:3\n#EXT-X-STREAM-INF:BANDWIDTH=100,CODECS=\"avc1\",RESOLUTION=wide\nv.m3u8\n"
	master, err := ParseMaster([]byte(input))
	if err != nil {
		t.Fatalf("ParseMaster: %v", err)
	}
	if master.Variants[0].Resolution != nil {
		t.Errorf("malformed resolution should be dropped, got %+v", master.Variants[0].Resolution)
	}
}

func TestParseMaster_unrecognized_tags_ignored(t *testing.T) {
	input := "#EXTM3U\n#EXT-X-VERSION:3\n#EXT-X-INDEPENDENT-SEGMENTS\n"
	master, err := ParseMaster([]byte(input))
	if err != nil {
		t.Fatalf("ParseMaster: %v", err)
	}
	if len(master.Variants) != 0 {
		t.Errorf("expected no variants, got %d", len(master.Variants))
	}
}

func TestParseMaster_invalid_utf8(t *testing.T) {
	_, err := ParseMaster([]byte{0xff, 0xfe, 0xfd})
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}

const mediaFixture = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:6
#EXTINF:5.96,
seg_000.ts
#EXTINF:6.0,title
seg_001.ts
#EXTINF:4.5,
seg_002.ts
#EXT-X-ENDLIST
`

func TestParseMedia_segments_in_order(t *testing.T) {
	media, err := ParseMedia([]byte(mediaFixture))
	if err != nil {
		t.Fatalf("ParseMedia: %v", err)
	}
	if media.Version != 3 || media.TargetDuration != 6 {
		t.Errorf("scalars: version=%d targetDuration=%d", media.Version, media.TargetDuration)
	}
	if len(media.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(media.Segments))
	}

	wantURIs := []string{"seg_000.ts", "seg_001.ts", "seg_002.ts"}
	wantDurations := []float64{5.96, 6.0, 4.5}
	for i, seg := range media.Segments {
		if seg.URI != wantURIs[i] {
			t.Errorf("segment %d: uri %q want %q", i, seg.URI, wantURIs[i])
		}
		if seg.Duration != wantDurations[i] {
			t.Errorf("segment %d: duration %v want %v", i, seg.Duration, wantDurations[i])
		}
	}
}

func TestParseMedia_missing_target_duration(t *testing.T) {
	input := "#EXT-X-VERSION:3\n#EXTINF:2.0,\nseg.ts\n"
	_, err := ParseMedia([]byte(input))
	if !errors.Is(err, ErrMissingTargetDuration) {
		t.Errorf("expected ErrMissingTargetDuration, got %v", err)
	}
}

func TestParseMedia_missing_version(t *testing.T) {
	input := "#EXT-X-TARGETDURATION:6\n#EXTINF:2.0,\nseg.ts\n"
	_, err := ParseMedia([]byte(input))
	if !errors.Is(err, ErrMissingVersion) {
		t.Errorf("expected ErrMissingVersion, got %v", err)
	}
}

func TestParseMedia_unparseable_duration(t *testing.T) {
	input := "#EXT-X-VERSION:3\n#EXT-X-TARGETDURATION:6\n#EXTINF:abc,\nseg.ts\n"
	_, err := ParseMedia([]byte(input))
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestParseMedia_segment_at_eof(t *testing.T) {
	input := "#EXT-X-VERSION:3\n#EXT-X-TARGETDURATION:6\n#EXTINF:2.0,"
	_, err := ParseMedia([]byte(input))
	if !errors.Is(err, ErrMissingURI) {
		t.Errorf("expected ErrMissingURI, got %v", err)
	}
}
