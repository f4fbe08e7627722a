package playlist

import "errors"

var (
	// ErrInvalidFormat is returned when the input is not valid playlist text
	// or a mandatory numeric field cannot be parsed.
	ErrInvalidFormat = errors.New("invalid playlist format")

	// ErrMissingVersion is returned when no #EXT-X-VERSION tag was seen.
	ErrMissingVersion = errors.New("missing #EXT-X-VERSION tag")

	// ErrMissingURI is returned when a tag that must be followed by a URI
	// line reaches end of input or a blank line instead.
	ErrMissingURI = errors.New("missing URI line after tag")

	// ErrMissingTargetDuration is returned when a media playlist has no
	// #EXT-X-TARGETDURATION tag.
	ErrMissingTargetDuration = errors.New("missing #EXT-X-TARGETDURATION tag")

	// ErrInvalidAttribute is returned when a required stream-info attribute
	// is absent or malformed.
	ErrInvalidAttribute = errors.New("invalid or missing attribute")

	// ErrNoVariantFound is returned by SelectVariant when no variant
	// satisfies the selection policy.
	ErrNoVariantFound = errors.New("no matching variant found")
)
