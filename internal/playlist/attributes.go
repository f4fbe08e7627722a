package playlist

import "strings"

// ParseAttributeList parses the comma-separated attribute list that follows
// tags like #EXT-X-STREAM-INF, e.g.
//
//	BANDWIDTH=1727000,CODECS="avc1.64001f,mp4a.40.2",RESOLUTION=1280x720
//
// Commas inside double quotes do not split pairs. Surrounding quotes are
// stripped from values exactly once. Duplicate keys resolve last-write-wins.
// The scan is deliberately lenient: malformed input (stray commas inside a
// key, unterminated quotes) is consumed best-effort rather than rejected.
func ParseAttributeList(s string) map[string]string {
	attrs := make(map[string]string)

	var key, token strings.Builder
	inQuotes := false
	parsingKey := true

	flush := func() {
		if key.Len() == 0 {
			return
		}
		attrs[key.String()] = unquote(token.String())
		key.Reset()
		token.Reset()
	}

	for _, r := range s {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			token.WriteRune(r)
		case r == '=' && !inQuotes && parsingKey:
			key.WriteString(token.String())
			token.Reset()
			parsingKey = false
		case r == ',' && !inQuotes && !parsingKey:
			flush()
			parsingKey = true
		default:
			token.WriteRune(r)
		}
	}
	// The final pair has no trailing comma.
	flush()

	return attrs
}

// unquote strips one matching pair of surrounding double quotes, if present.
func unquote(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}
