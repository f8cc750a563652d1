package weft

// EscapeMode selects how a written value is escaped.
type EscapeMode int

const (
	// ModeDefault resolves from context: URL attributes get ModeURL,
	// everything else gets ModeHTML.
	ModeDefault EscapeMode = iota
	// ModeHTML escapes the five HTML special characters.
	ModeHTML
	// ModeRaw emits the value verbatim.
	ModeRaw
	// ModeURL validates the value against the URL scheme allow-list and
	// HTML-escapes the survivor.
	ModeURL
)

func (m EscapeMode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModeHTML:
		return "html"
	case ModeRaw:
		return "raw"
	case ModeURL:
		return "url"
	default:
		return "invalid"
	}
}

// htmlReplacement returns the entity for an HTML special byte, or "" when
// the byte needs no escaping. Only ASCII bytes are special, so UTF-8
// continuation bytes pass through untouched.
func htmlReplacement(b byte) string {
	switch b {
	case '&':
		return "&amp;"
	case '<':
		return "&lt;"
	case '>':
		return "&gt;"
	case '"':
		return "&quot;"
	case '\'':
		return "&#39;"
	default:
		return ""
	}
}

// EscapeHTML replaces the five HTML special characters in s with their
// entity references. When s contains none of them the input is returned
// unchanged without allocating.
func EscapeHTML(s string) string {
	for i := 0; i < len(s); i++ {
		if htmlReplacement(s[i]) != "" {
			return string(appendEscapedHTML(make([]byte, 0, len(s)+8), s))
		}
	}
	return s
}

// appendEscapedHTML appends s to dst, escaping HTML specials. Clean runs
// between specials are copied in single appends.
func appendEscapedHTML(dst []byte, s string) []byte {
	start := 0
	for i := 0; i < len(s); i++ {
		rep := htmlReplacement(s[i])
		if rep == "" {
			continue
		}
		dst = append(dst, s[start:i]...)
		dst = append(dst, rep...)
		start = i + 1
	}
	return append(dst, s[start:]...)
}

// appendEscaped appends s to dst under the given mode. ModeDefault is
// resolved by the caller before this point.
func appendEscaped(dst []byte, s string, mode EscapeMode) []byte {
	switch mode {
	case ModeRaw:
		return append(dst, s...)
	case ModeURL:
		return append(dst, EscapeURL(s)...)
	default:
		return appendEscapedHTML(dst, s)
	}
}
