package weft

import (
	"html"
	"strings"
	"unicode"
	"unicode/utf8"
)

// blockedURLFallback replaces URLs that fail the allow-list check.
const blockedURLFallback = "about:invalid"

var urlAttributes = map[string]struct{}{
	"href":       {},
	"src":        {},
	"action":     {},
	"formaction": {},
	"poster":     {},
	"cite":       {},
	"data":       {},
	"profile":    {},
	"manifest":   {},
	"icon":       {},
	"background": {},
	"xlink:href": {},
}

// IsURLAttribute reports whether the attribute carries a URL and therefore
// defaults to ModeURL. The check is ASCII case-insensitive.
func IsURLAttribute(name string) bool {
	_, ok := urlAttributes[strings.ToLower(name)]
	return ok
}

// EscapeURL returns the HTML-escaped URL when it passes the allow-list
// check, and the replacement value "about:invalid" otherwise. It is
// important to still escape HTML specials after validation; the query
// string may legally carry them.
func EscapeURL(url string) string {
	if !IsSafeURL(url) {
		return blockedURLFallback
	}
	return EscapeHTML(url)
}

// IsSafeURL reports whether the URL is safe to emit into HTML. A URL is
// safe when, after decoding the usual smuggling layers, it either has no
// scheme (a relative reference) or its scheme is one of http, https,
// mailto, tel.
func IsSafeURL(url string) bool {
	if url == "" {
		return false
	}

	// Double percent decoding based on OWASP guidelines.
	decoded := percentDecode(url)
	if !utf8.ValidString(decoded) {
		return false
	}
	decoded = percentDecode(decoded)
	if !utf8.ValidString(decoded) {
		return false
	}
	decoded = html.UnescapeString(decoded)
	decoded = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, decoded)

	trimmed := strings.TrimSpace(decoded)
	if trimmed == "" {
		return false
	}

	scheme, ok := parseScheme(trimmed)
	if !ok {
		return true
	}
	return isAllowedScheme(scheme)
}

func isAllowedScheme(scheme string) bool {
	switch scheme {
	case "http", "https", "mailto", "tel":
		return true
	default:
		return false
	}
}

// parseScheme extracts the URL scheme, tolerating ASCII whitespace and
// control characters between the scheme token and the ':' (browsers do).
// Recognizes "javascript    :alert(1)" as "javascript". Returns false for
// relative references.
func parseScheme(s string) (string, bool) {
	colon := strings.IndexByte(s, ':')
	if colon < 0 {
		return "", false
	}

	// A '/', '?' or '#' before the ':' makes the URL relative.
	if i := strings.IndexAny(s, "/?#"); i >= 0 && i < colon {
		return "", false
	}

	prefix := s[:colon]
	if prefix == "" {
		return "", false
	}
	if !isASCIIAlpha(prefix[0]) {
		return "", false
	}

	tokenEnd := 1
	for tokenEnd < len(prefix) && isSchemeByte(prefix[tokenEnd]) {
		tokenEnd++
	}

	// Between token and colon only ASCII whitespace or controls may occur.
	for i := tokenEnd; i < len(prefix); i++ {
		if !isASCIIWhitespace(prefix[i]) && !isASCIIControl(prefix[i]) {
			return "", false
		}
	}
	return strings.ToLower(prefix[:tokenEnd]), true
}

func isASCIIAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isSchemeByte(b byte) bool {
	return isASCIIAlpha(b) || (b >= '0' && b <= '9') || b == '+' || b == '-' || b == '.'
}

func isASCIIWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	default:
		return false
	}
}

func isASCIIControl(b byte) bool {
	return b < 0x20 || b == 0x7f
}

// percentDecode decodes %XX sequences leniently: a '%' not followed by two
// hex digits is kept literally.
func percentDecode(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		if s[i] == '%' && i+2 < len(s) {
			hi, ok1 := unhex(s[i+1])
			lo, ok2 := unhex(s[i+2])
			if ok1 && ok2 {
				out = append(out, hi<<4|lo)
				i += 3
				continue
			}
		}
		out = append(out, s[i])
		i++
	}
	return string(out)
}

func unhex(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}
