package weft

import "testing"

func TestIsSafeURL(t *testing.T) {
	safe := []struct {
		name string
		url  string
	}{
		{"http", "http://example.com"},
		{"http with query", "http://example.com/path?query=1"},
		{"http with fragment", "http://example.com/path#fragment"},
		{"http with query and fragment", "http://example.com/path?query=1#fragment"},
		{"https", "https://example.com"},
		{"https with query", "https://example.com/path?query=1"},
		{"mailto", "mailto:test@example.com"},
		{"tel", "tel:+1234567890"},
		{"relative path", "path/to/page"},
		{"relative slash", "/path/to/page"},
		{"relative dot", "./relative/path"},
		{"relative dotdot", "../relative/path"},
		{"relative query", "?query=value"},
		{"relative fragment", "#section"},
		{"bare hostname", "example.com"},
		{"bare hostname with path", "example.com/path"},
		{"html specials in query", `https://example.com/path?a=1&b="2"`},
		{"fullwidth confusable is relative", "ｊａｖａｓｃｒｉｐｔ:alert(1)"},
		{"scheme-like after slash", "/redirect?to=javascript:alert(1)"},
	}
	for _, tt := range safe {
		t.Run("safe "+tt.name, func(t *testing.T) {
			if !IsSafeURL(tt.url) {
				t.Errorf("expected %q to be safe", tt.url)
			}
		})
	}

	unsafe := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"javascript", "javascript:alert(1)"},
		{"javascript leading whitespace", "  javascript:alert(1)"},
		{"javascript inner whitespace", "javascript  :alert(1)"},
		{"javascript control char", "java\x00script:alert(1)"},
		{"javascript newline", "java\nscript:alert(1)"},
		{"javascript tab", "java\tscript:alert(1)"},
		{"javascript mixed case", "JaVaScRiPt:alert(1)"},
		{"javascript upper case", "JAVASCRIPT:alert(1)"},
		{"javascript percent encoded", "javascript%3Aalert(1)"},
		{"javascript html entity", "java&#115;cript:alert(1)"},
		{"javascript entity colon", "javascript&colon;alert(1)"},
		{"javascript double percent encoded", "%256a%2561%2576%2561%2573%2563%2572%2569%2570%2574%253aalert(1)"},
		{"data", "data:text/html,<script>alert(1)</script>"},
		{"vbscript", "vbscript:msgbox(1)"},
		{"file", "file:///etc/passwd"},
		{"blob", "blob:https://example.com/550e8400-e29b-41d4-a716-446655440000"},
		{"about", "about:blank"},
		{"ws", "ws://example.com/socket"},
		{"wss", "wss://example.com/socket"},
		{"ftp", "ftp://example.com/file"},
		{"whitespace only", "   "},
	}
	for _, tt := range unsafe {
		t.Run("unsafe "+tt.name, func(t *testing.T) {
			if IsSafeURL(tt.url) {
				t.Errorf("expected %q to be unsafe", tt.url)
			}
		})
	}
}

func TestEscapeURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"http passes", "http://example.com", "http://example.com"},
		{"https passes", "https://example.com/path?query=1", "https://example.com/path?query=1"},
		{"mailto passes", "mailto:test@example.com", "mailto:test@example.com"},
		{"tel passes", "tel:+1234567890", "tel:+1234567890"},
		{"relative passes", "/path/to/page", "/path/to/page"},
		{"ampersand escaped", "https://example.com/path?a=1&b=2", "https://example.com/path?a=1&amp;b=2"},
		{"quotes escaped", `https://example.com/path?q="test"`, "https://example.com/path?q=&quot;test&quot;"},
		{"angle brackets escaped", "https://example.com/<path>", "https://example.com/&lt;path&gt;"},
		{"empty blocked", "", "about:invalid"},
		{"javascript blocked", "javascript:alert(1)", "about:invalid"},
		{"data blocked", "data:text/html,<script>alert(1)</script>", "about:invalid"},
		{"encoded javascript blocked", "javascript%3Aalert(1)", "about:invalid"},
		{"entity javascript blocked", "java&#115;cript:alert(1)", "about:invalid"},
		{"fullwidth passes as relative", "ｊａｖａｓｃｒｉｐｔ:alert(1)", "ｊａｖａｓｃｒｉｐｔ:alert(1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeURL(tt.url); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestIsURLAttribute(t *testing.T) {
	urlAttrs := []string{
		"href", "src", "action", "formaction", "poster", "cite",
		"data", "profile", "manifest", "icon", "background", "xlink:href",
	}
	for _, name := range urlAttrs {
		if !IsURLAttribute(name) {
			t.Errorf("expected %q to be a URL attribute", name)
		}
	}
	if !IsURLAttribute("HREF") {
		t.Error("expected the check to ignore case")
	}
	for _, name := range []string{"class", "id", "title", "alt", "hx-target", "datakey"} {
		if IsURLAttribute(name) {
			t.Errorf("expected %q not to be a URL attribute", name)
		}
	}
}

func TestPercentDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no escapes", "plain", "plain"},
		{"simple", "%41%42", "AB"},
		{"lowercase hex", "%6a", "j"},
		{"incomplete kept", "100%", "100%"},
		{"invalid hex kept", "%zz", "%zz"},
		{"trailing percent pair", "a%4", "a%4"},
		{"double encoded single pass", "%2541", "%41"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := percentDecode(tt.input); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
