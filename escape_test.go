package weft

import "testing"

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Hello, World!", "Hello, World!"},
		{"empty", "", ""},
		{"ampersand", "a & b", "a &amp; b"},
		{"less than", "a < b", "a &lt; b"},
		{"greater than", "a > b", "a &gt; b"},
		{"double quotes", `He said "hello"`, "He said &quot;hello&quot;"},
		{"single quotes", "It's fine", "It&#39;s fine"},
		{"all specials", `&<>"'`, "&amp;&lt;&gt;&quot;&#39;"},
		{"script tag", "<script>alert('xss')</script>", "&lt;script&gt;alert(&#39;xss&#39;)&lt;/script&gt;"},
		{"consecutive", "<<>>", "&lt;&lt;&gt;&gt;"},
		{"multibyte preserved", "héllo <wörld>", "héllo &lt;wörld&gt;"},
		{"emoji", "🎉 & 🎊", "🎉 &amp; 🎊"},
		{"already escaped doubles", "&amp;", "&amp;amp;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeHTML(tt.input); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestEscapeHTMLFastPath(t *testing.T) {
	// A clean string must come back unchanged, not as a copy.
	input := "no specials here"
	if got := EscapeHTML(input); got != input {
		t.Errorf("expected input unchanged, got %q", got)
	}
}

func TestEscapeModeString(t *testing.T) {
	tests := []struct {
		mode EscapeMode
		want string
	}{
		{ModeDefault, "default"},
		{ModeHTML, "html"},
		{ModeRaw, "raw"},
		{ModeURL, "url"},
		{EscapeMode(99), "invalid"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("mode %d: expected %q, got %q", int(tt.mode), tt.want, got)
		}
	}
}
