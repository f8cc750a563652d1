package devserver

import (
	"bytes"
	"io"

	"golang.org/x/net/html"
)

// reloadScript is injected before </body> in served HTML documents.
const reloadScript = `<script>(function () {
	var ws = new WebSocket("ws://" + location.host + "` + ReloadPath + `");
	ws.onmessage = function (ev) { if (ev.data === "reload") location.reload(); };
	ws.onclose = function () { setTimeout(function () { location.reload(); }, 1000); };
})();</script>`

// InjectReloadScript inserts the reload script before the document's
// closing body tag. The document is rewritten token by token so markup,
// scripts, and comments pass through byte for byte. Documents without a
// </body> get the script appended; documents the tokenizer cannot process
// are returned unchanged.
func InjectReloadScript(doc []byte) []byte {
	z := html.NewTokenizer(bytes.NewReader(doc))
	var out bytes.Buffer
	out.Grow(len(doc) + len(reloadScript))
	injected := false

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() != io.EOF {
				return doc
			}
			break
		}
		if tt == html.EndTagToken && !injected {
			if name, _ := z.TagName(); bytes.Equal(name, []byte("body")) {
				out.WriteString(reloadScript)
				injected = true
			}
		}
		out.Write(z.Raw())
	}
	if !injected {
		out.WriteString(reloadScript)
	}
	return out.Bytes()
}
