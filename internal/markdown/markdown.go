// Package markdown renders content document bodies to HTML.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// md is shared across renders; a goldmark.Markdown is safe for
// concurrent use once constructed.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	// Documents may embed literal HTML that the layout is expected to
	// carry through untouched.
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// Render converts a Markdown body (front matter already removed) to HTML.
func Render(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := md.Convert(body, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
