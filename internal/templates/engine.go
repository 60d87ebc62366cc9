// Package templates holds the markup-rendering engine.
//
// Every markup file in the source tree is parsed into a single namespace
// keyed by its slash-separated path relative to the source root, so
// templates can invoke each other by that key regardless of the order
// the pipeline visits them in.
//
// Escaping is per value rather than per engine: interpolations are
// contextually autoescaped by html/template, and the one value that must
// stay raw, the rendered document body under ContentKey, is injected as
// template.HTML. No shared escaping mode is ever toggled.
package templates

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// LayoutName is the reserved filename marking a directory as providing a
// layout for the documents in it and below it.
const LayoutName = "_template.html"

// ContentKey is the reserved context key holding a document's rendered
// body.
const ContentKey = "content"

// fallback emits the document body alone when no ancestor layout exists.
const fallback = "{{.content}}"

// Engine renders markup templates. Safe for concurrent rendering once
// loaded.
type Engine struct {
	root     *template.Template
	fallback *template.Template
	loaded   int
}

// Load parses every markup file under sourceDir. Partials are loaded
// like any other template; whether they produce output is the caller's
// concern. Files whose source-relative name skip reports true for are
// left out of the namespace entirely (nil skips nothing).
func Load(sourceDir string, skip func(rel string) bool) (*Engine, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(sourceDir, "**", "*.html"))
	if err != nil {
		return nil, fmt.Errorf("scanning %s for templates: %w", sourceDir, err)
	}

	root := template.New("")
	loaded := 0
	for _, match := range matches {
		rel, err := filepath.Rel(sourceDir, match)
		if err != nil {
			return nil, err
		}
		name := filepath.ToSlash(rel)
		if skip != nil && skip(name) {
			continue
		}
		src, err := os.ReadFile(match)
		if err != nil {
			return nil, err
		}
		if _, err := root.New(name).Parse(string(src)); err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		loaded++
	}

	return &Engine{
		root:     root,
		fallback: template.Must(template.New("fallback").Parse(fallback)),
		loaded:   loaded,
	}, nil
}

// Loaded reports how many templates the engine holds.
func (e *Engine) Loaded() int { return e.loaded }

// Has reports whether a template with the given name was loaded.
func (e *Engine) Has(name string) bool { return e.root.Lookup(name) != nil }

// Render executes the named template. Pages without front matter pass an
// empty context.
func (e *Engine) Render(w io.Writer, name string, ctx map[string]any) error {
	tpl := e.root.Lookup(name)
	if tpl == nil {
		return fmt.Errorf("template %q is not defined", name)
	}
	if ctx == nil {
		ctx = map[string]any{}
	}
	return tpl.Execute(w, ctx)
}

// RenderFallback renders the context through the built-in minimal
// template, which emits only the document body.
func (e *Engine) RenderFallback(w io.Writer, ctx map[string]any) error {
	return e.fallback.Execute(w, ctx)
}

// Context assembles the rendering context for a document: the rendered
// body goes in first under ContentKey as raw HTML, then the front-matter
// pairs. ContentKey is reserved: a front-matter key by that name is
// dropped so a document cannot shadow its own body.
func Context(body []byte, fields map[string]any) map[string]any {
	ctx := make(map[string]any, len(fields)+1)
	ctx[ContentKey] = template.HTML(body)
	for k, v := range fields {
		if k == ContentKey {
			continue
		}
		ctx[k] = v
	}
	return ctx
}

// CheckFile parses a single markup file standalone, reporting syntax
// errors without requiring the rest of the tree to load.
func CheckFile(path, name string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = template.New(name).Parse(string(src))
	return err
}
