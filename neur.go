// Package neur implements a small static site generator.
//
// neur mirrors a source directory tree into an output directory,
// transforming the file types it recognizes and copying everything else
// byte for byte:
//
//   - .css  stylesheets are parsed, cleaned up, and reprinted
//   - .html markup is rendered through the template engine
//   - .md   documents are rendered to HTML and wrapped in a layout
//
// Any other file (images, scripts, fonts) passes through untouched at
// the mirrored path.
//
// # Layouts and partials
//
// Markup files whose name starts with exactly one underscore are
// partials: they join the template namespace but produce no output file.
// Two or more leading underscores put a name back in page territory. A
// partial named _template.html registers its directory as providing a
// layout: every document in that directory, or in a descendant directory
// with no nearer layout, renders through it with the document body bound
// to the reserved "content" key and the document's front matter filling
// the rest of the context.
//
// # Usage
//
//	result, err := neur.Build(neur.Config{
//		Source: "src",
//		Output: "dist",
//		Minify: true,
//	})
//
// Check validates a source tree without writing output:
//
//	report, err := neur.Check(neur.Config{Source: "src"})
//
// The neur CLI wraps both; see cmd/neur.
package neur
