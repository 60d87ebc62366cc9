package neur

import "fmt"

// The pipeline fails fast: the first error of any kind aborts the run
// and partial output on disk is left as-is. Errors raised by a specific
// source file carry its path so the user can locate the broken input.

// StyleError reports a stylesheet that failed to parse or print.
type StyleError struct {
	Path string
	Err  error
}

func (e *StyleError) Error() string {
	return fmt.Sprintf("while transforming the stylesheet at %s: %v", e.Path, e.Err)
}

func (e *StyleError) Unwrap() error { return e.Err }

// FrontMatterError reports a document whose front matter could not be
// parsed.
type FrontMatterError struct {
	Path string
	Err  error
}

func (e *FrontMatterError) Error() string {
	return fmt.Sprintf("while parsing the front matter from %s: %v", e.Path, e.Err)
}

func (e *FrontMatterError) Unwrap() error { return e.Err }

// TemplateError reports a template that failed to load or render. Name
// is the template's source-relative path, or "fallback" for the built-in
// layout.
type TemplateError struct {
	Name string
	Err  error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("while rendering the template %s: %v", e.Name, e.Err)
}

func (e *TemplateError) Unwrap() error { return e.Err }
