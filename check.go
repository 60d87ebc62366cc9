package neur

import (
	"fmt"
	"log/slog"
	"os"
	"path"

	"github.com/neurhq/neur/internal/frontmatter"
	"github.com/neurhq/neur/internal/styles"
	"github.com/neurhq/neur/internal/templates"
)

// CheckResult contains everything check mode found in a source tree.
type CheckResult struct {
	FilesChecked int
	Issues       []Issue
	ErrorCount   int
	WarningCount int
}

// Check validates a source tree without writing any output: every
// stylesheet, markup template, and document front matter is parsed, and
// problems are collected instead of aborting at the first one. Documents
// that would fall back to the built-in layout are flagged as warnings.
func Check(cfg Config) (*CheckResult, error) {
	p, err := newPipeline(cfg, slog.Default())
	if err != nil {
		return nil, err
	}
	if err := p.discover(); err != nil {
		return nil, err
	}

	res := &CheckResult{FilesChecked: len(p.files) + len(p.partials)}

	for _, rel := range p.partials {
		res.add(p.checkMarkup(rel))
	}
	for _, f := range p.files {
		switch f.kind {
		case kindStylesheet:
			res.add(p.checkStylesheet(f.rel))
		case kindMarkup:
			res.add(p.checkMarkup(f.rel))
		case kindDocument:
			res.add(p.checkDocument(f.rel)...)
		}
	}
	return res, nil
}

func (r *CheckResult) add(issues ...Issue) {
	for _, issue := range issues {
		if issue == (Issue{}) {
			continue
		}
		r.Issues = append(r.Issues, issue)
		switch issue.Severity {
		case SeverityError:
			r.ErrorCount++
		case SeverityWarning:
			r.WarningCount++
		}
	}
}

func (p *Pipeline) checkStylesheet(rel string) Issue {
	src, err := os.ReadFile(p.src(rel))
	if err != nil {
		return ioIssue(p.src(rel), err)
	}
	if _, err := styles.Transform(src, false, p.targets); err != nil {
		issue := Issue{
			Text:     fmt.Sprintf("stylesheet does not parse: %v", err),
			Severity: SeverityError,
			Pos:      IssuePos{Filename: p.src(rel)},
		}
		if line, col, ok := styles.ErrorPosition(err); ok {
			issue.Pos.Line, issue.Pos.Column = line, col
		}
		return issue
	}
	return Issue{}
}

func (p *Pipeline) checkMarkup(rel string) Issue {
	if err := templates.CheckFile(p.src(rel), rel); err != nil {
		return Issue{
			Text:     fmt.Sprintf("template does not parse: %v", err),
			Severity: SeverityError,
			Pos:      IssuePos{Filename: p.src(rel)},
		}
	}
	return Issue{}
}

func (p *Pipeline) checkDocument(rel string) []Issue {
	src, err := os.ReadFile(p.src(rel))
	if err != nil {
		return []Issue{ioIssue(p.src(rel), err)}
	}

	var issues []Issue
	if _, _, _, err := frontmatter.Split(src); err != nil {
		issues = append(issues, Issue{
			Text:     fmt.Sprintf("front matter does not parse: %v", err),
			Severity: SeverityError,
			Pos:      IssuePos{Filename: p.src(rel), Line: 1},
		})
	}
	if p.layouts.nearest(path.Dir(rel)) == "" {
		issues = append(issues, Issue{
			Text:     "no layout registered for this document; the built-in fallback will be used",
			Severity: SeverityWarning,
			Pos:      IssuePos{Filename: p.src(rel)},
		})
	}
	return issues
}

func ioIssue(path string, err error) Issue {
	return Issue{
		Text:     fmt.Sprintf("cannot read file: %v", err),
		Severity: SeverityError,
		Pos:      IssuePos{Filename: path},
	}
}
