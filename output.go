package neur

import (
	"encoding/json"
	"io"
	"time"
)

// OutputFormat selects how check results are written.
type OutputFormat string

const (
	// OutputIssues prints issues in golangci-lint style (the default).
	OutputIssues OutputFormat = "issues"
	// OutputJSON exports a machine-readable report.
	OutputJSON OutputFormat = "json"
)

// DetermineOutputFormat resolves the requested format; anything
// unrecognized falls back to the issues format.
func DetermineOutputFormat(requested string) OutputFormat {
	if OutputFormat(requested) == OutputJSON {
		return OutputJSON
	}
	return OutputIssues
}

// WriteOutput writes the check result in the given format.
func WriteOutput(w io.Writer, res *CheckResult, format OutputFormat, useColors bool) error {
	if format == OutputJSON {
		return writeJSON(w, res)
	}

	reporter := NewReporter(w, useColors)
	reporter.PrintIssues(res.Issues)
	reporter.PrintSummary(*res)
	return nil
}

// jsonReport is the structured export schema for check results.
type jsonReport struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Summary   jsonSummary `json:"summary"`
	Issues    []jsonIssue `json:"issues"`
}

type jsonSummary struct {
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	FilesChecked int `json:"files_checked"`
}

type jsonIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

func writeJSON(w io.Writer, res *CheckResult) error {
	report := jsonReport{
		Version:   "1",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Summary: jsonSummary{
			TotalIssues:  len(res.Issues),
			Errors:       res.ErrorCount,
			Warnings:     res.WarningCount,
			FilesChecked: res.FilesChecked,
		},
		Issues: make([]jsonIssue, 0, len(res.Issues)),
	}
	for _, issue := range res.Issues {
		report.Issues = append(report.Issues, jsonIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
