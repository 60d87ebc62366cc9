package neur

// Issue is a single diagnostic produced by check mode, shaped after
// golangci-lint's output so editors and CI annotators can parse it.
type Issue struct {
	Text     string   `json:"Text"`     // "stylesheet does not parse: ..."
	Severity string   `json:"Severity"` // "error" or "warning"
	Pos      IssuePos `json:"Pos"`
}

// IssuePos specifies the location an issue was found at. Line and
// Column are 1-based; zero means the position is unknown.
type IssuePos struct {
	Filename string `json:"Filename"`
	Line     int    `json:"Line"`
	Column   int    `json:"Column"`
}

// Issue severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)
