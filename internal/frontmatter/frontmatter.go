// Package frontmatter extracts the metadata block from the top of a
// content document.
//
// Two fence conventions are recognized: `---` lines delimit YAML and
// `+++` lines delimit TOML. A document without an opening fence has no
// front matter and its full contents are the body.
package frontmatter

import (
	"bytes"
	"errors"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Fields holds the parsed front matter of a single document. Values are
// loosely typed: strings, numbers, booleans, and nested tables survive
// as their natural Go representations.
type Fields map[string]any

// ErrUnterminated indicates an opening fence without a matching closing
// fence.
var ErrUnterminated = errors.New("front matter opening fence found but closing fence is missing")

type fence struct {
	marker string
	parse  func([]byte) (Fields, error)
}

var fences = []fence{
	{"---", parseYAML},
	{"+++", parseTOML},
}

// Split separates the fenced front matter block from the document body.
// had is false when the document does not open with a fence; body is the
// full input in that case.
func Split(content []byte) (fields Fields, body []byte, had bool, err error) {
	nl := detectNewline(content)

	for _, f := range fences {
		open := []byte(f.marker + nl)
		if !bytes.HasPrefix(content, open) {
			continue
		}
		rest := content[len(open):]

		// Fence closed on the very next line: empty block.
		if bytes.HasPrefix(rest, open) {
			return Fields{}, rest[len(open):], true, nil
		}

		var raw []byte
		closeSeq := []byte(nl + f.marker + nl)
		if idx := bytes.Index(rest, closeSeq); idx >= 0 {
			raw = rest[:idx+len(nl)]
			body = rest[idx+len(closeSeq):]
		} else if tail := []byte(nl + f.marker); bytes.HasSuffix(rest, tail) {
			// Closing fence at EOF without a trailing newline.
			raw = rest[:len(rest)-len(f.marker)]
			body = []byte{}
		} else {
			return nil, nil, true, ErrUnterminated
		}

		fields, err = f.parse(raw)
		if err != nil {
			return nil, nil, true, err
		}
		return fields, body, true, nil
	}

	return nil, content, false, nil
}

func parseYAML(raw []byte) (Fields, error) {
	var fields Fields
	if err := yaml.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = Fields{}
	}
	return fields, nil
}

func parseTOML(raw []byte) (Fields, error) {
	fields := Fields{}
	if err := toml.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func detectNewline(content []byte) string {
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			return "\r\n"
		}
		if content[i] == '\n' {
			break
		}
	}
	return "\n"
}
