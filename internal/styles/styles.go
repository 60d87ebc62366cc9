// Package styles transforms stylesheets: parse, structural cleanup, and
// printing in either readable or compacted form.
package styles

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/minify/v2"
	mcss "github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Targets expresses the rolling browser-support window that bounds which
// rewrites the compact printer may apply.
type Targets struct {
	// WindowYears is the length of the support window: browsers released
	// within the last WindowYears years are assumed available.
	WindowYears int
}

// DefaultTargets matches the build's fixed policy of supporting browsers
// released in the last four years.
var DefaultTargets = Targets{WindowYears: 4}

func (t Targets) minifier() *mcss.Minifier {
	years := t.WindowYears
	if years <= 0 {
		years = DefaultTargets.WindowYears
	}
	// A window reaching back past CSS3-era engines keeps legacy syntax in
	// the output; the default window permits modern shorthand.
	return &mcss.Minifier{KeepCSS2: years > 10}
}

// Transform parses src, applies the structural pass (comments and empty
// rules are dropped regardless of the whitespace flag), and prints the
// result. With minified set, output is compacted through the CSS
// minifier configured by targets; otherwise one declaration per line.
func Transform(src []byte, minified bool, targets Targets) ([]byte, error) {
	nodes, err := parseTree(src)
	if err != nil {
		return nil, err
	}
	nodes = prune(nodes)

	var buf bytes.Buffer
	writeNodes(&buf, nodes, 0)
	if !minified {
		return buf.Bytes(), nil
	}

	m := minify.New()
	m.Add("text/css", targets.minifier())
	out, err := m.Bytes("text/css", buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("print: %w", err)
	}
	return out, nil
}

// ErrorPosition reports the line and column a parse error occurred at,
// when the parser recorded one.
func ErrorPosition(err error) (line, col int, ok bool) {
	var perr *parse.Error
	if errors.As(err, &perr) {
		l, c, _ := perr.Position()
		return l, c, true
	}
	return 0, 0, false
}

// The parse tree keeps only what the printers need: rule structure and
// verbatim declaration text.
type (
	node any

	atRule struct{ text string } // "@import url(x.css)"
	decl   struct{ prop, value string }
	raw    struct{ text string }

	ruleset struct {
		selectors []string
		body      []node
	}

	block struct {
		prelude  string // "@media screen and (min-width: 40em)"
		children []node
	}
)

func parseTree(src []byte) ([]node, error) {
	p := css.NewParser(parse.NewInputBytes(src), false)

	var top []node
	stack := []*[]node{&top}
	cur := func() *[]node { return stack[len(stack)-1] }
	var selectors []string

	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, err
			}
			return top, nil

		case css.CommentGrammar:
			// Dropped: the structural pass never carries comments through.

		case css.AtRuleGrammar:
			text := prelude(string(data) + joinValues(p.Values()))
			*cur() = append(*cur(), &atRule{text: text})

		case css.BeginAtRuleGrammar:
			b := &block{prelude: prelude(string(data) + joinValues(p.Values()))}
			*cur() = append(*cur(), b)
			stack = append(stack, &b.children)

		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}

		case css.QualifiedRuleGrammar:
			selectors = append(selectors, splitSelectors(joinValues(p.Values()))...)

		case css.BeginRulesetGrammar:
			selectors = append(selectors, splitSelectors(joinValues(p.Values()))...)
			rs := &ruleset{selectors: selectors}
			selectors = nil
			*cur() = append(*cur(), rs)
			stack = append(stack, &rs.body)

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			d := &decl{prop: string(data), value: strings.TrimSpace(joinValues(p.Values()))}
			*cur() = append(*cur(), d)

		case css.TokenGrammar:
			*cur() = append(*cur(), &raw{text: string(data)})
		}
	}
}

func joinValues(vals []css.Token) string {
	var sb strings.Builder
	for _, v := range vals {
		sb.Write(v.Data)
	}
	return sb.String()
}

// splitSelectors breaks a selector list on top-level commas so selector
// groups print one per line. Commas nested in functional selectors like
// :is() stay put.
func splitSelectors(s string) []string {
	var out []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				if sel := strings.TrimSpace(s[start:i]); sel != "" {
					out = append(out, sel)
				}
				start = i + 1
			}
		}
	}
	if sel := strings.TrimSpace(s[start:]); sel != "" {
		out = append(out, sel)
	}
	return out
}

// prelude normalizes an at-rule prelude: the tokenizer drops the space
// after ':' in media features, so "(min-width:40em)" gets it back.
func prelude(s string) string {
	s = strings.TrimSpace(s)
	var sb strings.Builder
	sb.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		sb.WriteByte(s[i])
		if s[i] == ':' && i+1 < len(s) && isAlnum(s[i+1]) {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// prune drops empty rulesets and blocks left empty after pruning.
func prune(nodes []node) []node {
	out := make([]node, 0, len(nodes))
	for _, n := range nodes {
		switch n := n.(type) {
		case *ruleset:
			n.body = prune(n.body)
			if len(n.body) == 0 {
				continue
			}
		case *block:
			n.children = prune(n.children)
			if len(n.children) == 0 {
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

func writeNodes(buf *bytes.Buffer, nodes []node, indent int) {
	pad := strings.Repeat("  ", indent)
	for i, n := range nodes {
		if i > 0 && indent == 0 {
			buf.WriteByte('\n')
		}
		switch n := n.(type) {
		case *atRule:
			fmt.Fprintf(buf, "%s%s;\n", pad, n.text)
		case *decl:
			fmt.Fprintf(buf, "%s%s: %s;\n", pad, n.prop, n.value)
		case *raw:
			fmt.Fprintf(buf, "%s%s\n", pad, n.text)
		case *ruleset:
			for j, sel := range n.selectors {
				sep := ","
				if j == len(n.selectors)-1 {
					sep = " {"
				}
				fmt.Fprintf(buf, "%s%s%s\n", pad, sel, sep)
			}
			writeNodes(buf, n.body, indent+1)
			fmt.Fprintf(buf, "%s}\n", pad)
		case *block:
			fmt.Fprintf(buf, "%s%s {\n", pad, n.prelude)
			writeNodes(buf, n.children, indent+1)
			fmt.Fprintf(buf, "%s}\n", pad)
		}
	}
}
