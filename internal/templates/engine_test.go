package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestLoadKeysBySourceRelativePath(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"index.html":      "<p>home</p>",
		"blog/post.html":  "<p>post</p>",
		"blog/_nav.html":  "<nav></nav>",
		"notes/readme.md": "not markup",
	})

	e, err := Load(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, e.Loaded())
	assert.True(t, e.Has("index.html"))
	assert.True(t, e.Has("blog/post.html"))
	assert.True(t, e.Has("blog/_nav.html"))
	assert.False(t, e.Has("notes/readme.md"))
}

func TestLoadSkipsExcludedFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"index.html":      "<p>home</p>",
		"drafts/bad.html": "{{if .x}}unclosed",
	})

	e, err := Load(dir, func(rel string) bool {
		return strings.HasPrefix(rel, "drafts/")
	})
	require.NoError(t, err)
	assert.Equal(t, 1, e.Loaded())
	assert.True(t, e.Has("index.html"))
	assert.False(t, e.Has("drafts/bad.html"))
}

func TestRenderCrossReference(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"index.html": `<header>{{template "_nav.html" .}}</header>`,
		"_nav.html":  `<nav>links</nav>`,
	})

	e, err := Load(dir, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, e.Render(&buf, "index.html", nil))
	assert.Equal(t, "<header><nav>links</nav></header>", buf.String())
}

func TestRenderEmptyContext(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"page.html": `<title>static page</title>{{if .title}}<h1>{{.title}}</h1>{{end}}`,
	})

	e, err := Load(dir, nil)
	require.NoError(t, err)

	// An ordinary page renders with an empty context; conditionals on
	// absent keys simply take the false branch.
	var buf bytes.Buffer
	require.NoError(t, e.Render(&buf, "page.html", nil))
	assert.Equal(t, "<title>static page</title>", buf.String())
}

func TestRenderUnknownTemplate(t *testing.T) {
	e, err := Load(t.TempDir(), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = e.Render(&buf, "missing.html", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.html")
}

func TestContextEscaping(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"_template.html": `<main>{{.content}}</main><h1>{{.title}}</h1>`,
	})

	e, err := Load(dir, nil)
	require.NoError(t, err)

	ctx := Context([]byte("<h2>Body</h2>"), map[string]any{"title": "a <b> tag"})

	var buf bytes.Buffer
	require.NoError(t, e.Render(&buf, "_template.html", ctx))

	// The body passes through raw; every other value is escaped.
	assert.Contains(t, buf.String(), "<main><h2>Body</h2></main>")
	assert.Contains(t, buf.String(), "a &lt;b&gt; tag")
}

func TestContextReservesContentKey(t *testing.T) {
	ctx := Context([]byte("body"), map[string]any{
		"content": "shadow attempt",
		"title":   "kept",
	})

	assert.Equal(t, "kept", ctx["title"])
	assert.NotEqual(t, "shadow attempt", ctx["content"], "front matter cannot shadow the rendered body")
}

func TestRenderFallback(t *testing.T) {
	e, err := Load(t.TempDir(), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, e.RenderFallback(&buf, Context([]byte("<h1>Hello</h1>\n"), nil)))
	assert.Equal(t, "<h1>Hello</h1>\n", buf.String())
}

func TestLoadReportsBrokenTemplate(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"bad.html": `{{if .x}}unclosed`,
	})

	_, err := Load(dir, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.html")
}

func TestCheckFile(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"ok.html":  `<p>{{.title}}</p>`,
		"bad.html": `{{range}}`,
	})

	require.NoError(t, CheckFile(filepath.Join(dir, "ok.html"), "ok.html"))
	require.Error(t, CheckFile(filepath.Join(dir, "bad.html"), "bad.html"))
}
