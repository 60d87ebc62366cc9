package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitYAML(t *testing.T) {
	doc := []byte("---\ntitle: \"Hi\"\ndraft: true\ncount: 3\n---\n# Hello\n")

	fields, body, had, err := Split(doc)
	require.NoError(t, err)
	require.True(t, had)
	assert.Equal(t, "# Hello\n", string(body))
	assert.Equal(t, "Hi", fields["title"])
	assert.Equal(t, true, fields["draft"])
	assert.Equal(t, 3, fields["count"])
}

func TestSplitTOML(t *testing.T) {
	doc := []byte("+++\ntitle = \"Hi\"\n\n[author]\nname = \"Ada\"\n+++\nbody text\n")

	fields, body, had, err := Split(doc)
	require.NoError(t, err)
	require.True(t, had)
	assert.Equal(t, "body text\n", string(body))
	assert.Equal(t, "Hi", fields["title"])

	author, ok := fields["author"].(map[string]any)
	require.True(t, ok, "nested tables survive as maps")
	assert.Equal(t, "Ada", author["name"])
}

func TestSplitNoFrontMatter(t *testing.T) {
	doc := []byte("# Just a heading\n\nNo metadata here.\n")

	fields, body, had, err := Split(doc)
	require.NoError(t, err)
	assert.False(t, had)
	assert.Nil(t, fields)
	assert.Equal(t, string(doc), string(body))
}

func TestSplitEmptyBlock(t *testing.T) {
	doc := []byte("---\n---\nbody\n")

	fields, body, had, err := Split(doc)
	require.NoError(t, err)
	require.True(t, had)
	assert.Empty(t, fields)
	assert.Equal(t, "body\n", string(body))
}

func TestSplitClosingFenceAtEOF(t *testing.T) {
	doc := []byte("---\ntitle: x\n---")

	fields, body, had, err := Split(doc)
	require.NoError(t, err)
	require.True(t, had)
	assert.Equal(t, "x", fields["title"])
	assert.Empty(t, body)
}

func TestSplitUnterminated(t *testing.T) {
	doc := []byte("---\ntitle: x\nno closing fence\n")

	_, _, had, err := Split(doc)
	require.ErrorIs(t, err, ErrUnterminated)
	assert.True(t, had)
}

func TestSplitMalformedYAML(t *testing.T) {
	doc := []byte("---\ntitle: [unclosed\n---\nbody\n")

	_, _, had, err := Split(doc)
	require.Error(t, err)
	assert.True(t, had)
}

func TestSplitMalformedTOML(t *testing.T) {
	doc := []byte("+++\ntitle = = \"Hi\"\n+++\nbody\n")

	_, _, had, err := Split(doc)
	require.Error(t, err)
	assert.True(t, had)
}

func TestSplitCRLF(t *testing.T) {
	doc := []byte("---\r\ntitle: Hi\r\n---\r\nbody\r\n")

	fields, body, had, err := Split(doc)
	require.NoError(t, err)
	require.True(t, had)
	assert.Equal(t, "Hi", fields["title"])
	assert.Equal(t, "body\r\n", string(body))
}

func TestSplitFenceMidDocumentIgnored(t *testing.T) {
	doc := []byte("text first\n---\nnot front matter\n")

	_, body, had, err := Split(doc)
	require.NoError(t, err)
	assert.False(t, had)
	assert.Equal(t, string(doc), string(body))
}
