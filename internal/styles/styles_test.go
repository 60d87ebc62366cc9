package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformPretty(t *testing.T) {
	src := []byte("a{color:red}b{margin:0 auto}")

	out, err := Transform(src, false, DefaultTargets)
	require.NoError(t, err)
	assert.Equal(t, "a {\n  color: red;\n}\n\nb {\n  margin: 0 auto;\n}\n", string(out))
}

func TestTransformDropsComments(t *testing.T) {
	src := []byte("/* banner */\na { /* inline */ color: red; }\n")

	out, err := Transform(src, false, DefaultTargets)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "banner")
	assert.Contains(t, string(out), "color: red;")
}

func TestTransformDropsEmptyRules(t *testing.T) {
	src := []byte("a {}\nb { color: red }\n@media screen { c {} }\n")

	out, err := Transform(src, false, DefaultTargets)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "a {")
	assert.NotContains(t, string(out), "@media")
	assert.Contains(t, string(out), "color: red;")
}

func TestTransformSelectorGroups(t *testing.T) {
	src := []byte("h1, h2 , h3 { font-weight: bold }")

	out, err := Transform(src, false, DefaultTargets)
	require.NoError(t, err)
	assert.Equal(t, "h1,\nh2,\nh3 {\n  font-weight: bold;\n}\n", string(out))
}

func TestTransformSelectorGroupsCompactInput(t *testing.T) {
	out, err := Transform([]byte("h1,h2{color:red}"), false, DefaultTargets)
	require.NoError(t, err)
	assert.Equal(t, "h1,\nh2 {\n  color: red;\n}\n", string(out))

	// Commas inside functional selectors are not group separators
	out, err = Transform([]byte("li:is(.a,.b),p{margin:0}"), false, DefaultTargets)
	require.NoError(t, err)
	assert.Equal(t, "li:is(.a,.b),\np {\n  margin: 0;\n}\n", string(out))
}

func TestTransformNestedAtRules(t *testing.T) {
	src := []byte("@media screen and (min-width: 40em) { p { margin: 0 } }\n@import url(base.css);\n")

	out, err := Transform(src, false, DefaultTargets)
	require.NoError(t, err)
	assert.Contains(t, string(out), "@media screen and (min-width: 40em) {\n  p {\n    margin: 0;\n  }\n}")
	assert.Contains(t, string(out), "@import url(base.css);")
}

func TestTransformCustomProperties(t *testing.T) {
	src := []byte(":root { --brand: #aabbcc; }\na { color: var(--brand); }")

	out, err := Transform(src, false, DefaultTargets)
	require.NoError(t, err)
	assert.Contains(t, string(out), "--brand:")
	assert.Contains(t, string(out), "var(--brand)")
}

func TestTransformMinifyShorter(t *testing.T) {
	src := []byte("a {\n  color: red;\n  margin: 0 auto;\n}\n\nb { padding: 1px 2px; }\n")

	pretty, err := Transform(src, false, DefaultTargets)
	require.NoError(t, err)
	compact, err := Transform(src, true, DefaultTargets)
	require.NoError(t, err)
	assert.Less(t, len(compact), len(pretty))
}

func TestTransformMinifyIdempotent(t *testing.T) {
	src := []byte("a { color: red; }\n@media screen { p { margin: 10px 10px; } }\n")

	once, err := Transform(src, true, DefaultTargets)
	require.NoError(t, err)
	twice, err := Transform(once, true, DefaultTargets)
	require.NoError(t, err)
	assert.Equal(t, string(once), string(twice))
}

func TestTransformPrettyStable(t *testing.T) {
	src := []byte("a{color:red}\n@media screen{p{margin:0}}\n")

	once, err := Transform(src, false, DefaultTargets)
	require.NoError(t, err)
	twice, err := Transform(once, false, DefaultTargets)
	require.NoError(t, err)
	assert.Equal(t, string(once), string(twice))
}

func TestTransformOutputReparses(t *testing.T) {
	src := []byte("a { color: red; }\nb { margin: 0; }\n")

	for _, minified := range []bool{false, true} {
		out, err := Transform(src, minified, DefaultTargets)
		require.NoError(t, err)
		_, err = Transform(out, false, DefaultTargets)
		require.NoError(t, err, "output must stay parseable (minify=%v)", minified)
	}
}

func TestTransformParseError(t *testing.T) {
	_, err := Transform([]byte("}"), false, DefaultTargets)
	require.Error(t, err)

	line, _, ok := ErrorPosition(err)
	require.True(t, ok)
	assert.Equal(t, 1, line)
}

func TestTargetsWindow(t *testing.T) {
	assert.False(t, DefaultTargets.minifier().KeepCSS2)
	assert.True(t, Targets{WindowYears: 15}.minifier().KeepCSS2)
	assert.False(t, Targets{}.minifier().KeepCSS2, "zero value falls back to the default window")
}
