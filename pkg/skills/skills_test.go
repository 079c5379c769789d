package skills

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	lib, err := Load(fstest.MapFS{
		"research/market-analysis.md": {Data: []byte("Know the market.\n")},
		"content/social-media.md":     {Data: []byte("Write posts.")},
		"notes.txt":                   {Data: []byte("ignored")},
	})
	require.NoError(t, err)

	got := lib.Compose([]string{"research/market-analysis.md", "missing.md", "content/social-media.md"})
	assert.Equal(t, "### Market Analysis\n\nKnow the market.\n\n---\n\n### Social Media\n\nWrite posts.", got)

	_, ok := lib.Get("notes.txt")
	assert.False(t, ok)
}

func TestBuiltin(t *testing.T) {
	lib, err := Builtin()
	require.NoError(t, err)

	for _, p := range []string{
		"research/market-analysis.md",
		"content/social-media.md",
		"compliance/brand-guidelines.md",
	} {
		text, ok := lib.Get(p)
		assert.True(t, ok, p)
		assert.NotEmpty(t, text, p)
	}
}

func TestReload(t *testing.T) {
	fsys := fstest.MapFS{"a.md": {Data: []byte("v1")}}
	lib, err := Load(fsys)
	require.NoError(t, err)

	fsys["a.md"] = &fstest.MapFile{Data: []byte("v2")}
	require.NoError(t, lib.Reload())

	text, _ := lib.Get("a.md")
	assert.Equal(t, "v2", text)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Brand Guidelines", Title("compliance/brand-guidelines.md"))
}
