package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firstthought/internal/platform/markdown"
)

type noteMeta struct {
	ID  string `yaml:"id"`
	Tag string `yaml:"tag"`
}

func TestRenderAndParseNote(t *testing.T) {
	t.Parallel()
	rendered, err := markdown.RenderNote(noteMeta{ID: "s-1", Tag: "work"}, "# Session\n")
	require.NoError(t, err)
	assert.Equal(t, "---\nid: s-1\ntag: work\n---\n\n# Session\n", rendered)

	var meta noteMeta
	body, err := markdown.ParseNote(rendered, &meta)
	require.NoError(t, err)
	assert.Equal(t, noteMeta{ID: "s-1", Tag: "work"}, meta)
	assert.Equal(t, "\n# Session\n", body)
}

func TestParseNoteWithoutFrontmatter(t *testing.T) {
	t.Parallel()
	var meta noteMeta
	body, err := markdown.ParseNote("plain body", &meta)
	require.NoError(t, err)
	assert.Equal(t, "plain body", body)
	assert.Empty(t, meta.ID)
}

func TestParseNoteRejectsUnterminatedFrontmatter(t *testing.T) {
	t.Parallel()
	var meta noteMeta
	_, err := markdown.ParseNote("---\nid: x\n", &meta)
	require.Error(t, err)
}
