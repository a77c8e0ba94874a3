package tagword_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"firstthought/internal/platform/tagword"
)

func TestNormalize(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want string
	}{
		{"Work", "work"},
		{"  Deep   Work\t", "deepwork"},
		{"FAMILY\n", "family"},
		{"Çáva", "çáva"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tagword.Normalize(tc.in), "input %q", tc.in)
	}
}

func TestIsNormalized(t *testing.T) {
	t.Parallel()
	assert.True(t, tagword.IsNormalized("work"))
	assert.False(t, tagword.IsNormalized("Work"))
	assert.False(t, tagword.IsNormalized("deep work"))
	assert.False(t, tagword.IsNormalized(""))
}

func TestFileSafe(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "work", tagword.FileSafe("Work"))
	assert.Equal(t, "caf", tagword.FileSafe("café"))
	assert.Equal(t, "untagged", tagword.FileSafe("日本"))
	assert.Equal(t, "a-b", tagword.FileSafe("a/b"))
}
