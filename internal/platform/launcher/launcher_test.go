package launcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand(t *testing.T) {
	name, args, err := Command("linux", "https://example.test")
	require.NoError(t, err)
	assert.Equal(t, "xdg-open", name)
	assert.Equal(t, []string{"https://example.test"}, args)

	name, _, err = Command("darwin", "https://example.test")
	require.NoError(t, err)
	assert.Equal(t, "open", name)

	_, _, err = Command("plan9", "x")
	assert.Error(t, err)
}
