package id_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firstthought/internal/platform/id"
)

func TestUUIDGeneratesDistinctParsableIDs(t *testing.T) {
	t.Parallel()
	gen := id.UUID{}
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		value := gen.New()
		parsed, err := uuid.Parse(value)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), parsed.Version())
		assert.False(t, seen[value], "duplicate id %s", value)
		seen[value] = true
	}
}
