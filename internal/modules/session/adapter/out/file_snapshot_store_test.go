package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sessionout "firstthought/internal/modules/session/adapter/out"
	"firstthought/internal/modules/session/domain"
)

var day = time.Date(2026, 2, 25, 7, 0, 0, 0, time.UTC)

func sample(id, tag string, offset time.Duration, minutes int) domain.Session {
	start := day.Add(offset)
	end := start.Add(time.Duration(minutes) * time.Minute)
	return domain.Session{ID: id, StartedAt: start, EndedAt: end, DurationMs: end.Sub(start).Milliseconds(), Tag: tag, CreatedAt: end, TaggedAt: end}
}

func TestFileSnapshotStoreRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "sessions.json")
	store := sessionout.NewFileSnapshotStore(path)
	ctx := context.Background()

	c := domain.Collection{IsExampleData: true}
	c.Add(sample("a", "work", 0, 5))
	c.Add(sample("b", "pets", time.Hour, 10))
	require.NoError(t, store.Save(ctx, c))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.IsExampleData)
	require.Len(t, loaded.Sessions, 2)
	assert.Equal(t, "b", loaded.Sessions[0].ID)
	assert.True(t, c.Sessions[0].CreatedAt.Equal(loaded.Sessions[0].CreatedAt))
	assert.Len(t, loaded.TagFrequencies, 2)
}

func TestFileSnapshotStoreMissingAndCorrupt(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	ctx := context.Background()

	empty, err := sessionout.NewFileSnapshotStore(filepath.Join(dir, "none.json")).Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.Sessions)

	corrupt := filepath.Join(dir, "sessions.json")
	require.NoError(t, os.WriteFile(corrupt, []byte(`{"version":1,"sessions":[{`), 0o644))
	_, err = sessionout.NewFileSnapshotStore(corrupt).Load(ctx)
	assert.ErrorContains(t, err, "decode sessions")
}

func TestFileSnapshotStoreBackfillsTaggedAt(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "sessions.json")
	legacy := `{"version":1,"sessions":[{"id":"a","tag":"work","duration_ms":60000,
"started_at":"2026-02-25T07:00:00Z","ended_at":"2026-02-25T07:01:00Z","created_at":"2026-02-25T07:01:00Z"}],
"tag_frequencies":[{"tag":"work","count":1,"last_used_at":"2026-02-25T07:01:00Z"}],"is_example_data":false}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	loaded, err := sessionout.NewFileSnapshotStore(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded.Sessions, 1)
	assert.True(t, loaded.Sessions[0].CreatedAt.Equal(loaded.Sessions[0].TaggedAt))
}

func TestFileSnapshotStoreRejectsNewerVersion(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "sessions.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":9}`), 0o644))
	_, err := sessionout.NewFileSnapshotStore(path).Load(context.Background())
	assert.ErrorContains(t, err, "newer than supported")
}
