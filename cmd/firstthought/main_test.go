package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--data-dir", dataDir, "--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestTimerToSessionRoundTrip(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "timer", "start")
	require.NoError(t, err)
	assert.Contains(t, out, "running")

	out, err = run(t, dir, "timer", "complete")
	require.NoError(t, err)
	assert.Contains(t, out, "completed")

	out, err = run(t, dir, "session", "record", "Breath")
	require.NoError(t, err)
	assert.Contains(t, out, "recorded")
	assert.Contains(t, out, "breath")

	out, err = run(t, dir, "session", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "breath")

	out, err = run(t, dir, "session", "suggest", "br")
	require.NoError(t, err)
	assert.Equal(t, "breath\t1\n", out)

	out, err = run(t, dir, "timer", "status")
	require.NoError(t, err)
	assert.Equal(t, "idle\n", out)

	_, err = os.Stat(filepath.Join(dir, "sessions.json"))
	assert.NoError(t, err)
}

func TestRecordWithoutCompletedTimerFails(t *testing.T) {
	_, err := run(t, t.TempDir(), "session", "record", "work")
	assert.Error(t, err)
}

func TestAddThenReport(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "session", "add", "--start", "2026-01-05 07:00", "--end", "2026-01-05 07:20", "--tag", "coffee")
	require.NoError(t, err)

	out, err := run(t, dir, "stats", "--period", "allTime")
	require.NoError(t, err)
	assert.Contains(t, out, "All time: 1 sessions")

	out, err = run(t, dir, "achievements", "--period", "allTime")
	require.NoError(t, err)
	assert.Contains(t, out, "next: 30 minutes")

	out, err = run(t, dir, "share", "milestone", "15m")
	require.NoError(t, err)
	assert.Contains(t, out, "15 minutes")

	out, err = run(t, dir, "stats", "cloud")
	require.NoError(t, err)
	assert.Contains(t, out, "coffee")

	out, err = run(t, dir, "reindex")
	require.NoError(t, err)
	assert.Contains(t, out, "1 sessions")
}

func TestClearNeedsConfirmation(t *testing.T) {
	_, err := run(t, t.TempDir(), "session", "clear")
	assert.ErrorContains(t, err, "--yes")
}

func TestUnknownVisibility(t *testing.T) {
	_, err := run(t, t.TempDir(), "timer", "visibility", "sideways")
	assert.Error(t, err)
}
