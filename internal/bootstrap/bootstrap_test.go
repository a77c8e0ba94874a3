package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firstthought/internal/platform/config"
	"firstthought/internal/platform/logger"
	"firstthought/internal/testutil"
)

func newApp(t *testing.T, clk *testutil.Clock) *App {
	t.Helper()
	cfg, err := config.New(t.TempDir())
	require.NoError(t, err)
	app, err := NewWithOptions(cfg, logger.Discard(), Options{Clock: clk, IDs: &testutil.SequenceID{}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestMeditateRecordAndReport(t *testing.T) {
	ctx := context.Background()
	clk := testutil.NewClock(time.Date(2026, 3, 4, 9, 0, 0, 0, time.Local))
	app := newApp(t, clk)

	_, err := app.TimerCLI.Start(ctx)
	require.NoError(t, err)
	clk.Advance(6 * time.Minute)
	state, err := app.TimerCLI.Complete(ctx)
	require.NoError(t, err)
	require.Equal(t, "completed", state.Status)

	out, err := app.SessionCLI.Record(ctx, "  Work ")
	require.NoError(t, err)
	assert.Equal(t, "work", out.Session.Tag)
	assert.Equal(t, int64(6*60*1000), out.Session.DurationMs)
	assert.NotEmpty(t, out.Achievements.Unlocked)
	assert.Len(t, out.Achievements.NewRecords, 4)

	status, err := app.TimerCLI.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "idle", status.Status)

	progress, err := app.AchievementProgress(ctx, "day")
	require.NoError(t, err)
	assert.Equal(t, int64(6*60*1000), progress.TotalMs)
	require.NotNil(t, progress.Next)
	assert.Equal(t, "15m", progress.Next.ID)

	summary, err := app.StatsCLI.Summary(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, summary.Periods)
	assert.Equal(t, 1, summary.Periods[0].Count)
	assert.Equal(t, 1, summary.Streak.Current)

	hist, err := app.SessionCLI.History(ctx, 3)
	require.NoError(t, err)
	require.Len(t, hist.Days, 3)
	assert.Equal(t, int64(6*60*1000), hist.Days[2].TotalMs)
}

func TestReturningFromBackgroundCompletesTimer(t *testing.T) {
	ctx := context.Background()
	clk := testutil.NewClock(time.Date(2026, 3, 4, 9, 0, 0, 0, time.Local))
	app := newApp(t, clk)

	_, err := app.TimerCLI.Start(ctx)
	require.NoError(t, err)
	_, err = app.TimerCLI.Visibility(ctx, false)
	require.NoError(t, err)
	clk.Advance(90 * time.Second)

	out, err := app.TimerCLI.Visibility(ctx, true)
	require.NoError(t, err)
	assert.True(t, out.Completed)
	assert.Equal(t, int64(90_000), out.State.DurationMs)
}
