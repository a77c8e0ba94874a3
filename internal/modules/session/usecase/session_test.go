package usecase_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	achievementout "firstthought/internal/modules/achievement/adapter/out"
	achievementservice "firstthought/internal/modules/achievement/service"
	achievementusecase "firstthought/internal/modules/achievement/usecase"
	sessionout "firstthought/internal/modules/session/adapter/out"
	sessiondto "firstthought/internal/modules/session/dto"
	sessionin "firstthought/internal/modules/session/port/in"
	sessionservice "firstthought/internal/modules/session/service"
	sessionusecase "firstthought/internal/modules/session/usecase"
	timerout "firstthought/internal/modules/timer/adapter/out"
	timerin "firstthought/internal/modules/timer/port/in"
	timerservice "firstthought/internal/modules/timer/service"
	timerusecase "firstthought/internal/modules/timer/usecase"
	apperrors "firstthought/internal/platform/errors"
	"firstthought/internal/platform/logger"
	"firstthought/internal/platform/validation"
	"firstthought/internal/testutil"
)

type harness struct {
	sessions sessionin.Usecase
	timer    timerin.Usecase
	clock    *testutil.Clock
	dir      string
}

func newHarness(t *testing.T) harness {
	t.Helper()
	dir := t.TempDir()
	log := logger.Discard()
	clk := testutil.NewClock(time.Date(2026, 2, 25, 7, 0, 0, 0, time.UTC))

	projector, err := sessionout.NewSQLiteHistoryProjector(filepath.Join(dir, "firstthought.db"), time.UTC)
	require.NoError(t, err)
	t.Cleanup(func() { _ = projector.Close() })

	timerUC := timerusecase.NewInteractor(timerservice.NewTimerService(clk, timerout.NewFileStateStore(filepath.Join(dir, "timer.json")), log), log)
	achievementUC := achievementusecase.NewInteractor(achievementservice.NewAchievementService(clk, achievementout.NewFileLedgerStore(filepath.Join(dir, "achievements.json")), log), log)
	svc := sessionservice.NewSessionService(clk, &testutil.SequenceID{}, sessionout.NewFileSnapshotStore(filepath.Join(dir, "sessions.json")), projector, sessionout.NewMarkdownExporter(), log, rand.New(rand.NewPCG(3, 4)))
	return harness{
		sessions: sessionusecase.NewInteractor(svc, timerUC, achievementUC, validation.New(), log),
		timer:    timerUC,
		clock:    clk,
		dir:      dir,
	}
}

func (h harness) meditate(t *testing.T, d time.Duration) {
	t.Helper()
	ctx := context.Background()
	_, err := h.timer.Start(ctx)
	require.NoError(t, err)
	h.clock.Advance(d)
	_, err = h.timer.Complete(ctx)
	require.NoError(t, err)
	h.clock.Advance(2 * time.Second)
}

func TestRecordStoresSessionAndResetsTimer(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	h.meditate(t, 6*time.Minute)
	out, err := h.sessions.Record(ctx, sessiondto.RecordInput{Tag: "  Work "})
	require.NoError(t, err)

	assert.Equal(t, "work", out.Session.Tag)
	assert.Equal(t, int64(360_000), out.Session.DurationMs)
	assert.Equal(t, out.Session.EndedAt.Sub(out.Session.StartedAt).Milliseconds(), out.Session.DurationMs)
	assert.Equal(t, "id-1", out.Session.ID)
	assert.Len(t, out.Achievements.NewRecords, 4)
	assert.Len(t, out.Achievements.Unlocked, 8)

	state, err := h.timer.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "idle", state.Status)

	list, err := h.sessions.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Sessions, 1)
	require.Len(t, list.TagFrequencies, 1)
	assert.Equal(t, 1, list.TagFrequencies[0].Count)
}

func TestRecordRequiresCompletedTimer(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.sessions.Record(ctx, sessiondto.RecordInput{Tag: "work"})
	assert.True(t, errors.Is(err, apperrors.ErrTimerNotCompleted))

	_, err = h.timer.Start(ctx)
	require.NoError(t, err)
	_, err = h.sessions.Record(ctx, sessiondto.RecordInput{Tag: "work"})
	assert.True(t, errors.Is(err, apperrors.ErrTimerRunning))
}

func TestRecordRejectsMultiWordTagAndKeepsTimer(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	h.meditate(t, time.Minute)

	_, err := h.sessions.Record(ctx, sessiondto.RecordInput{Tag: "   "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	state, err := h.timer.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "completed", state.Status)
}

func TestRecordDiscardsExampleData(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	example, err := h.sessions.LoadExample(ctx)
	require.NoError(t, err)
	require.True(t, example.IsExampleData)

	h.meditate(t, 90*time.Second)
	out, err := h.sessions.Record(ctx, sessiondto.RecordInput{Tag: "sleep"})
	require.NoError(t, err)
	assert.True(t, out.DiscardedExample)

	list, err := h.sessions.List(ctx)
	require.NoError(t, err)
	assert.False(t, list.IsExampleData)
	require.Len(t, list.Sessions, 1)
	assert.Equal(t, "sleep", list.Sessions[0].Tag)
}

func TestAddReplacesExampleDataAndSurvivesRecord(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.sessions.LoadExample(ctx)
	require.NoError(t, err)

	start := h.clock.Now().Add(-time.Hour)
	added, err := h.sessions.Add(ctx, sessiondto.AddInput{StartedAt: start, EndedAt: start.Add(10 * time.Minute), DurationMs: 600_000, Tag: "mine"})
	require.NoError(t, err)
	assert.True(t, added.DiscardedExample)

	list, err := h.sessions.List(ctx)
	require.NoError(t, err)
	assert.False(t, list.IsExampleData)
	require.Len(t, list.Sessions, 1)
	assert.Equal(t, added.Session.ID, list.Sessions[0].ID)

	h.meditate(t, 2*time.Minute)
	recorded, err := h.sessions.Record(ctx, sessiondto.RecordInput{Tag: "work"})
	require.NoError(t, err)
	assert.False(t, recorded.DiscardedExample)

	list, err = h.sessions.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Sessions, 2)
	ids := []string{list.Sessions[0].ID, list.Sessions[1].ID}
	assert.Contains(t, ids, added.Session.ID)
	assert.Contains(t, ids, recorded.Session.ID)
}

func TestRetagAndDeleteKeepExampleFlag(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	example, err := h.sessions.LoadExample(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(example.Sessions), 2)

	updated, err := h.sessions.Update(ctx, sessiondto.UpdateInput{ID: example.Sessions[0].ID, Tag: "garden"})
	require.NoError(t, err)
	require.True(t, updated.Found)
	list, err := h.sessions.List(ctx)
	require.NoError(t, err)
	assert.True(t, list.IsExampleData)
	assert.Len(t, list.Sessions, len(example.Sessions))

	deleted, err := h.sessions.Delete(ctx, sessiondto.DeleteInput{ID: example.Sessions[1].ID})
	require.NoError(t, err)
	require.True(t, deleted.Found)
	list, err = h.sessions.List(ctx)
	require.NoError(t, err)
	assert.True(t, list.IsExampleData)
	assert.Len(t, list.Sessions, len(example.Sessions)-1)

	// still disposable: the next real session replaces everything
	h.meditate(t, time.Minute)
	out, err := h.sessions.Record(ctx, sessiondto.RecordInput{Tag: "work"})
	require.NoError(t, err)
	assert.True(t, out.DiscardedExample)
}

func TestConcurrentAddsAreAllKept(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	start := h.clock.Now().Add(-time.Hour)

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for k := 0; k < n; k++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.sessions.Add(ctx, sessiondto.AddInput{StartedAt: start, EndedAt: start.Add(time.Minute), DurationMs: 60_000, Tag: "work"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	list, err := h.sessions.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list.Sessions, n)
	require.Len(t, list.TagFrequencies, 1)
	assert.Equal(t, n, list.TagFrequencies[0].Count)
}

func TestRetagWorkToFamily(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	add := func(tag string) string {
		start := h.clock.Now()
		h.clock.Advance(time.Minute)
		out, err := h.sessions.Add(ctx, sessiondto.AddInput{StartedAt: start, EndedAt: h.clock.Now(), DurationMs: 60_000, Tag: tag})
		require.NoError(t, err)
		return out.Session.ID
	}
	add("family")
	add("family")
	work := add("work")

	h.clock.Advance(time.Hour)
	edited := h.clock.Now()
	updated, err := h.sessions.Update(ctx, sessiondto.UpdateInput{ID: work, Tag: "family"})
	require.NoError(t, err)
	assert.True(t, updated.Found)

	list, err := h.sessions.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.TagFrequencies, 1)
	assert.Equal(t, "family", list.TagFrequencies[0].Tag)
	assert.Equal(t, 3, list.TagFrequencies[0].Count)
	assert.True(t, edited.Equal(list.TagFrequencies[0].LastUsedAt))

	missing, err := h.sessions.Update(ctx, sessiondto.UpdateInput{ID: "nope", Tag: "x"})
	require.NoError(t, err)
	assert.False(t, missing.Found)
}

func TestAddValidatesInterval(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	start := h.clock.Now()

	_, err := h.sessions.Add(ctx, sessiondto.AddInput{StartedAt: start, EndedAt: start.Add(-time.Second), DurationMs: 0, Tag: "work"})
	assert.ErrorContains(t, err, "ended_at must not be before StartedAt")

	_, err = h.sessions.Add(ctx, sessiondto.AddInput{StartedAt: start, EndedAt: start.Add(time.Minute), DurationMs: 1, Tag: "work"})
	assert.ErrorContains(t, err, "duration_ms must equal")
}

func TestDeleteAndClear(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	start := h.clock.Now()

	added, err := h.sessions.Add(ctx, sessiondto.AddInput{StartedAt: start, EndedAt: start.Add(time.Minute), DurationMs: 60_000, Tag: "work"})
	require.NoError(t, err)

	deleted, err := h.sessions.Delete(ctx, sessiondto.DeleteInput{ID: added.Session.ID})
	require.NoError(t, err)
	assert.True(t, deleted.Found)
	again, err := h.sessions.Delete(ctx, sessiondto.DeleteInput{ID: added.Session.ID})
	require.NoError(t, err)
	assert.False(t, again.Found)

	_, err = h.sessions.LoadExample(ctx)
	require.NoError(t, err)
	require.NoError(t, h.sessions.Clear(ctx))
	list, err := h.sessions.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list.Sessions)
	assert.Empty(t, list.TagFrequencies)
	assert.False(t, list.IsExampleData)
}

func TestSuggestNormalizesPrefix(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	for _, tag := range []string{"work", "work", "walk", "pets"} {
		start := h.clock.Now()
		h.clock.Advance(time.Minute)
		_, err := h.sessions.Add(ctx, sessiondto.AddInput{StartedAt: start, EndedAt: h.clock.Now(), DurationMs: 60_000, Tag: tag})
		require.NoError(t, err)
	}

	got, err := h.sessions.Suggest(ctx, sessiondto.SuggestInput{Prefix: " W"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "work", got[0].Tag)
	assert.Equal(t, "walk", got[1].Tag)
}

func TestHistoryZeroFillsDays(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	h.meditate(t, 10*time.Minute)
	_, err := h.sessions.Record(ctx, sessiondto.RecordInput{Tag: "work"})
	require.NoError(t, err)

	history, err := h.sessions.History(ctx, sessiondto.HistoryInput{Days: 3})
	require.NoError(t, err)
	require.Len(t, history.Days, 3)
	assert.Equal(t, time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC), history.Days[0].Day)
	assert.Zero(t, history.Days[0].Count)
	assert.Equal(t, int64(600_000), history.Days[2].TotalMs)
	assert.Equal(t, 1, history.Days[2].Count)

	_, err = h.sessions.History(ctx, sessiondto.HistoryInput{Days: 0})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestReindexAndExport(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	example, err := h.sessions.LoadExample(ctx)
	require.NoError(t, err)

	reindexed, err := h.sessions.Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(example.Sessions), reindexed.Sessions)

	exported, err := h.sessions.Export(ctx, sessiondto.ExportInput{Dir: filepath.Join(h.dir, "notes")})
	require.NoError(t, err)
	assert.Len(t, exported.Paths, len(example.Sessions))

	_, err = h.sessions.Export(ctx, sessiondto.ExportInput{})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}
