package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firstthought/internal/modules/achievement/domain"
	"firstthought/internal/platform/period"
)

func TestLedgerUnlockIsIdempotentPerPair(t *testing.T) {
	t.Parallel()
	ledger := domain.Ledger{}

	assert.True(t, ledger.Unlock("1m", period.Day, now))
	assert.False(t, ledger.Unlock("1m", period.Day, now.Add(time.Hour)))
	assert.True(t, ledger.Unlock("1m", period.Week, now))
	require.Len(t, ledger.UnlockedMilestones, 2)
	assert.Equal(t, now, ledger.UnlockedMilestones[0].UnlockedAt)

	assert.True(t, ledger.IsUnlocked("1m", period.Day))
	assert.False(t, ledger.IsUnlocked("5m", period.Day))
	assert.False(t, ledger.IsUnlocked("1m", period.Month))
}

func TestLedgerPersonalRecordOverwrites(t *testing.T) {
	t.Parallel()
	ledger := domain.Ledger{}

	_, ok := ledger.PersonalRecord(period.Day)
	assert.False(t, ok)

	ledger.SetPersonalRecord(period.Day, 60_000, "a", now)
	ledger.SetPersonalRecord(period.Week, 60_000, "a", now)
	ledger.SetPersonalRecord(period.Day, 90_000, "b", now.Add(time.Minute))

	require.Len(t, ledger.PersonalRecords, 2)
	record, ok := ledger.PersonalRecord(period.Day)
	require.True(t, ok)
	assert.Equal(t, int64(90_000), record.DurationMs)
	assert.Equal(t, "b", record.SessionID)
	assert.Equal(t, now.Add(time.Minute), record.AchievedAt)
}

func TestLedgerUnlockedInFollowsCatalog(t *testing.T) {
	t.Parallel()
	ledger := domain.Ledger{}
	ledger.Unlock("15m", period.Month, now)
	ledger.Unlock("1m", period.Month, now)
	ledger.Unlock("5m", period.Day, now)

	got := ledger.UnlockedIn(period.Month)
	require.Len(t, got, 2)
	assert.Equal(t, "1m", got[0].ID)
	assert.Equal(t, "15m", got[1].ID)
}
