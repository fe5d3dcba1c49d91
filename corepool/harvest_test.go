package corepool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/incentive-core/coin"
)

func TestOwedFromIndexRange_ZeroWhenNoProgress(t *testing.T) {
	owed, err := owedFromIndexRange(1_000, 50, 50)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), owed)
}

func TestOwedFromIndexRange_ZeroWhenNoShares(t *testing.T) {
	owed, err := owedFromIndexRange(0, 0, 1_000_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), owed)
}

func TestHarvest_UnknownUserRejected(t *testing.T) {
	pool, _, _ := newTestPool(t)
	_, _, err := pool.Harvest("I", "nobody")
	assert.ErrorIs(t, err, ErrUserShareNotFound)
}

func TestHarvest_ClampedToProgramBalance(t *testing.T) {
	pool, cap, clock := newTestPool(t)
	// Tiny balance, large rate: the period's accrual would exceed what the
	// program actually holds.
	createTestProgram(t, pool, cap, 5, 10_000_000)

	_, err := pool.Stake(coin.New("SUI", 1_000_000_000), "alice")
	require.NoError(t, err)
	clock.Advance(time.Duration(testInterval) * time.Millisecond)

	got, _, err := pool.Harvest("I", "alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), got.Amount())
}

func TestStake_OverwritesIndexSnapshotDiscardingUnharvestedYield(t *testing.T) {
	pool, cap, clock := newTestPool(t)
	createTestProgram(t, pool, cap, 100_000_000_000, 10_000_000)

	_, err := pool.Stake(coin.New("SUI", 1_000_000_000), "alice")
	require.NoError(t, err)
	clock.Advance(time.Duration(testInterval) * time.Millisecond)

	// alice has one period of unharvested yield. Staking again before
	// harvesting overwrites her observed index to "now", so that yield is
	// forfeited rather than preserved.
	_, err = pool.Stake(coin.New("SUI", 1), "alice")
	require.NoError(t, err)

	got, _, err := pool.Harvest("I", "alice")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}
