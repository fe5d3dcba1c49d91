package corepool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/incentive-core/coin"
)

func TestUnstake_FIFOConsumesOldestTrancheFirst(t *testing.T) {
	pool, _, clock := newTestPool(t)

	_, err := pool.Stake(coin.New("SUI", 300), "alice")
	require.NoError(t, err)

	first := uint64(100)
	_, err = pool.Unsubscribe("SUI", &first, "alice")
	require.NoError(t, err)

	clock.Advance(time.Duration(testCountdown/2) * time.Millisecond)

	second := uint64(50)
	_, err = pool.Unsubscribe("SUI", &second, "alice")
	require.NoError(t, err)

	// The first tranche has now unlocked; the second has not.
	clock.Advance(time.Duration(testCountdown/2) * time.Millisecond)

	target := uint64(100)
	got, _, err := pool.Unstake("SUI", &target, "alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(100), got.Amount())

	ledger := pool.userShares["alice"]
	require.Len(t, ledger.Deactivating, 1)
	assert.Equal(t, uint64(50), ledger.Deactivating[0].Shares)
}

func TestUnstake_PartialTrancheConsumptionKeepsRemainder(t *testing.T) {
	pool, _, clock := newTestPool(t)

	_, err := pool.Stake(coin.New("SUI", 100), "alice")
	require.NoError(t, err)
	_, err = pool.Unsubscribe("SUI", nil, "alice")
	require.NoError(t, err)

	clock.Advance(time.Duration(testCountdown) * time.Millisecond)

	target := uint64(40)
	got, _, err := pool.Unstake("SUI", &target, "alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(40), got.Amount())

	ledger := pool.userShares["alice"]
	require.Len(t, ledger.Deactivating, 1)
	assert.Equal(t, uint64(60), ledger.Deactivating[0].Shares)
}

func TestUnsubscribe_UnknownUserRejected(t *testing.T) {
	pool, _, _ := newTestPool(t)
	_, err := pool.Unsubscribe("SUI", nil, "nobody")
	assert.ErrorIs(t, err, ErrUserShareNotFound)
}

func TestUnstake_UnknownUserRejected(t *testing.T) {
	pool, _, _ := newTestPool(t)
	_, _, err := pool.Unstake("SUI", nil, "nobody")
	assert.ErrorIs(t, err, ErrUserShareNotFound)
}

func TestStake_EmitsIndexSnapshotInEvent(t *testing.T) {
	pool, cap, _ := newTestPool(t)
	progID := createTestProgram(t, pool, cap, 100_000_000_000, 10_000_000)

	ev, err := pool.Stake(coin.New("SUI", 100), "alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), ev.LastIndexSnapshot[progID.String()])
}

func TestLedgerUserMismatch_RejectsCorruptedLookup(t *testing.T) {
	pool, _, _ := newTestPool(t)

	_, err := pool.Stake(coin.New("SUI", 100), "alice")
	require.NoError(t, err)
	// Simulate internal corruption: a ledger stored under the wrong key.
	pool.userShares["alice"].User = "mallory"

	_, err = pool.Unsubscribe("SUI", nil, "alice")
	assert.ErrorIs(t, err, ErrUserMismatch)
}
