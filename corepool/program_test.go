package corepool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIncentiveProgram_ZeroInitialBalanceRejected(t *testing.T) {
	_, err := newIncentiveProgram("SUI", 0, 1, 1, 0)
	assert.ErrorIs(t, err, ErrZeroIncentive)
}

func TestNewIncentiveProgram_ZeroPeriodAmountRejected(t *testing.T) {
	_, err := newIncentiveProgram("SUI", 100, 0, 1, 0)
	assert.ErrorIs(t, err, ErrZeroPeriodIncentiveAmount)
}

func TestNewIncentiveProgram_ZeroIntervalRejected(t *testing.T) {
	_, err := newIncentiveProgram("SUI", 100, 1, 0, 0)
	assert.ErrorIs(t, err, ErrZeroIntervalUpdate)
}

func TestNewIncentiveProgram_UnroundedStartTime(t *testing.T) {
	prog, err := newIncentiveProgram("SUI", 100, 1, 60_000, 1_234)
	require.NoError(t, err)
	assert.Equal(t, int64(1_234), prog.LastAllocateMs)
	assert.Equal(t, uint64(0), prog.PriceIndex)
	assert.True(t, prog.Active)
}

func TestDeactivate_FreezesIndexWithoutAllocating(t *testing.T) {
	prog, err := newIncentiveProgram("SUI", 100, 10_000_000, 60_000, 0)
	require.NoError(t, err)

	require.NoError(t, prog.allocate(60_000, 1_000_000_000))
	indexAfterOnePeriod := prog.PriceIndex

	require.NoError(t, prog.deactivate("SUI"))
	assert.False(t, prog.Active)
	assert.Equal(t, indexAfterOnePeriod, prog.PriceIndex)

	// allocate no longer advances the index while inactive.
	require.NoError(t, prog.allocate(120_000, 1_000_000_000))
	assert.Equal(t, indexAfterOnePeriod, prog.PriceIndex)
}

func TestDeactivate_AlreadyDeactivatedRejected(t *testing.T) {
	prog, err := newIncentiveProgram("SUI", 100, 1, 60_000, 0)
	require.NoError(t, err)
	require.NoError(t, prog.deactivate("SUI"))
	assert.ErrorIs(t, prog.deactivate("SUI"), ErrAlreadyDeactivated)
}

func TestActivate_AlreadyActivatedRejected(t *testing.T) {
	prog, err := newIncentiveProgram("SUI", 100, 1, 60_000, 0)
	require.NoError(t, err)
	assert.ErrorIs(t, prog.activate("SUI"), ErrAlreadyActivated)
}

func TestCheckTokenType_Mismatch(t *testing.T) {
	prog, err := newIncentiveProgram("SUI", 100, 1, 60_000, 0)
	require.NoError(t, err)
	assert.ErrorIs(t, prog.deactivate("OTHER"), ErrTokenTypeMismatch)
}

func TestAllocate_SkipsPeriodWhenNoActiveShares(t *testing.T) {
	prog, err := newIncentiveProgram("SUI", 100, 10_000_000, 60_000, 0)
	require.NoError(t, err)

	require.NoError(t, prog.allocate(60_000, 0))
	assert.Equal(t, uint64(0), prog.PriceIndex)
	assert.Equal(t, int64(60_000), prog.LastAllocateMs) // still advances
}

func TestAllocate_IdempotentAtSameTimestamp(t *testing.T) {
	prog, err := newIncentiveProgram("SUI", 100, 10_000_000, 60_000, 0)
	require.NoError(t, err)

	require.NoError(t, prog.allocate(60_000, 1_000_000_000))
	indexAfterFirst := prog.PriceIndex

	require.NoError(t, prog.allocate(60_000, 1_000_000_000))
	assert.Equal(t, indexAfterFirst, prog.PriceIndex)
}

func TestAllocate_OnePeriodFullDistribution(t *testing.T) {
	prog, err := newIncentiveProgram("SUI", 10_000_000, 10_000_000, 60_000, 0)
	require.NoError(t, err)

	require.NoError(t, prog.allocate(60_000, 1_000_000_000))
	owed, err := owedFromDelta(1_000_000_000, prog.PriceIndex)
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000_000), owed)
}

func TestUpdateConfig_PartialFieldsLeaveOthersUnchanged(t *testing.T) {
	prog, err := newIncentiveProgram("SUI", 100, 1_000, 60_000, 0)
	require.NoError(t, err)

	newPeriod := uint64(2_000)
	require.NoError(t, prog.updateConfig(&newPeriod, nil))
	assert.Equal(t, uint64(2_000), prog.Config.PeriodAmount)
	assert.Equal(t, uint64(60_000), prog.Config.IntervalMs)
}

func TestUpdateConfig_ZeroIntervalRejected(t *testing.T) {
	prog, err := newIncentiveProgram("SUI", 100, 1_000, 60_000, 0)
	require.NoError(t, err)

	zero := uint64(0)
	assert.ErrorIs(t, prog.updateConfig(nil, &zero), ErrZeroIntervalUpdate)
}
