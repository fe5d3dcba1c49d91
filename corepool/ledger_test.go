package corepool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUserShareLedger_StartsEmpty(t *testing.T) {
	l := newUserShareLedger("alice")
	assert.Equal(t, "alice", l.User)
	assert.True(t, l.isEmpty())
	assert.Equal(t, uint64(0), l.TotalShares())
}

func TestTotalShares_SumsActiveAndDeactivating(t *testing.T) {
	l := newUserShareLedger("alice")
	l.ActiveShares = 100
	l.Deactivating = []DeactivatingTranche{{Shares: 30}, {Shares: 20}}
	assert.Equal(t, uint64(150), l.TotalShares())
	assert.Equal(t, uint64(50), l.TotalDeactivatingShares())
}

func TestIsEmpty_FalseWhileAnySharesRemain(t *testing.T) {
	l := newUserShareLedger("alice")
	l.ActiveShares = 1
	assert.False(t, l.isEmpty())

	l.ActiveShares = 0
	l.Deactivating = []DeactivatingTranche{{Shares: 1}}
	assert.False(t, l.isEmpty())
}

func TestSnapshotIndexes_KeyedByProgramID(t *testing.T) {
	p1, err := newIncentiveProgram("SUI", 100, 1, 60_000, 0)
	assert.NoError(t, err)
	p1.PriceIndex = 42

	snap := snapshotIndexes([]*IncentiveProgram{p1})
	assert.Equal(t, uint64(42), snap[p1.ID])
}
