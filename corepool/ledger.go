package corepool

// DeactivatingTranche is a bundle of shares in the unlock-countdown
// window. It earns incentives only up to the per-program index snapshot
// captured at the moment it was unsubscribed; once a ledger's observed
// index for a program passes that snapshot, the tranche contributes
// nothing further from that program.
type DeactivatingTranche struct {
	Shares         uint64
	UnsubscribedMs int64
	UnlockedMs     int64

	// SnapshotIndexByProgramID records PriceIndex for every program that
	// existed at the moment of unsubscription, keyed by ProgramID (never
	// by positional index -- removal shifts positions, not ids).
	SnapshotIndexByProgramID map[ProgramID]uint64
}

// UserShareLedger is the per-user accounting record within one pool.
type UserShareLedger struct {
	User        string
	LastStakeMs int64

	ActiveShares uint64
	Deactivating []DeactivatingTranche

	// LastIndexByProgramID is the last PriceIndex each program had when
	// this user's owed incentive was last settled against it (by a
	// stake, which overwrites it, or a harvest, which advances it).
	// Absence means "never yet earned from this program"; the baseline
	// is implicitly 0.
	LastIndexByProgramID map[ProgramID]uint64
}

func newUserShareLedger(user string) *UserShareLedger {
	return &UserShareLedger{
		User:                 user,
		LastIndexByProgramID: make(map[ProgramID]uint64),
	}
}

// TotalShares is active_shares + sum(tranche.shares); it is never stored
// redundantly, always derived from its parts, so the two can never drift
// apart.
func (l *UserShareLedger) TotalShares() uint64 {
	total := l.ActiveShares
	for _, t := range l.Deactivating {
		total += t.Shares
	}
	return total
}

// TotalDeactivatingShares sums the shares still locked in the unlock
// countdown, used as unstake's default target when the caller doesn't
// specify an explicit amount.
func (l *UserShareLedger) TotalDeactivatingShares() uint64 {
	var total uint64
	for _, t := range l.Deactivating {
		total += t.Shares
	}
	return total
}

// isEmpty reports whether the ledger has nothing left to track and is a
// candidate for destruction.
func (l *UserShareLedger) isEmpty() bool {
	return l.ActiveShares == 0 && len(l.Deactivating) == 0
}

// snapshotIndexes captures the current PriceIndex of every program in
// the registry, keyed by ProgramID, for use as either a stake overwrite
// or a tranche's snapshot cap.
func snapshotIndexes(programs []*IncentiveProgram) map[ProgramID]uint64 {
	snap := make(map[ProgramID]uint64, len(programs))
	for _, p := range programs {
		snap[p.ID] = p.PriceIndex
	}
	return snap
}
