// Package corepool implements the staking and incentive-distribution
// accounting engine: the per-pool data model, the price-index incentive
// algorithm, the share lifecycle (active -> deactivating -> withdrawable),
// harvest across both active and deactivating shares, and the invariants
// tying these together.
//
// Execution model is single-threaded per pool transaction: every
// exported operation on Pool (staking, harvesting, allocation and the
// admin methods) takes the pool's own mutex for its full duration, so a single pool never observes a partially-applied
// operation. Multiple pools execute independently; see Manager.
package corepool

import (
	"log/slog"
	"sync"

	"github.com/jonboulle/clockwork"
	pkgerrors "github.com/pkg/errors"

	"github.com/vechain/incentive-core/coin"
	"github.com/vechain/incentive-core/event"
	"github.com/vechain/incentive-core/internal/corelog"
	"github.com/vechain/incentive-core/internal/metrics"
)

// Pool is the accounting unit owning one stake-token balance and zero or
// more incentive programs.
type Pool struct {
	mu sync.Mutex

	id                PoolID
	stakeTokenType    string
	unlockCountdownMs uint64
	active            bool

	totalActiveShares uint64
	stakeBalance      uint64

	programs   []*IncentiveProgram
	userShares map[string]*UserShareLedger

	clock   clockwork.Clock
	metrics metrics.Metrics
	log     *slog.Logger
}

// newPool constructs a pool. unlock_countdown_ms must be strictly
// positive: a zero countdown would let unsubscribed shares unstake
// immediately, collapsing the deactivating state entirely.
func newPool(stakeTokenType string, unlockCountdownMs uint64, clock clockwork.Clock, m metrics.Metrics, logger *slog.Logger) (*Pool, PoolID, AdminCap, error) {
	if unlockCountdownMs == 0 {
		return nil, PoolID{}, AdminCap{}, ErrZeroUnlockCountdown
	}
	id := newPoolID()
	if logger == nil {
		logger = corelog.Discard()
	}
	p := &Pool{
		id:                id,
		stakeTokenType:    stakeTokenType,
		unlockCountdownMs: unlockCountdownMs,
		active:            true,
		userShares:        make(map[string]*UserShareLedger),
		clock:             clock,
		metrics:           m,
		log:               logger.With("pool", id.String()),
	}
	return p, id, newAdminCap(id), nil
}

func (p *Pool) requireCap(cap AdminCap) error {
	if !cap.Authorizes(p.id) {
		return pkgerrors.Wrapf(ErrCapabilityMismatch, "pool %s", p.id)
	}
	return nil
}

// ID returns the pool's opaque identifier.
func (p *Pool) ID() PoolID { return p.id }

// StakeTokenType returns the token type this pool accepts for staking.
func (p *Pool) StakeTokenType() string { return p.stakeTokenType }

// allocateIncentive advances every active program's price index to the
// interval-aligned boundary at or before nowMs. It is idempotent for a
// given nowMs: calling it twice in a row with the same value advances
// nothing the second time, because every program's LastAllocateMs is
// already at or past that boundary.
//
// Callers must already hold p.mu.
func (p *Pool) allocateIncentive(nowMs int64) error {
	for _, prog := range p.programs {
		before := prog.PriceIndex
		if err := prog.allocate(nowMs, p.totalActiveShares); err != nil {
			return err
		}
		if prog.PriceIndex != before {
			p.metrics.GetOrCreateCountMeter("allocate_total").Add(1)
		}
	}
	return nil
}

func (p *Pool) nowMs() int64 {
	return p.clock.Now().UnixMilli()
}

func (p *Pool) findProgram(idx int) (*IncentiveProgram, error) {
	if idx < 0 || idx >= len(p.programs) {
		return nil, pkgerrors.Wrapf(ErrProgramIndexOutOfRange, "pool %s: index %d of %d programs", p.id, idx, len(p.programs))
	}
	return p.programs[idx], nil
}

// CreateIncentiveProgram creates a new incentive program funded by
// incentiveCoin, starting active immediately, and returns the program's
// id together with the event describing the creation. The initial
// LastAllocateMs is "now", unrounded, so the first period accrues only
// from this moment onward -- pre-existing stakers are never retroactively
// credited for time before the program existed.
func (p *Pool) CreateIncentiveProgram(cap AdminCap, incentiveCoin coin.Coin, periodAmount, intervalMs uint64) (ProgramID, event.CreateIncentiveProgram, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.requireCap(cap); err != nil {
		return ProgramID{}, event.CreateIncentiveProgram{}, err
	}

	now := p.nowMs()
	prog, err := newIncentiveProgram(incentiveCoin.TokenType(), incentiveCoin.Amount(), periodAmount, intervalMs, now)
	if err != nil {
		return ProgramID{}, event.CreateIncentiveProgram{}, err
	}
	p.programs = append(p.programs, prog)

	ev := event.CreateIncentiveProgram{
		PoolID:       p.id.String(),
		ProgramID:    prog.ID.String(),
		TokenType:    prog.TokenType,
		PeriodAmount: periodAmount,
		IntervalMs:   intervalMs,
		InitialMs:    now,
	}
	return prog.ID, ev, nil
}

// DeactivateIncentiveProgram freezes a program's index in place without
// advancing it first: any elapsed-but-unallocated window at the moment
// of deactivation is not distributed, and since reactivation re-anchors
// LastAllocateMs to the reactivation time, it is never distributed later.
func (p *Pool) DeactivateIncentiveProgram(cap AdminCap, programIdx int, tokenType string) (event.DeactivateIncentiveProgram, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.requireCap(cap); err != nil {
		return event.DeactivateIncentiveProgram{}, err
	}
	prog, err := p.findProgram(programIdx)
	if err != nil {
		return event.DeactivateIncentiveProgram{}, err
	}
	if err := prog.deactivate(tokenType); err != nil {
		return event.DeactivateIncentiveProgram{}, err
	}
	return event.DeactivateIncentiveProgram{
		PoolID:    p.id.String(),
		ProgramID: prog.ID.String(),
		TokenType: prog.TokenType,
	}, nil
}

// ActivateIncentiveProgram reverses DeactivateIncentiveProgram. Because
// allocation never ran while inactive, the program resumes earning from
// "now" with no retroactive catch-up for the frozen window.
func (p *Pool) ActivateIncentiveProgram(cap AdminCap, programIdx int, tokenType string) (event.ActivateIncentiveProgram, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.requireCap(cap); err != nil {
		return event.ActivateIncentiveProgram{}, err
	}
	prog, err := p.findProgram(programIdx)
	if err != nil {
		return event.ActivateIncentiveProgram{}, err
	}
	if err := prog.activate(tokenType); err != nil {
		return event.ActivateIncentiveProgram{}, err
	}
	// Resuming accrual should not credit the frozen window to the new
	// "now": re-anchor LastAllocateMs so the next allocateIncentive call
	// only distributes time elapsed after reactivation.
	prog.LastAllocateMs = p.nowMs()
	return event.ActivateIncentiveProgram{
		PoolID:    p.id.String(),
		ProgramID: prog.ID.String(),
		TokenType: prog.TokenType,
	}, nil
}

// RemoveIncentiveProgram destroys a program record and returns its
// remaining balance as a token transfer. Any ledger's
// LastIndexByProgramID entry for this id becomes dangling; harvest
// iterates the program registry, not ledger keys, so dangling entries
// are silently ignored rather than erroring.
func (p *Pool) RemoveIncentiveProgram(cap AdminCap, programIdx int, tokenType string) (coin.Coin, event.RemoveIncentiveProgram, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.requireCap(cap); err != nil {
		return coin.Coin{}, event.RemoveIncentiveProgram{}, err
	}
	prog, err := p.findProgram(programIdx)
	if err != nil {
		return coin.Coin{}, event.RemoveIncentiveProgram{}, err
	}
	if err := prog.checkTokenType(tokenType); err != nil {
		return coin.Coin{}, event.RemoveIncentiveProgram{}, err
	}

	returned := coin.New(prog.TokenType, prog.Balance)
	p.programs = append(p.programs[:programIdx], p.programs[programIdx+1:]...)

	return returned, event.RemoveIncentiveProgram{
		PoolID:         p.id.String(),
		ProgramID:      prog.ID.String(),
		TokenType:      prog.TokenType,
		ReturnedAmount: returned.Amount(),
	}, nil
}

// UpdateIncentiveConfig changes a program's rate configuration without
// pre-allocating: the new rate retroactively applies to the window since
// LastAllocateMs. Callers who want the old rate applied to accrued time
// must call Pool.AllocateIncentive (exposed for exactly this purpose)
// themselves before calling this.
func (p *Pool) UpdateIncentiveConfig(cap AdminCap, programIdx int, periodAmount, intervalMs *uint64) (event.UpdateIncentiveConfig, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.requireCap(cap); err != nil {
		return event.UpdateIncentiveConfig{}, err
	}
	prog, err := p.findProgram(programIdx)
	if err != nil {
		return event.UpdateIncentiveConfig{}, err
	}
	if err := prog.updateConfig(periodAmount, intervalMs); err != nil {
		return event.UpdateIncentiveConfig{}, err
	}
	return event.UpdateIncentiveConfig{
		PoolID:       p.id.String(),
		ProgramID:    prog.ID.String(),
		PeriodAmount: prog.Config.PeriodAmount,
		IntervalMs:   prog.Config.IntervalMs,
	}, nil
}

// AllocateIncentive exposes the allocation step directly, for admin
// flows (like a config update) that want old rates applied to accrued
// time before a rate change takes effect.
func (p *Pool) AllocateIncentive(now int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.allocateIncentive(now)
}

// exportGauges snapshots this pool's current counters into m. Called
// periodically by Manager.StartMetricsExporter, never from within a
// mutating operation's critical section beyond its own brief lock.
func (p *Pool) exportGauges(m metrics.Metrics) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m.GetOrCreateGaugeVecMeter("pool_total_active_shares", []string{"pool"}).
		GaugeWithLabel(int64(p.totalActiveShares), map[string]string{"pool": p.id.String()})

	indexGauge := m.GetOrCreateGaugeVecMeter("program_price_index", []string{"pool", "program"})
	balanceGauge := m.GetOrCreateGaugeVecMeter("program_balance", []string{"pool", "program"})
	for _, prog := range p.programs {
		labels := map[string]string{"pool": p.id.String(), "program": prog.ID.String()}
		indexGauge.GaugeWithLabel(int64(prog.PriceIndex), labels)
		balanceGauge.GaugeWithLabel(int64(prog.Balance), labels)
	}
}

// UpdateUnlockCountdownMs changes the pool-wide unlock countdown applied
// to future unsubscriptions. Tranches already deactivating keep the
// UnlockedMs they were given when they were created.
func (p *Pool) UpdateUnlockCountdownMs(cap AdminCap, newMs uint64) (event.UpdateUnlockCountdownTsMs, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.requireCap(cap); err != nil {
		return event.UpdateUnlockCountdownTsMs{}, err
	}
	if newMs == 0 {
		return event.UpdateUnlockCountdownTsMs{}, ErrZeroUnlockCountdown
	}
	p.unlockCountdownMs = newMs
	return event.UpdateUnlockCountdownTsMs{PoolID: p.id.String(), NewMs: newMs}, nil
}
