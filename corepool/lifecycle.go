package corepool

import (
	pkgerrors "github.com/pkg/errors"

	"github.com/vechain/incentive-core/coin"
	"github.com/vechain/incentive-core/event"
)

// Stake deposits stakeCoin into the pool and credits the caller with
// that many active shares. If the user already has a ledger, staking
// again OVERWRITES LastIndexByProgramID with the current snapshot of
// every program's price index -- any unharvested yield already accrued
// on the user's pre-existing active shares is silently forfeited by this
// call unless the caller harvested first. This is intentional, source-
// consistent behavior, not a bug; see DESIGN.md's Open Questions.
func (p *Pool) Stake(stakeCoin coin.Coin, user string) (event.Stake, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if stakeCoin.TokenType() != p.stakeTokenType {
		p.log.Warn("stake rejected: token type mismatch", "user", user, "got", stakeCoin.TokenType())
		return event.Stake{}, pkgerrors.Wrapf(ErrTokenTypeMismatch, "pool %s expects %q, got %q", p.id, p.stakeTokenType, stakeCoin.TokenType())
	}
	if stakeCoin.IsZero() {
		p.log.Warn("stake rejected: zero amount", "user", user)
		return event.Stake{}, ErrZeroCoin
	}

	now := p.nowMs()
	if err := p.allocateIncentive(now); err != nil {
		return event.Stake{}, err
	}

	amount := stakeCoin.Amount()
	p.stakeBalance += amount

	ledger, ok := p.userShares[user]
	if !ok {
		ledger = newUserShareLedger(user)
		p.userShares[user] = ledger
	}
	ledger.LastStakeMs = now
	ledger.ActiveShares += amount
	snap := snapshotIndexes(p.programs)
	ledger.LastIndexByProgramID = snap

	p.totalActiveShares += amount

	ev := event.Stake{
		PoolID:            p.id.String(),
		TokenType:         stakeCoin.TokenType(),
		User:              user,
		StakeAmount:       ledger.TotalShares(),
		StakeTsMs:         now,
		LastIndexSnapshot: stringifyIndexMap(snap),
	}
	p.log.Debug("stake applied", "user", user, "amount", amount, "total_shares", ledger.TotalShares())
	p.metrics.GetOrCreateCountMeter("stake_total").Add(1)
	return ev, nil
}

// Unsubscribe moves shares (all active shares if sharesOpt is nil) from
// active into a new deactivating tranche, starting the unlock countdown.
// The tranche captures a snapshot of every program's current price index:
// it earns only up to that snapshot cap, and contributes nothing further
// from a program once the user's observed index for it reaches the cap
// (see Harvest).
func (p *Pool) Unsubscribe(tokenType string, sharesOpt *uint64, user string) (event.Unsubscribe, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if tokenType != p.stakeTokenType {
		return event.Unsubscribe{}, pkgerrors.Wrapf(ErrTokenTypeMismatch, "pool %s expects %q, got %q", p.id, p.stakeTokenType, tokenType)
	}

	now := p.nowMs()
	if err := p.allocateIncentive(now); err != nil {
		return event.Unsubscribe{}, err
	}

	ledger, ok := p.userShares[user]
	if !ok {
		return event.Unsubscribe{}, pkgerrors.Wrapf(ErrUserShareNotFound, "pool %s user %s", p.id, user)
	}
	if ledger.User != user {
		return event.Unsubscribe{}, pkgerrors.Wrapf(ErrUserMismatch, "pool %s", p.id)
	}

	shares := ledger.ActiveShares
	if sharesOpt != nil {
		shares = *sharesOpt
	}
	if shares > ledger.ActiveShares {
		p.log.Warn("unsubscribe rejected: active shares not enough", "user", user, "requested", shares, "have", ledger.ActiveShares)
		return event.Unsubscribe{}, pkgerrors.Wrapf(ErrActiveSharesNotEnough, "pool %s user %s: requested %d, have %d", p.id, user, shares, ledger.ActiveShares)
	}

	ledger.ActiveShares -= shares
	unlockedMs := now + int64(p.unlockCountdownMs)
	ledger.Deactivating = append(ledger.Deactivating, DeactivatingTranche{
		Shares:                   shares,
		UnsubscribedMs:           now,
		UnlockedMs:               unlockedMs,
		SnapshotIndexByProgramID: snapshotIndexes(p.programs),
	})
	p.totalActiveShares -= shares

	p.log.Debug("unsubscribe applied", "user", user, "shares", shares, "unlocked_ms", unlockedMs)
	p.metrics.GetOrCreateCountMeter("unsubscribe_total").Add(1)
	return event.Unsubscribe{
		PoolID:             p.id.String(),
		TokenType:          tokenType,
		User:               user,
		UnsubscribedShares: shares,
		UnsubscribeTsMs:    now,
		UnlockedTsMs:       unlockedMs,
	}, nil
}

// Unstake withdraws principal from deactivating tranches that have
// already passed their unlock countdown, walking tranches in FIFO order
// (oldest first). If any tranche the walk needs to draw from hasn't
// unlocked yet, the whole call fails with ErrSharesNotYetExpired -- there
// is no partial withdrawal of what's currently available.
func (p *Pool) Unstake(tokenType string, sharesOpt *uint64, user string) (coin.Coin, event.Unstake, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if tokenType != p.stakeTokenType {
		return coin.Coin{}, event.Unstake{}, pkgerrors.Wrapf(ErrTokenTypeMismatch, "pool %s expects %q, got %q", p.id, p.stakeTokenType, tokenType)
	}

	now := p.nowMs()
	if err := p.allocateIncentive(now); err != nil {
		return coin.Coin{}, event.Unstake{}, err
	}

	ledger, ok := p.userShares[user]
	if !ok {
		return coin.Coin{}, event.Unstake{}, pkgerrors.Wrapf(ErrUserShareNotFound, "pool %s user %s", p.id, user)
	}
	if ledger.User != user {
		return coin.Coin{}, event.Unstake{}, pkgerrors.Wrapf(ErrUserMismatch, "pool %s", p.id)
	}

	target := ledger.TotalDeactivatingShares()
	if sharesOpt != nil {
		target = *sharesOpt
	}
	if target == 0 {
		return coin.Zero(tokenType), event.Unstake{
			PoolID:        p.id.String(),
			TokenType:     tokenType,
			User:          user,
			UnstakeAmount: 0,
			UnstakeTsMs:   now,
		}, nil
	}

	var consumed uint64
	remaining := target
	keep := make([]DeactivatingTranche, 0, len(ledger.Deactivating))
	for _, tranche := range ledger.Deactivating {
		if remaining == 0 {
			keep = append(keep, tranche)
			continue
		}
		if tranche.UnlockedMs > now {
			p.log.Warn("unstake rejected: shares not yet expired", "user", user, "unlocked_ms", tranche.UnlockedMs, "now", now)
			return coin.Coin{}, event.Unstake{}, pkgerrors.Wrapf(ErrSharesNotYetExpired, "pool %s user %s: tranche unlocks at %d, now %d", p.id, user, tranche.UnlockedMs, now)
		}
		if tranche.Shares <= remaining {
			consumed += tranche.Shares
			remaining -= tranche.Shares
			continue // tranche fully consumed, dropped from keep
		}
		tranche.Shares -= remaining
		consumed += remaining
		remaining = 0
		keep = append(keep, tranche)
	}
	ledger.Deactivating = keep

	if ledger.isEmpty() {
		delete(p.userShares, user)
	}

	p.stakeBalance -= consumed

	p.log.Debug("unstake applied", "user", user, "consumed", consumed)
	p.metrics.GetOrCreateCountMeter("unstake_total").Add(1)
	return coin.New(tokenType, consumed), event.Unstake{
		PoolID:        p.id.String(),
		TokenType:     tokenType,
		User:          user,
		UnstakeAmount: consumed,
		UnstakeTsMs:   now,
	}, nil
}

func stringifyIndexMap(m map[ProgramID]uint64) map[string]uint64 {
	out := make(map[string]uint64, len(m))
	for k, v := range m {
		out[k.String()] = v
	}
	return out
}
