package corepool

import (
	pkgerrors "github.com/pkg/errors"

	"github.com/vechain/incentive-core/coin"
	"github.com/vechain/incentive-core/event"
)

// Harvest settles a user's accrued incentive for every program whose
// token type matches incentiveTokenType, across both active shares and
// any deactivating tranches still carrying unconsumed index delta. The
// ledger is always persisted back (never destroyed here, unlike
// Unstake): harvesting alone never empties a ledger's shares.
func (p *Pool) Harvest(incentiveTokenType string, user string) (coin.Coin, event.Harvest, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.nowMs()
	if err := p.allocateIncentive(now); err != nil {
		return coin.Coin{}, event.Harvest{}, err
	}

	ledger, ok := p.userShares[user]
	if !ok {
		return coin.Coin{}, event.Harvest{}, pkgerrors.Wrapf(ErrUserShareNotFound, "pool %s user %s", p.id, user)
	}
	if ledger.User != user {
		return coin.Coin{}, event.Harvest{}, pkgerrors.Wrapf(ErrUserMismatch, "pool %s", p.id)
	}

	var totalOwed uint64
	// Harvest iterates the program registry, never ledger keys: a
	// removed program's dangling LastIndexByProgramID entry is simply
	// never visited again, so it silently contributes nothing.
	for _, prog := range p.programs {
		if prog.TokenType != incentiveTokenType {
			continue
		}

		last, seen := ledger.LastIndexByProgramID[prog.ID]
		if !seen {
			last = 0
		}

		owed, err := owedFromIndexRange(ledger.ActiveShares, last, prog.PriceIndex)
		if err != nil {
			return coin.Coin{}, event.Harvest{}, err
		}

		for _, tranche := range ledger.Deactivating {
			cap, ok := tranche.SnapshotIndexByProgramID[prog.ID]
			if !ok || cap <= last {
				continue
			}
			trancheOwed, err := owedFromIndexRange(tranche.Shares, last, cap)
			if err != nil {
				return coin.Coin{}, event.Harvest{}, err
			}
			owed += trancheOwed
		}

		ledger.LastIndexByProgramID[prog.ID] = prog.PriceIndex

		if owed > prog.Balance {
			owed = prog.Balance
		}
		prog.Balance -= owed
		totalOwed += owed
	}

	p.log.Debug("harvest applied", "user", user, "incentive_token_type", incentiveTokenType, "amount", totalOwed)
	p.metrics.GetOrCreateCountMeter("harvest_total").Add(1)

	return coin.New(incentiveTokenType, totalOwed), event.Harvest{
		PoolID:             p.id.String(),
		IncentiveTokenType: incentiveTokenType,
		User:               user,
		HarvestAmount:      totalOwed,
	}, nil
}

// owedFromIndexRange computes floor(shares * (to - from) / indexBase). It
// is the shared primitive behind both the active-share owed amount and
// each deactivating tranche's capped owed amount.
func owedFromIndexRange(shares, from, to uint64) (uint64, error) {
	if to <= from || shares == 0 {
		return 0, nil
	}
	return owedFromDelta(shares, to-from)
}
