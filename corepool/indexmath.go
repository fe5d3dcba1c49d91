package corepool

import (
	"math"

	"github.com/holiman/uint256"
)

// indexBase is the fixed-point multiplier applied to price indexes: an
// index unit represents 1/indexBase of one incentive token per share.
const indexBase = 1_000_000_000

// mulDivU64 computes floor(a*b/denom) using a 256-bit intermediate so the
// a*b multiplication can never silently wrap, then narrows the quotient
// back to uint64. denom must be non-zero; callers guard that separately
// because a zero denominator (total_active_shares == 0) is a legitimate
// "skip this period" case handled by the caller, not an arithmetic error.
func mulDivU64(a, b, denom uint64) (uint64, error) {
	x := uint256.NewInt(a)
	y := uint256.NewInt(b)

	prod := new(uint256.Int)
	if _, overflow := prod.MulOverflow(x, y); overflow {
		return 0, ErrArithmeticOverflow
	}

	d := uint256.NewInt(denom)
	q := new(uint256.Int).Div(prod, d)
	if !q.IsUint64() {
		return 0, ErrArithmeticOverflow
	}
	return q.Uint64(), nil
}

// narrowToUint64 range-checks a uint256 intermediate before it is allowed
// to become a plain balance/share amount.
func narrowToUint64(v *uint256.Int) (uint64, error) {
	if !v.IsUint64() || v.Uint64() > math.MaxUint64 {
		return 0, ErrArithmeticOverflow
	}
	return v.Uint64(), nil
}

// indexDelta computes the per-share price index increment contributed by
// distributing periodAmount over totalActiveShares, in fixed-point units
// of indexBase. Returns (0, nil) when totalActiveShares == 0: the period
// is silently skipped rather than treated as an error.
func indexDelta(periodAmount, totalActiveShares uint64) (uint64, error) {
	if totalActiveShares == 0 {
		return 0, nil
	}
	return mulDivU64(indexBase, periodAmount, totalActiveShares)
}

// periodAmountForElapsed computes config.PeriodAmount * elapsedMs / intervalMs
// with a wide intermediate, matching the allocate_incentive formula.
func periodAmountForElapsed(periodAmount, elapsedMs, intervalMs uint64) (uint64, error) {
	return mulDivU64(periodAmount, elapsedMs, intervalMs)
}

// owedFromDelta computes floor(shares * deltaIndex / indexBase), the
// incentive amount owed for a given index delta over a share quantity.
func owedFromDelta(shares, deltaIndex uint64) (uint64, error) {
	return mulDivU64(shares, deltaIndex, indexBase)
}
