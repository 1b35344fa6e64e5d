/*
Package interest computes the interest and the early withdrawal penalty of a
deposit. The functions are pure: they read neither the store nor the clock.

Both results are truncated towards zero, so rounding never pays out more than
the plan promises.
*/
package interest

import (
	"math/big"

	"github.com/iov-one/savingbank/errors"
)

const (
	// BasisPoints is the denominator of every rate. 10000 bps = 100%.
	BasisPoints = 10000
	// DaysPerYear is the length of the year interest rates are quoted for.
	DaysPerYear = 365
)

// Rates is implemented by plans. A plan snapshot is enough to price a
// deposit.
type Rates interface {
	GetInterestRateBps() uint32
	GetPenaltyRateBps() uint32
}

// Interest returns floor(principal * rate * days / (10000 * 365)).
//
// The product is computed on big integers, so no principal magnitude can
// overflow the intermediate value. Only a final result above uint64 fails,
// with ErrOverflow.
func Interest(principal uint64, rates Rates, termDays uint32) (uint64, error) {
	if principal == 0 {
		return 0, errors.Wrap(errors.ErrInvalidAmount, "principal must be positive")
	}
	n := new(big.Int).SetUint64(principal)
	n.Mul(n, big.NewInt(int64(rates.GetInterestRateBps())))
	n.Mul(n, big.NewInt(int64(termDays)))
	n.Quo(n, big.NewInt(BasisPoints*DaysPerYear))
	return toUint64(n)
}

// Penalty returns floor(principal * penaltyRate / 10000).
func Penalty(principal uint64, rates Rates) (uint64, error) {
	n := new(big.Int).SetUint64(principal)
	n.Mul(n, big.NewInt(int64(rates.GetPenaltyRateBps())))
	n.Quo(n, big.NewInt(BasisPoints))
	return toUint64(n)
}

func toUint64(n *big.Int) (uint64, error) {
	if !n.IsUint64() {
		return 0, errors.Wrapf(errors.ErrOverflow, "%s does not fit in 64 bits", n)
	}
	return n.Uint64(), nil
}
