package utils

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ savingbank.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx, next savingbank.Checker) (_ *savingbank.CheckResult, err error) {
	defer logPanic(ctx, &err)
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx, next savingbank.Deliverer) (_ *savingbank.DeliverResult, err error) {
	defer logPanic(ctx, &err)
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}

func logPanic(ctx savingbank.Context, err *error) {
	if errors.ErrPanic.Is(*err) {
		savingbank.GetLogger(ctx).Error("recovered panic", "err", *err)
	}
}
