package utils

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
)

// Savepoint will isolate all data inside of the call,
// and commit/rollback to savepoint based on if error.
//
// Every saving bank operation is all-or-nothing: a withdraw that fails on
// the vault payout must not leave its deposit closed or its certificate
// burned. The savepoint on deliver is what provides that guarantee.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ savingbank.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator,
// but you must call OnCheck/OnDeliver so it will be triggered
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on CheckTx
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that will trigger on DeliverTx
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

// Check will optionally set a checkpoint
func (s Savepoint) Check(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx, next savingbank.Checker) (*savingbank.CheckResult, error) {
	cache, ok := cacheWrap(db, s.onCheck)
	if !ok {
		return next.Check(ctx, db, tx)
	}
	res, err := next.Check(ctx, cache, tx)
	if err := settle(ctx, cache, err); err != nil {
		return nil, err
	}
	return res, nil
}

// Deliver will optionally set a checkpoint
func (s Savepoint) Deliver(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx, next savingbank.Deliverer) (*savingbank.DeliverResult, error) {
	cache, ok := cacheWrap(db, s.onDeliver)
	if !ok {
		return next.Deliver(ctx, db, tx)
	}
	res, err := next.Deliver(ctx, cache, tx)
	if err := settle(ctx, cache, err); err != nil {
		return nil, err
	}
	return res, nil
}

func cacheWrap(db savingbank.KVStore, enabled bool) (savingbank.KVCacheWrap, bool) {
	if !enabled {
		return nil, false
	}
	cstore, ok := db.(savingbank.CacheableKVStore)
	if !ok {
		return nil, false
	}
	return cstore.CacheWrap(), true
}

// settle writes the cache when the call succeeded and drops it otherwise.
func settle(ctx savingbank.Context, cache savingbank.KVCacheWrap, callErr error) error {
	if callErr != nil {
		cache.Discard()
		savingbank.GetLogger(ctx).Debug("savepoint rollback", "err", callErr)
		return callErr
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
