package plan

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ savingbank.Initializer = (*Initializer)(nil)

// FromGenesis creates every plan of the "plans" list, in order, so the
// first one gets id 1. Genesis plans are active.
func (*Initializer) FromGenesis(opts savingbank.Options, db savingbank.KVStore) error {
	var plans []CreatePlanMsg
	if err := opts.ReadOptions("plans", &plans); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	ctrl := NewController()
	for i, p := range plans {
		if err := p.Validate(); err != nil {
			return errors.Wrapf(err, "plan %d", i)
		}
		if _, err := ctrl.Create(db, p.Plan()); err != nil {
			return errors.Wrapf(err, "plan %d", i)
		}
	}
	return nil
}
