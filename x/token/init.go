package token

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ savingbank.Initializer = (*Initializer)(nil)

// GenesisBalance is a single entry of the "balances" genesis list.
type GenesisBalance struct {
	Address savingbank.Address `json:"address"`
	Amount  uint64             `json:"amount"`
}

// FromGenesis stores the asset configuration and the initial balances.
func (*Initializer) FromGenesis(opts savingbank.Options, db savingbank.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(db, opts, packageName, &conf); {
	case errors.ErrNotFound.Is(err):
		// No asset configured, nothing to mint either.
		return nil
	case err != nil:
		return errors.Wrap(err, "cannot initialize gconf based configuration")
	}

	var balances []GenesisBalance
	if err := opts.ReadOptions("balances", &balances); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	ctrl := NewController()
	for i, b := range balances {
		if err := ctrl.Mint(db, b.Address, b.Amount); err != nil {
			return errors.Wrapf(err, "balance %d", i)
		}
	}
	return nil
}
