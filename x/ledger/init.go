package ledger

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/x/certificate"
	"github.com/iov-one/savingbank/x/token"
	"github.com/iov-one/savingbank/x/vault"
)

// Initializer binds the vault and the certificate registry to the ledger
// account. It must run after their own initializers.
type Initializer struct{}

var _ savingbank.Initializer = (*Initializer)(nil)

// FromGenesis binds what is not bound yet. A genesis that binds either of
// them to another address is rejected.
func (*Initializer) FromGenesis(opts savingbank.Options, db savingbank.KVStore) error {
	v := vault.NewController(token.NewController())
	bound, err := v.Bound(db)
	if err != nil {
		return err
	}
	switch {
	case len(bound) == 0:
		if err := v.Bind(db, LedgerAddress); err != nil {
			return errors.Wrap(err, "bind vault")
		}
	case !bound.Equals(LedgerAddress):
		return errors.Wrapf(errors.ErrState, "vault bound to %s", bound)
	}

	certs := certificate.NewController()
	minter, err := certs.Minter(db)
	if err != nil {
		return err
	}
	switch {
	case len(minter) == 0:
		if err := certs.Bind(db, LedgerAddress); err != nil {
			return errors.Wrap(err, "bind certificate minter")
		}
	case !minter.Equals(LedgerAddress):
		return errors.Wrapf(errors.ErrState, "certificate minter is %s", minter)
	}
	return nil
}
