package token

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/orm"
)

// Controller is the functionality other extensions need to move the asset.
type Controller interface {
	Balance(db savingbank.ReadOnlyKVStore, owner savingbank.Address) (uint64, error)
	Allowance(db savingbank.ReadOnlyKVStore, owner, spender savingbank.Address) (uint64, error)
	Transfer(db savingbank.KVStore, from, to savingbank.Address, amount uint64) error
	// TransferFrom moves funds of from on behalf of spender, consuming the
	// allowance from has given to spender.
	TransferFrom(db savingbank.KVStore, spender, from, to savingbank.Address, amount uint64) error
	Approve(db savingbank.KVStore, owner, spender savingbank.Address, amount uint64) error
	Mint(db savingbank.KVStore, to savingbank.Address, amount uint64) error
}

// BaseController is the default Controller implementation.
type BaseController struct {
	balances   orm.ModelBucket
	allowances orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller over the token buckets.
func NewController() BaseController {
	return BaseController{
		balances:   NewBalanceBucket(),
		allowances: NewAllowanceBucket(),
	}
}

func (c BaseController) Balance(db savingbank.ReadOnlyKVStore, owner savingbank.Address) (uint64, error) {
	var b Balance
	switch err := c.balances.One(db, owner, &b); {
	case err == nil:
		return b.Amount, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, errors.Wrap(err, "load balance")
	}
}

func (c BaseController) Allowance(db savingbank.ReadOnlyKVStore, owner, spender savingbank.Address) (uint64, error) {
	var a Allowance
	switch err := c.allowances.One(db, AllowanceKey(owner, spender), &a); {
	case err == nil:
		return a.Amount, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, errors.Wrap(err, "load allowance")
	}
}

func (c BaseController) Transfer(db savingbank.KVStore, from, to savingbank.Address, amount uint64) error {
	if err := from.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	have, err := c.Balance(db, from)
	if err != nil {
		return err
	}
	if have < amount {
		return errors.Wrapf(errors.ErrInsufficientBalance, "balance %d, required %d", have, amount)
	}
	if from.Equals(to) {
		return nil
	}
	if err := c.setBalance(db, from, have-amount); err != nil {
		return err
	}
	return c.credit(db, to, amount)
}

func (c BaseController) TransferFrom(db savingbank.KVStore, spender, from, to savingbank.Address, amount uint64) error {
	allowed, err := c.Allowance(db, from, spender)
	if err != nil {
		return err
	}
	if allowed < amount {
		return errors.Wrapf(errors.ErrInsufficientBalance, "allowance %d, required %d", allowed, amount)
	}
	if err := c.Transfer(db, from, to, amount); err != nil {
		return err
	}
	return c.Approve(db, from, spender, allowed-amount)
}

func (c BaseController) Approve(db savingbank.KVStore, owner, spender savingbank.Address, amount uint64) error {
	if err := owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := spender.Validate(); err != nil {
		return errors.Wrap(err, "spender")
	}
	key := AllowanceKey(owner, spender)
	if amount == 0 {
		if err := c.allowances.Delete(db, key); err != nil && !errors.ErrNotFound.Is(err) {
			return errors.Wrap(err, "clear allowance")
		}
		return nil
	}
	if _, err := c.allowances.Put(db, key, &Allowance{Amount: amount}); err != nil {
		return errors.Wrap(err, "store allowance")
	}
	return nil
}

func (c BaseController) Mint(db savingbank.KVStore, to savingbank.Address, amount uint64) error {
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	return c.credit(db, to, amount)
}

func (c BaseController) credit(db savingbank.KVStore, to savingbank.Address, amount uint64) error {
	have, err := c.Balance(db, to)
	if err != nil {
		return err
	}
	if have+amount < have {
		return errors.Wrap(errors.ErrOverflow, "balance")
	}
	return c.setBalance(db, to, have+amount)
}

func (c BaseController) setBalance(db savingbank.KVStore, owner savingbank.Address, amount uint64) error {
	if _, err := c.balances.Put(db, owner, &Balance{Amount: amount}); err != nil {
		return errors.Wrap(err, "store balance")
	}
	return nil
}
