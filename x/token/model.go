package token

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/codec"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/orm"
)

// Balance is the amount held by a single address.
type Balance struct {
	Amount uint64 `json:"amount"`
}

var _ orm.Model = (*Balance)(nil)

func (b *Balance) Marshal() ([]byte, error) {
	return codec.Marshal(b)
}

func (b *Balance) Unmarshal(raw []byte) error {
	*b = Balance{}
	return codec.Unmarshal(raw, b)
}

func (b *Balance) Validate() error {
	return nil
}

// Allowance is the amount a spender may still pull from an owner.
type Allowance struct {
	Amount uint64 `json:"amount"`
}

var _ orm.Model = (*Allowance)(nil)

func (a *Allowance) Marshal() ([]byte, error) {
	return codec.Marshal(a)
}

func (a *Allowance) Unmarshal(raw []byte) error {
	*a = Allowance{}
	return codec.Unmarshal(raw, a)
}

func (a *Allowance) Validate() error {
	return nil
}

// NewBalanceBucket returns a bucket of balances keyed by holder address.
func NewBalanceBucket() orm.ModelBucket {
	return orm.NewModelBucket("balance", &Balance{})
}

// NewAllowanceBucket returns a bucket of allowances keyed by
// AllowanceKey(owner, spender).
func NewAllowanceBucket() orm.ModelBucket {
	return orm.NewModelBucket("allowance", &Allowance{})
}

// AllowanceKey is the owner address followed by the spender address. All
// allowances given by one owner share the owner prefix.
func AllowanceKey(owner, spender savingbank.Address) []byte {
	key := make([]byte, 0, len(owner)+len(spender))
	key = append(key, owner...)
	return append(key, spender...)
}

const packageName = "token"

// Configuration describes the asset.
type Configuration struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint32 `json:"decimals"`
	// Minter is the only address allowed to issue new tokens.
	Minter savingbank.Address `json:"minter"`
}

func (c *Configuration) Marshal() ([]byte, error) {
	return codec.Marshal(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	*c = Configuration{}
	return codec.Unmarshal(raw, c)
}

func (c *Configuration) Validate() error {
	var errs error
	if c.Name == "" {
		errs = errors.AppendField(errs, "Name", errors.ErrEmpty)
	}
	if c.Symbol == "" {
		errs = errors.AppendField(errs, "Symbol", errors.ErrEmpty)
	}
	if c.Decimals > 18 {
		errs = errors.Append(errs, errors.Field("Decimals", errors.ErrInput, "at most 18"))
	}
	errs = errors.AppendField(errs, "Minter", c.Minter.Validate())
	return errs
}
