package certificate

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/codec"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/orm"
)

const packageName = "certificate"

// Certificate is a single ownership unit.
type Certificate struct {
	Owner savingbank.Address `json:"owner"`
	// Approved may transfer the certificate once. Empty when nobody is.
	Approved savingbank.Address `json:"approved,omitempty"`
}

var _ orm.Model = (*Certificate)(nil)

func (c *Certificate) Marshal() ([]byte, error) {
	return codec.Marshal(c)
}

func (c *Certificate) Unmarshal(raw []byte) error {
	*c = Certificate{}
	return codec.Unmarshal(raw, c)
}

func (c *Certificate) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	if len(c.Approved) != 0 {
		errs = errors.AppendField(errs, "Approved", c.Approved.Validate())
	}
	return errs
}

func ownerIndex(m orm.Model) ([]byte, error) {
	c, ok := m.(*Certificate)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return c.Owner, nil
}

// NewBucket returns the certificate bucket, indexed by owner.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("cert", &Certificate{},
		orm.WithNativeIndex("owner", ownerIndex),
	)
}

// Configuration describes the registry. The minter is empty until bound.
type Configuration struct {
	Name   string             `json:"name"`
	Symbol string             `json:"symbol"`
	Minter savingbank.Address `json:"minter,omitempty"`
}

// DefaultConfiguration is used when the genesis does not declare one.
func DefaultConfiguration() Configuration {
	return Configuration{
		Name:   "SavingBank Deposit Certificate",
		Symbol: "SBDC",
	}
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
	if len(c.Minter) != 0 {
		errs = errors.AppendField(errs, "Minter", c.Minter.Validate())
	}
	return errs
}
