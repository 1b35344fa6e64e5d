package vault

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/codec"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/orm"
)

const packageName = "vault"

// CustodyCondition is the account holding the pooled funds. No key can sign
// for it, so funds leave it only through Withdraw.
var CustodyCondition = savingbank.NewCondition("vault", "custody", []byte("savingbank"))

// CustodyAddress is the token address of the pool.
var CustodyAddress = CustodyCondition.Address()

// Configuration holds the bound caller. It is empty until Bind is called.
type Configuration struct {
	Bound savingbank.Address `json:"bound"`
}

func (c *Configuration) Marshal() ([]byte, error) {
	return codec.Marshal(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	*c = Configuration{}
	return codec.Unmarshal(raw, c)
}

func (c *Configuration) Validate() error {
	if len(c.Bound) == 0 {
		return nil
	}
	return errors.Field("Bound", c.Bound.Validate(), "")
}

// State is the aggregate balance of the vault.
type State struct {
	Balance uint64 `json:"balance"`
}

var _ orm.Model = (*State)(nil)

func (s *State) Marshal() ([]byte, error) {
	return codec.Marshal(s)
}

func (s *State) Unmarshal(raw []byte) error {
	*s = State{}
	return codec.Unmarshal(raw, s)
}

func (s *State) Validate() error {
	return nil
}

// stateKey is the only key of the vault bucket.
var stateKey = []byte("state")

// NewStateBucket returns the bucket holding the vault State singleton.
func NewStateBucket() orm.ModelBucket {
	return orm.NewModelBucket("vault", &State{})
}
