package access

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/codec"
	"github.com/iov-one/savingbank/errors"
)

const packageName = "access"

// Configuration is the access control state. It is stored as a gconf
// singleton and changed only through the admin messages.
type Configuration struct {
	Admin  savingbank.Address `json:"admin"`
	Paused bool               `json:"paused"`
	// PenaltyReceiver is paid every early withdrawal penalty. When empty the
	// penalty stays in the vault.
	PenaltyReceiver savingbank.Address `json:"penalty_receiver,omitempty"`
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
	errs = errors.AppendField(errs, "Admin", c.Admin.Validate())
	if len(c.PenaltyReceiver) != 0 {
		errs = errors.AppendField(errs, "PenaltyReceiver", c.PenaltyReceiver.Validate())
	}
	return errs
}
