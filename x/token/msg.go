package token

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/codec"
	"github.com/iov-one/savingbank/errors"
)

func init() {
	codec.RegisterConcrete(&TransferMsg{}, "savingbank/token/TransferMsg")
	codec.RegisterConcrete(&ApproveMsg{}, "savingbank/token/ApproveMsg")
	codec.RegisterConcrete(&MintMsg{}, "savingbank/token/MintMsg")
}

const maxMemoSize = 128

// TransferMsg moves tokens from the signing source to the destination.
type TransferMsg struct {
	Source      savingbank.Address `json:"source"`
	Destination savingbank.Address `json:"destination"`
	Amount      uint64             `json:"amount"`
	Memo        string             `json:"memo,omitempty"`
}

var _ savingbank.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string {
	return "token/transfer"
}

func (m *TransferMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *TransferMsg) Unmarshal(raw []byte) error {
	*m = TransferMsg{}
	return codec.Unmarshal(raw, m)
}

func (m *TransferMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrInvalidAmount)
	}
	if len(m.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Field("Memo", errors.ErrInput, "cannot be longer than %d", maxMemoSize))
	}
	return errs
}

// ApproveMsg sets the amount a spender may pull from the signing owner. A
// zero amount revokes the allowance.
type ApproveMsg struct {
	Owner   savingbank.Address `json:"owner"`
	Spender savingbank.Address `json:"spender"`
	Amount  uint64             `json:"amount"`
}

var _ savingbank.Msg = (*ApproveMsg)(nil)

func (ApproveMsg) Path() string {
	return "token/approve"
}

func (m *ApproveMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *ApproveMsg) Unmarshal(raw []byte) error {
	*m = ApproveMsg{}
	return codec.Unmarshal(raw, m)
}

func (m *ApproveMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	errs = errors.AppendField(errs, "Spender", m.Spender.Validate())
	return errs
}

// MintMsg issues new tokens. Only the configured minter may sign it.
type MintMsg struct {
	Recipient savingbank.Address `json:"recipient"`
	Amount    uint64             `json:"amount"`
}

var _ savingbank.Msg = (*MintMsg)(nil)

func (MintMsg) Path() string {
	return "token/mint"
}

func (m *MintMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *MintMsg) Unmarshal(raw []byte) error {
	*m = MintMsg{}
	return codec.Unmarshal(raw, m)
}

func (m *MintMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrInvalidAmount)
	}
	return errs
}
