package access

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/codec"
	"github.com/iov-one/savingbank/errors"
)

func init() {
	codec.RegisterConcrete(&PauseMsg{}, "savingbank/access/PauseMsg")
	codec.RegisterConcrete(&UnpauseMsg{}, "savingbank/access/UnpauseMsg")
	codec.RegisterConcrete(&SetPenaltyReceiverMsg{}, "savingbank/access/SetPenaltyReceiverMsg")
}

// PauseMsg stops all mutating deposit operations.
type PauseMsg struct{}

var _ savingbank.Msg = (*PauseMsg)(nil)

func (PauseMsg) Path() string {
	return "access/pause"
}

func (m *PauseMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *PauseMsg) Unmarshal(raw []byte) error {
	*m = PauseMsg{}
	return codec.Unmarshal(raw, m)
}

func (m *PauseMsg) Validate() error {
	return nil
}

// UnpauseMsg resumes operations.
type UnpauseMsg struct{}

var _ savingbank.Msg = (*UnpauseMsg)(nil)

func (UnpauseMsg) Path() string {
	return "access/unpause"
}

func (m *UnpauseMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *UnpauseMsg) Unmarshal(raw []byte) error {
	*m = UnpauseMsg{}
	return codec.Unmarshal(raw, m)
}

func (m *UnpauseMsg) Validate() error {
	return nil
}

// SetPenaltyReceiverMsg changes the address paid early withdrawal
// penalties. An empty receiver retains penalties in the vault.
type SetPenaltyReceiverMsg struct {
	Receiver savingbank.Address `json:"receiver,omitempty"`
}

var _ savingbank.Msg = (*SetPenaltyReceiverMsg)(nil)

func (SetPenaltyReceiverMsg) Path() string {
	return "access/set_penalty_receiver"
}

func (m *SetPenaltyReceiverMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *SetPenaltyReceiverMsg) Unmarshal(raw []byte) error {
	*m = SetPenaltyReceiverMsg{}
	return codec.Unmarshal(raw, m)
}

func (m *SetPenaltyReceiverMsg) Validate() error {
	if len(m.Receiver) == 0 {
		return nil
	}
	return errors.Field("Receiver", m.Receiver.Validate(), "")
}
