package sigs

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/codec"
	"github.com/iov-one/savingbank/errors"
)

const (
	pathBumpSequenceMsg = "sigs/bump_sequence"

	maxSequenceIncrement = 1000
	minSequenceIncrement = 1
)

func init() {
	codec.RegisterConcrete(&BumpSequenceMsg{}, "savingbank/sigs/BumpSequenceMsg")
}

// BumpSequenceMsg increments the nonce of the main signer. A client that
// lost track of pending transactions uses it to invalidate them.
type BumpSequenceMsg struct {
	Increment uint32 `json:"increment"`
}

var _ savingbank.Msg = (*BumpSequenceMsg)(nil)

func (msg *BumpSequenceMsg) Marshal() ([]byte, error) {
	return codec.Marshal(msg)
}

func (msg *BumpSequenceMsg) Unmarshal(raw []byte) error {
	*msg = BumpSequenceMsg{}
	return codec.Unmarshal(raw, msg)
}

func (msg *BumpSequenceMsg) Validate() error {
	if msg.Increment < minSequenceIncrement {
		return errors.Wrapf(errors.ErrMsg, "increment must be at least %d", minSequenceIncrement)
	}
	if msg.Increment > maxSequenceIncrement {
		return errors.Wrapf(errors.ErrMsg, "increment must not be greater than %d", maxSequenceIncrement)
	}
	return nil
}

func (BumpSequenceMsg) Path() string {
	return pathBumpSequenceMsg
}
