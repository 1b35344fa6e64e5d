package savingbankd

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/codec"
	"github.com/iov-one/savingbank/crypto"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/x/sigs"
)

func init() {
	// Every extension registers its messages in its own init, which runs
	// before this one.
	codec.RegisterInterface((*savingbank.Msg)(nil))
}

// Tx is the only transaction format the node accepts: one message and the
// signatures authorizing it.
type Tx struct {
	Msg        savingbank.Msg       `json:"msg"`
	Signatures []*sigs.StdSignature `json:"signatures"`
}

// make sure tx fulfills all interfaces
var _ savingbank.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// NewTx wraps a message into an unsigned transaction.
func NewTx(msg savingbank.Msg) *Tx {
	return &Tx{Msg: msg}
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (savingbank.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

func (tx *Tx) Marshal() ([]byte, error) {
	return codec.Marshal(tx)
}

func (tx *Tx) Unmarshal(raw []byte) error {
	*tx = Tx{}
	return codec.Unmarshal(raw, tx)
}

func (tx *Tx) GetMsg() (savingbank.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrInput, "missing message")
	}
	return tx.Msg, nil
}

func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	sigs := tx.Signatures
	tx.Signatures = nil

	bz, err := tx.Marshal()

	// reset the signatures after calculating the bytes
	tx.Signatures = sigs
	return bz, err
}

// Sign appends a signature of the given key, for the given nonce.
func (tx *Tx) Sign(signer crypto.Signer, chainID string, seq int64) error {
	sig, err := sigs.SignTx(signer, tx, chainID, seq)
	if err != nil {
		return errors.Wrap(err, "sign")
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}
