package sigs

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/savingbanktest"
)

// StdTx is a signed transaction carrying a raw payload.
type StdTx struct {
	savingbank.Tx
	Payload    []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ savingbank.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	msg := &savingbanktest.Msg{RoutePath: "sigs/test", Serialized: payload}
	return &StdTx{Tx: &savingbanktest.Tx{Msg: msg}, Payload: payload}
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *StdTx) GetSignBytes() ([]byte, error) {
	return tx.Payload, nil
}

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []savingbank.Condition
}

var _ savingbank.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &savingbank.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &savingbank.DeliverResult{}, nil
}
