package certificate

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/codec"
	"github.com/iov-one/savingbank/errors"
)

func init() {
	codec.RegisterConcrete(&TransferMsg{}, "savingbank/certificate/TransferMsg")
	codec.RegisterConcrete(&ApproveMsg{}, "savingbank/certificate/ApproveMsg")
}

// TransferMsg moves a certificate, and with it the right to act on its
// deposit, to a new holder.
type TransferMsg struct {
	CertificateID []byte             `json:"certificate_id"`
	Recipient     savingbank.Address `json:"recipient"`
}

var _ savingbank.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string {
	return "certificate/transfer"
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
	errs = errors.AppendField(errs, "CertificateID", validID(m.CertificateID))
	errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	return errs
}

// ApproveMsg lets another address transfer the certificate. An empty
// address removes the approval.
type ApproveMsg struct {
	CertificateID []byte             `json:"certificate_id"`
	Approved      savingbank.Address `json:"approved,omitempty"`
}

var _ savingbank.Msg = (*ApproveMsg)(nil)

func (ApproveMsg) Path() string {
	return "certificate/approve"
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
	errs = errors.AppendField(errs, "CertificateID", validID(m.CertificateID))
	if len(m.Approved) != 0 {
		errs = errors.AppendField(errs, "Approved", m.Approved.Validate())
	}
	return errs
}

func validID(id []byte) error {
	if len(id) != 8 {
		return errors.Wrapf(errors.ErrInput, "id must be 8 bytes, got %d", len(id))
	}
	return nil
}
