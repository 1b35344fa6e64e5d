package certificate

import (
	"encoding/binary"

	"github.com/iov-one/savingbank"
)

// Transferred is emitted when a holder hands over a certificate.
type Transferred struct {
	ID   uint64             `json:"id"`
	From savingbank.Address `json:"from"`
	To   savingbank.Address `json:"to"`
}

func (Transferred) EventType() string { return "CertificateTransferred" }

// Approved is emitted when a holder approves another address.
type Approved struct {
	ID       uint64             `json:"id"`
	Owner    savingbank.Address `json:"owner"`
	Approved savingbank.Address `json:"approved,omitempty"`
}

func (Approved) EventType() string { return "CertificateApproved" }

func numericID(id []byte) uint64 {
	return binary.BigEndian.Uint64(id)
}
