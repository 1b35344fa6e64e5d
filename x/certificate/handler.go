package certificate

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/x"
)

const transferCost int64 = 50

// RegisterQuery exposes certificates under "/certificates" and
// "/certificates/owner".
func RegisterQuery(qr savingbank.QueryRouter) {
	NewBucket().Register("certificates", qr)
}

// RegisterRoutes registers the holder operations. Mint and burn are not
// messages: only the bound minter calls them, through the Controller.
func RegisterRoutes(r savingbank.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(&TransferMsg{}, &transferHandler{auth: auth, ctrl: ctrl})
	r.Handle(&ApproveMsg{}, &approveHandler{auth: auth, ctrl: ctrl})
}

type transferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

func (h *transferHandler) Check(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &savingbank.CheckResult{GasAllocated: transferCost}, nil
}

func (h *transferHandler) Deliver(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.DeliverResult, error) {
	msg, cert, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Transfer(db, msg.CertificateID, msg.Recipient); err != nil {
		return nil, err
	}
	return &savingbank.DeliverResult{
		Events: []savingbank.Event{Transferred{
			ID:   numericID(msg.CertificateID),
			From: cert.Owner,
			To:   msg.Recipient,
		}},
	}, nil
}

func (h *transferHandler) validate(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*TransferMsg, *Certificate, error) {
	var msg TransferMsg
	if err := savingbank.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	cert, err := h.ctrl.Get(db, msg.CertificateID)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, cert.Owner) && (len(cert.Approved) == 0 || !h.auth.HasAddress(ctx, cert.Approved)) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "holder or approved signature missing")
	}
	return &msg, cert, nil
}

type approveHandler struct {
	auth x.Authenticator
	ctrl Controller
}

func (h *approveHandler) Check(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &savingbank.CheckResult{GasAllocated: transferCost}, nil
}

func (h *approveHandler) Deliver(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.DeliverResult, error) {
	msg, cert, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Approve(db, msg.CertificateID, msg.Approved); err != nil {
		return nil, err
	}
	return &savingbank.DeliverResult{
		Events: []savingbank.Event{Approved{
			ID:       numericID(msg.CertificateID),
			Owner:    cert.Owner,
			Approved: msg.Approved,
		}},
	}, nil
}

func (h *approveHandler) validate(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*ApproveMsg, *Certificate, error) {
	var msg ApproveMsg
	if err := savingbank.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	cert, err := h.ctrl.Get(db, msg.CertificateID)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, cert.Owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "holder signature missing")
	}
	return &msg, cert, nil
}
