package token

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/gconf"
	"github.com/iov-one/savingbank/x"
)

const (
	transferCost int64 = 100
	approveCost  int64 = 50
)

// RegisterQuery registers the balance and allowance buckets.
func RegisterQuery(qr savingbank.QueryRouter) {
	NewBalanceBucket().Register("balances", qr)
	NewAllowanceBucket().Register("allowances", qr)
}

// RegisterRoutes registers the token handlers.
func RegisterRoutes(r savingbank.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(&TransferMsg{}, &transferHandler{auth: auth, ctrl: ctrl})
	r.Handle(&ApproveMsg{}, &approveHandler{auth: auth, ctrl: ctrl})
	r.Handle(&MintMsg{}, &mintHandler{auth: auth, ctrl: ctrl})
}

type transferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

func (h *transferHandler) Check(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &savingbank.CheckResult{GasAllocated: transferCost}, nil
}

func (h *transferHandler) Deliver(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Transfer(db, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &savingbank.DeliverResult{
		Events: []savingbank.Event{Transferred{From: msg.Source, To: msg.Destination, Amount: msg.Amount}},
	}, nil
}

func (h *transferHandler) validate(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*TransferMsg, error) {
	var msg TransferMsg
	if err := savingbank.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source signature missing")
	}
	return &msg, nil
}

type approveHandler struct {
	auth x.Authenticator
	ctrl Controller
}

func (h *approveHandler) Check(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &savingbank.CheckResult{GasAllocated: approveCost}, nil
}

func (h *approveHandler) Deliver(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Approve(db, msg.Owner, msg.Spender, msg.Amount); err != nil {
		return nil, err
	}
	return &savingbank.DeliverResult{
		Events: []savingbank.Event{Approved{Owner: msg.Owner, Spender: msg.Spender, Amount: msg.Amount}},
	}, nil
}

func (h *approveHandler) validate(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*ApproveMsg, error) {
	var msg ApproveMsg
	if err := savingbank.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	return &msg, nil
}

type mintHandler struct {
	auth x.Authenticator
	ctrl Controller
}

func (h *mintHandler) Check(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &savingbank.CheckResult{GasAllocated: transferCost}, nil
}

func (h *mintHandler) Deliver(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Mint(db, msg.Recipient, msg.Amount); err != nil {
		return nil, err
	}
	return &savingbank.DeliverResult{
		Events: []savingbank.Event{Transferred{To: msg.Recipient, Amount: msg.Amount}},
	}, nil
}

func (h *mintHandler) validate(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*MintMsg, error) {
	var msg MintMsg
	if err := savingbank.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Minter) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "minter signature missing")
	}
	return &msg, nil
}

func loadConf(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return conf, errors.Wrap(err, "load configuration")
	}
	return conf, nil
}
