package access

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
)

const adminCost int64 = 10

// RegisterQuery exposes the configuration under "/access".
func RegisterQuery(qr savingbank.QueryRouter) {
	qr.Register("/access", confQuery{})
}

// RegisterRoutes registers the admin handlers. Signatures are checked by
// the controller.
func RegisterRoutes(r savingbank.Registry, ctrl Controller) {
	r.Handle(&PauseMsg{}, &pauseHandler{ctrl: ctrl, paused: true})
	r.Handle(&UnpauseMsg{}, &pauseHandler{ctrl: ctrl, paused: false})
	r.Handle(&SetPenaltyReceiverMsg{}, &penaltyReceiverHandler{ctrl: ctrl})
}

// pauseHandler serves both PauseMsg and UnpauseMsg. paused is the state the
// message switches to.
type pauseHandler struct {
	ctrl   Controller
	paused bool
}

func (h *pauseHandler) Check(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &savingbank.CheckResult{GasAllocated: adminCost}, nil
}

func (h *pauseHandler) Deliver(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.DeliverResult, error) {
	admin, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.SetPaused(db, h.paused); err != nil {
		return nil, err
	}
	var ev savingbank.Event = Unpaused{Account: admin}
	if h.paused {
		ev = Paused{Account: admin}
	}
	return &savingbank.DeliverResult{Events: []savingbank.Event{ev}}, nil
}

// validate returns the admin address.
func (h *pauseHandler) validate(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (savingbank.Address, error) {
	var err error
	if h.paused {
		err = savingbank.LoadMsg(tx, &PauseMsg{})
	} else {
		err = savingbank.LoadMsg(tx, &UnpauseMsg{})
	}
	if err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.RequireAdmin(ctx, db); err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if conf.Paused == h.paused {
		return nil, errors.Wrapf(errors.ErrState, "paused is already %v", h.paused)
	}
	return conf.Admin, nil
}

type penaltyReceiverHandler struct {
	ctrl Controller
}

func (h *penaltyReceiverHandler) Check(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &savingbank.CheckResult{GasAllocated: adminCost}, nil
}

func (h *penaltyReceiverHandler) Deliver(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.SetPenaltyReceiver(db, msg.Receiver); err != nil {
		return nil, err
	}
	return &savingbank.DeliverResult{
		Events: []savingbank.Event{PenaltyReceiverChanged{Receiver: msg.Receiver}},
	}, nil
}

func (h *penaltyReceiverHandler) validate(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*SetPenaltyReceiverMsg, error) {
	var msg SetPenaltyReceiverMsg
	if err := savingbank.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.RequireAdmin(ctx, db); err != nil {
		return nil, err
	}
	if err := h.ctrl.ValidatePenaltyReceiver(msg.Receiver); err != nil {
		return nil, err
	}
	return &msg, nil
}

// confQuery returns the configuration singleton, whatever the data.
type confQuery struct{}

var _ savingbank.QueryHandler = confQuery{}

func (confQuery) Query(db savingbank.ReadOnlyKVStore, mod string, data []byte) ([]savingbank.Model, error) {
	raw, err := db.Get(confKey)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return nil, nil
	}
	return []savingbank.Model{savingbank.Pair(confKey, raw)}, nil
}

var confKey = []byte("_c:" + packageName)
