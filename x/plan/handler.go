package plan

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
)

const adminCost int64 = 20

// AdminGate authorizes catalog changes. It is implemented by the access
// controller.
type AdminGate interface {
	RequireAdmin(ctx savingbank.Context, db savingbank.ReadOnlyKVStore) error
}

// RegisterQuery exposes plans under "/plans" and "/plans/active".
func RegisterQuery(qr savingbank.QueryRouter) {
	NewBucket().Register("plans", qr)
}

// RegisterRoutes registers the catalog handlers. Every one of them is
// admin-only.
func RegisterRoutes(r savingbank.Registry, admin AdminGate, ctrl Controller) {
	r.Handle(&CreatePlanMsg{}, &createPlanHandler{admin: admin, ctrl: ctrl})
	r.Handle(&UpdatePlanMsg{}, &updatePlanHandler{admin: admin, ctrl: ctrl})
	r.Handle(&SetPlanActiveMsg{}, &setActiveHandler{admin: admin, ctrl: ctrl})
}

type createPlanHandler struct {
	admin AdminGate
	ctrl  Controller
}

func (h *createPlanHandler) Check(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &savingbank.CheckResult{GasAllocated: adminCost}, nil
}

func (h *createPlanHandler) Deliver(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	p, err := h.ctrl.Create(db, msg.Plan())
	if err != nil {
		return nil, err
	}
	return &savingbank.DeliverResult{
		Data:   p.ID,
		Events: []savingbank.Event{Created{ID: numericID(p.ID), Name: p.Name}},
	}, nil
}

func (h *createPlanHandler) validate(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*CreatePlanMsg, error) {
	if err := h.admin.RequireAdmin(ctx, db); err != nil {
		return nil, err
	}
	var msg CreatePlanMsg
	if err := savingbank.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, nil
}

type updatePlanHandler struct {
	admin AdminGate
	ctrl  Controller
}

func (h *updatePlanHandler) Check(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &savingbank.CheckResult{GasAllocated: adminCost}, nil
}

func (h *updatePlanHandler) Deliver(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.Update(db, msg.PlanID, msg.Plan()); err != nil {
		return nil, err
	}
	return &savingbank.DeliverResult{
		Events: []savingbank.Event{Updated{ID: numericID(msg.PlanID)}},
	}, nil
}

func (h *updatePlanHandler) validate(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*UpdatePlanMsg, error) {
	if err := h.admin.RequireAdmin(ctx, db); err != nil {
		return nil, err
	}
	var msg UpdatePlanMsg
	if err := savingbank.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.GetPlan(db, msg.PlanID); err != nil {
		return nil, err
	}
	return &msg, nil
}

type setActiveHandler struct {
	admin AdminGate
	ctrl  Controller
}

func (h *setActiveHandler) Check(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &savingbank.CheckResult{GasAllocated: adminCost}, nil
}

func (h *setActiveHandler) Deliver(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.SetActive(db, msg.PlanID, msg.Active); err != nil {
		return nil, err
	}
	return &savingbank.DeliverResult{
		Events: []savingbank.Event{ActiveChanged{ID: numericID(msg.PlanID), Active: msg.Active}},
	}, nil
}

func (h *setActiveHandler) validate(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*SetPlanActiveMsg, error) {
	if err := h.admin.RequireAdmin(ctx, db); err != nil {
		return nil, err
	}
	var msg SetPlanActiveMsg
	if err := savingbank.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.GetPlan(db, msg.PlanID); err != nil {
		return nil, err
	}
	return &msg, nil
}
