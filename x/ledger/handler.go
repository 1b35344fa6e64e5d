package ledger

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/x"
	"github.com/iov-one/savingbank/x/access"
)

const (
	createDepositCost int64 = 200
	closeDepositCost  int64 = 200
	vaultCost         int64 = 50
)

// RegisterRoutes registers the deposit and the admin vault handlers. Every
// one of them is refused while the system is paused.
func RegisterRoutes(r savingbank.Registry, auth x.Authenticator, gate access.Controller, ctrl Controller) {
	r.Handle(&CreateDepositMsg{}, &createDepositHandler{auth: auth, gate: gate, ctrl: ctrl})
	r.Handle(&WithdrawMsg{}, &withdrawHandler{gate: gate, ctrl: ctrl})
	r.Handle(&RenewMsg{}, &renewHandler{gate: gate, ctrl: ctrl})
	r.Handle(&DepositToVaultMsg{}, &depositToVaultHandler{gate: gate, ctrl: ctrl})
	r.Handle(&WithdrawFromVaultMsg{}, &withdrawFromVaultHandler{gate: gate, ctrl: ctrl})
}

type createDepositHandler struct {
	auth x.Authenticator
	gate access.Controller
	ctrl Controller
}

func (h *createDepositHandler) Check(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.CheckResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.PreviewDeposit(db, msg.PlanID, msg.Amount, msg.TermDays); err != nil {
		return nil, err
	}
	return &savingbank.CheckResult{GasAllocated: createDepositCost}, nil
}

func (h *createDepositHandler) Deliver(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	d, err := h.ctrl.CreateDeposit(ctx, db, msg.Depositor, msg.PlanID, msg.Amount, msg.TermDays)
	if err != nil {
		return nil, err
	}
	return &savingbank.DeliverResult{
		Data:   d.ID,
		Events: []savingbank.Event{createdEvent(d, msg.Depositor)},
	}, nil
}

func (h *createDepositHandler) validate(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*CreateDepositMsg, error) {
	if err := h.gate.RequireNotPaused(db); err != nil {
		return nil, err
	}
	var msg CreateDepositMsg
	if err := savingbank.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Depositor) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "depositor signature missing")
	}
	return &msg, nil
}

type withdrawHandler struct {
	gate access.Controller
	ctrl Controller
}

func (h *withdrawHandler) Check(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.CheckResult, error) {
	msg, err := h.validate(db, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.PreviewWithdraw(ctx, db, msg.DepositID); err != nil {
		return nil, err
	}
	return &savingbank.CheckResult{GasAllocated: closeDepositCost}, nil
}

func (h *withdrawHandler) Deliver(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.DeliverResult, error) {
	msg, err := h.validate(db, tx)
	if err != nil {
		return nil, err
	}
	s, err := h.ctrl.Withdraw(ctx, db, msg.DepositID)
	if err != nil {
		return nil, err
	}
	return &savingbank.DeliverResult{
		Events: []savingbank.Event{Withdrawn{
			ID:       numericID(s.Deposit.ID),
			Caller:   s.Owner,
			Payout:   s.Payout,
			Interest: s.Interest,
			Penalty:  s.Penalty,
			Early:    s.Early,
		}},
	}, nil
}

func (h *withdrawHandler) validate(db savingbank.KVStore, tx savingbank.Tx) (*WithdrawMsg, error) {
	if err := h.gate.RequireNotPaused(db); err != nil {
		return nil, err
	}
	var msg WithdrawMsg
	if err := savingbank.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, nil
}

type renewHandler struct {
	gate access.Controller
	ctrl Controller
}

func (h *renewHandler) Check(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.CheckResult, error) {
	msg, err := h.validate(db, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.PreviewRenew(ctx, db, msg.DepositID, msg.NewPlanID, msg.NewTermDays); err != nil {
		return nil, err
	}
	return &savingbank.CheckResult{GasAllocated: createDepositCost + closeDepositCost}, nil
}

func (h *renewHandler) Deliver(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.DeliverResult, error) {
	msg, err := h.validate(db, tx)
	if err != nil {
		return nil, err
	}
	r, err := h.ctrl.Renew(ctx, db, msg.DepositID, msg.NewPlanID, msg.NewTermDays)
	if err != nil {
		return nil, err
	}
	return &savingbank.DeliverResult{
		Data: r.New.ID,
		Events: []savingbank.Event{
			Renewed{
				OldID:     numericID(r.Old.ID),
				NewID:     numericID(r.New.ID),
				NewAmount: r.New.Amount,
			},
			createdEvent(r.New, r.Owner),
		},
	}, nil
}

func (h *renewHandler) validate(db savingbank.KVStore, tx savingbank.Tx) (*RenewMsg, error) {
	if err := h.gate.RequireNotPaused(db); err != nil {
		return nil, err
	}
	var msg RenewMsg
	if err := savingbank.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, nil
}

type depositToVaultHandler struct {
	gate access.Controller
	ctrl Controller
}

func (h *depositToVaultHandler) Check(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &savingbank.CheckResult{GasAllocated: vaultCost}, nil
}

func (h *depositToVaultHandler) Deliver(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.DeliverResult, error) {
	msg, admin, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.FundVault(db, admin, msg.Amount); err != nil {
		return nil, err
	}
	return &savingbank.DeliverResult{
		Events: []savingbank.Event{VaultDeposited{Amount: msg.Amount}},
	}, nil
}

func (h *depositToVaultHandler) validate(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*DepositToVaultMsg, savingbank.Address, error) {
	admin, err := requireAdmin(ctx, db, h.gate)
	if err != nil {
		return nil, nil, err
	}
	var msg DepositToVaultMsg
	if err := savingbank.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	return &msg, admin, nil
}

type withdrawFromVaultHandler struct {
	gate access.Controller
	ctrl Controller
}

func (h *withdrawFromVaultHandler) Check(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.CheckResult, error) {
	msg, _, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	balance, err := h.ctrl.VaultBalance(db)
	if err != nil {
		return nil, err
	}
	if msg.Amount > balance {
		return nil, errors.Wrapf(errors.ErrInsufficientBalance, "vault holds %d", balance)
	}
	return &savingbank.CheckResult{GasAllocated: vaultCost}, nil
}

func (h *withdrawFromVaultHandler) Deliver(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.DeliverResult, error) {
	msg, admin, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.DrainVault(db, admin, msg.Amount); err != nil {
		return nil, err
	}
	return &savingbank.DeliverResult{
		Events: []savingbank.Event{VaultWithdrawn{Amount: msg.Amount}},
	}, nil
}

func (h *withdrawFromVaultHandler) validate(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*WithdrawFromVaultMsg, savingbank.Address, error) {
	admin, err := requireAdmin(ctx, db, h.gate)
	if err != nil {
		return nil, nil, err
	}
	var msg WithdrawFromVaultMsg
	if err := savingbank.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	return &msg, admin, nil
}

// requireAdmin checks the pause switch, then the admin signature, and
// returns the admin address.
func requireAdmin(ctx savingbank.Context, db savingbank.KVStore, gate access.Controller) (savingbank.Address, error) {
	if err := gate.RequireNotPaused(db); err != nil {
		return nil, err
	}
	if err := gate.RequireAdmin(ctx, db); err != nil {
		return nil, err
	}
	return gate.Admin(db)
}

func createdEvent(d *Deposit, depositor savingbank.Address) DepositCreated {
	return DepositCreated{
		ID:        numericID(d.ID),
		Depositor: depositor,
		Amount:    d.Amount,
		PlanID:    numericID(d.PlanID),
	}
}
