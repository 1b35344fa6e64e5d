package ledger

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/orm"
	"github.com/iov-one/savingbank/x"
	"github.com/iov-one/savingbank/x/access"
	"github.com/iov-one/savingbank/x/certificate"
	"github.com/iov-one/savingbank/x/interest"
	"github.com/iov-one/savingbank/x/plan"
	"github.com/iov-one/savingbank/x/vault"
)

// Settlement is the outcome of closing a deposit.
type Settlement struct {
	Deposit *Deposit
	// Owner is the certificate holder that closed the deposit and was paid.
	Owner    savingbank.Address
	Payout   uint64
	Interest uint64
	Penalty  uint64
	Early    bool
	// PenaltyReceiver is paid the penalty. Empty when the penalty stays in
	// the vault.
	PenaltyReceiver savingbank.Address
}

// Renewal is the outcome of renewing a matured deposit.
type Renewal struct {
	Old      *Deposit
	New      *Deposit
	Owner    savingbank.Address
	Interest uint64

	plan *plan.SavingPlan
}

// Controller is the deposit lifecycle. Preview methods run every check of
// the matching operation without writing anything.
type Controller interface {
	PreviewDeposit(db savingbank.ReadOnlyKVStore, planID []byte, amount uint64, termDays uint32) (*plan.SavingPlan, error)
	CreateDeposit(ctx savingbank.Context, db savingbank.KVStore, depositor savingbank.Address, planID []byte, amount uint64, termDays uint32) (*Deposit, error)

	PreviewWithdraw(ctx savingbank.Context, db savingbank.ReadOnlyKVStore, id []byte) (*Settlement, error)
	Withdraw(ctx savingbank.Context, db savingbank.KVStore, id []byte) (*Settlement, error)

	PreviewRenew(ctx savingbank.Context, db savingbank.ReadOnlyKVStore, id, newPlanID []byte, newTermDays uint32) (*Renewal, error)
	Renew(ctx savingbank.Context, db savingbank.KVStore, id, newPlanID []byte, newTermDays uint32) (*Renewal, error)

	// GetDeposit fails with ErrDepositNotFound for an unknown id. Closed
	// deposits are returned too.
	GetDeposit(db savingbank.ReadOnlyKVStore, id []byte) (*Deposit, error)
	// PreviewInterest prices a principal against the current plan terms.
	PreviewInterest(db savingbank.ReadOnlyKVStore, principal uint64, planID []byte, termDays uint32) (uint64, error)

	// FundVault and DrainVault move admin liquidity in and out of the vault.
	FundVault(db savingbank.KVStore, from savingbank.Address, amount uint64) error
	DrainVault(db savingbank.KVStore, to savingbank.Address, amount uint64) error
	VaultBalance(db savingbank.ReadOnlyKVStore) (uint64, error)
}

// BaseController implements Controller.
type BaseController struct {
	auth   x.Authenticator
	access access.Controller
	plans  plan.Controller
	vault  vault.Controller
	certs  certificate.Controller
	bucket orm.ModelBucket
	seq    orm.Sequence
}

var _ Controller = BaseController{}

// NewController returns the ledger controller. The authenticator decides
// whether a certificate holder signed the transaction.
func NewController(
	auth x.Authenticator,
	acc access.Controller,
	plans plan.Controller,
	v vault.Controller,
	certs certificate.Controller,
) BaseController {
	return BaseController{
		auth:   auth,
		access: acc,
		plans:  plans,
		vault:  v,
		certs:  certs,
		bucket: NewBucket(),
		seq:    NewSequence(),
	}
}

func (c BaseController) PreviewDeposit(db savingbank.ReadOnlyKVStore, planID []byte, amount uint64, termDays uint32) (*plan.SavingPlan, error) {
	p, err := c.plans.ActivePlan(db, planID)
	if err != nil {
		return nil, err
	}
	if err := p.CheckAmount(amount); err != nil {
		return nil, err
	}
	if err := p.CheckTerm(termDays); err != nil {
		return nil, err
	}
	return p, nil
}

func (c BaseController) CreateDeposit(ctx savingbank.Context, db savingbank.KVStore, depositor savingbank.Address, planID []byte, amount uint64, termDays uint32) (*Deposit, error) {
	p, err := c.PreviewDeposit(db, planID, amount, termDays)
	if err != nil {
		return nil, err
	}
	now, err := blockTime(ctx)
	if err != nil {
		return nil, err
	}
	// Funds first, so that nothing is recorded for a failed pull.
	if err := c.vault.Deposit(db, LedgerAddress, depositor, amount); err != nil {
		return nil, err
	}
	return c.open(db, depositor, p, amount, termDays, now)
}

// open records a new deposit and mints its certificate to owner.
func (c BaseController) open(db savingbank.KVStore, owner savingbank.Address, p *plan.SavingPlan, amount uint64, termDays uint32, now savingbank.UnixTime) (*Deposit, error) {
	id, err := c.seq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "deposit id")
	}
	d := Deposit{
		ID:              id,
		Amount:          amount,
		PlanID:          p.ID,
		InterestRateBps: p.InterestRateBps,
		PenaltyRateBps:  p.PenaltyRateBps,
		TermDays:        termDays,
		StartTime:       now,
		MaturityTime:    now.AddDays(termDays),
	}
	if _, err := c.bucket.Put(db, id, &d); err != nil {
		return nil, errors.Wrap(err, "store deposit")
	}
	if err := c.certs.Mint(db, LedgerAddress, owner, id); err != nil {
		return nil, errors.Wrap(err, "mint certificate")
	}
	return &d, nil
}

func (c BaseController) PreviewWithdraw(ctx savingbank.Context, db savingbank.ReadOnlyKVStore, id []byte) (*Settlement, error) {
	d, owner, err := c.authorize(ctx, db, id)
	if err != nil {
		return nil, err
	}
	now, err := blockTime(ctx)
	if err != nil {
		return nil, err
	}
	s := Settlement{Deposit: d, Owner: owner}
	if d.IsMature(now) {
		if s.Interest, err = interest.Interest(d.Amount, d, d.TermDays); err != nil {
			return nil, err
		}
		s.Payout = d.Amount + s.Interest
		if s.Payout < d.Amount {
			return nil, errors.Wrap(errors.ErrOverflow, "payout")
		}
	} else {
		if s.Penalty, err = interest.Penalty(d.Amount, d); err != nil {
			return nil, err
		}
		s.Payout = d.Amount - s.Penalty
		s.Early = true
	}
	if s.Penalty > 0 {
		if s.PenaltyReceiver, err = c.access.PenaltyReceiver(db); err != nil {
			return nil, err
		}
	}

	// Both payments must be covered, never just one of them.
	need := s.Payout
	if len(s.PenaltyReceiver) != 0 {
		need += s.Penalty
	}
	balance, err := c.vault.Balance(db)
	if err != nil {
		return nil, err
	}
	if need > balance {
		return nil, errors.Wrapf(errors.ErrInsufficientBalance, "vault holds %d, settlement needs %d", balance, need)
	}
	return &s, nil
}

func (c BaseController) Withdraw(ctx savingbank.Context, db savingbank.KVStore, id []byte) (*Settlement, error) {
	s, err := c.PreviewWithdraw(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if err := c.close(db, s.Deposit); err != nil {
		return nil, err
	}
	if s.Payout > 0 {
		if err := c.vault.Withdraw(db, LedgerAddress, s.Payout, s.Owner); err != nil {
			return nil, errors.Wrap(err, "payout")
		}
	}
	if s.Penalty > 0 && len(s.PenaltyReceiver) != 0 {
		if err := c.vault.Withdraw(db, LedgerAddress, s.Penalty, s.PenaltyReceiver); err != nil {
			return nil, errors.Wrap(err, "penalty")
		}
	}
	return s, nil
}

func (c BaseController) PreviewRenew(ctx savingbank.Context, db savingbank.ReadOnlyKVStore, id, newPlanID []byte, newTermDays uint32) (*Renewal, error) {
	d, owner, err := c.authorize(ctx, db, id)
	if err != nil {
		return nil, err
	}
	now, err := blockTime(ctx)
	if err != nil {
		return nil, err
	}
	if !d.IsMature(now) {
		return nil, errors.Wrapf(errors.ErrDepositNotMature, "matures at %s", d.MaturityTime)
	}
	earned, err := interest.Interest(d.Amount, d, d.TermDays)
	if err != nil {
		return nil, err
	}
	amount := d.Amount + earned
	if amount < d.Amount {
		return nil, errors.Wrap(errors.ErrOverflow, "renewed amount")
	}
	p, err := c.PreviewDeposit(db, newPlanID, amount, newTermDays)
	if err != nil {
		return nil, err
	}
	next := Deposit{
		Amount:          amount,
		PlanID:          p.ID,
		InterestRateBps: p.InterestRateBps,
		PenaltyRateBps:  p.PenaltyRateBps,
		TermDays:        newTermDays,
		StartTime:       now,
		MaturityTime:    now.AddDays(newTermDays),
	}
	return &Renewal{Old: d, New: &next, Owner: owner, Interest: earned, plan: p}, nil
}

func (c BaseController) Renew(ctx savingbank.Context, db savingbank.KVStore, id, newPlanID []byte, newTermDays uint32) (*Renewal, error) {
	r, err := c.PreviewRenew(ctx, db, id, newPlanID, newTermDays)
	if err != nil {
		return nil, err
	}
	if err := c.close(db, r.Old); err != nil {
		return nil, err
	}
	if r.New, err = c.open(db, r.Owner, r.plan, r.New.Amount, newTermDays, r.New.StartTime); err != nil {
		return nil, err
	}
	return r, nil
}

// close marks the deposit closed and burns its certificate. It must run
// before any funds leave the vault.
func (c BaseController) close(db savingbank.KVStore, d *Deposit) error {
	d.IsClosed = true
	if _, err := c.bucket.Put(db, d.ID, d); err != nil {
		return errors.Wrap(err, "store deposit")
	}
	if err := c.certs.Burn(db, LedgerAddress, d.ID); err != nil {
		return errors.Wrap(err, "burn certificate")
	}
	return nil
}

// authorize loads an open deposit and makes sure its certificate holder
// signed the transaction. The holder is looked up on every call.
func (c BaseController) authorize(ctx savingbank.Context, db savingbank.ReadOnlyKVStore, id []byte) (*Deposit, savingbank.Address, error) {
	d, err := c.GetDeposit(db, id)
	if err != nil {
		return nil, nil, err
	}
	if d.IsClosed {
		return nil, nil, errors.Wrapf(errors.ErrDepositClosed, "deposit %X", id)
	}
	owner, err := c.certs.OwnerOf(db, id)
	if err != nil {
		return nil, nil, errors.Wrap(err, "certificate owner")
	}
	if !c.auth.HasAddress(ctx, owner) {
		return nil, nil, errors.Wrap(errors.ErrNotOwner, "certificate holder signature missing")
	}
	return d, owner, nil
}

func (c BaseController) GetDeposit(db savingbank.ReadOnlyKVStore, id []byte) (*Deposit, error) {
	var d Deposit
	switch err := c.bucket.One(db, id, &d); {
	case err == nil:
		return &d, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(errors.ErrDepositNotFound, "deposit %X", id)
	default:
		return nil, err
	}
}

func (c BaseController) PreviewInterest(db savingbank.ReadOnlyKVStore, principal uint64, planID []byte, termDays uint32) (uint64, error) {
	p, err := c.plans.GetPlan(db, planID)
	if err != nil {
		return 0, err
	}
	return interest.Interest(principal, p, termDays)
}

func (c BaseController) FundVault(db savingbank.KVStore, from savingbank.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "amount must be positive")
	}
	return c.vault.Deposit(db, LedgerAddress, from, amount)
}

func (c BaseController) DrainVault(db savingbank.KVStore, to savingbank.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "amount must be positive")
	}
	return c.vault.Withdraw(db, LedgerAddress, amount, to)
}

func (c BaseController) VaultBalance(db savingbank.ReadOnlyKVStore) (uint64, error) {
	return c.vault.Balance(db)
}

func blockTime(ctx savingbank.Context) (savingbank.UnixTime, error) {
	now, err := savingbank.BlockTime(ctx)
	if err != nil {
		return 0, err
	}
	return savingbank.AsUnixTime(now), nil
}
