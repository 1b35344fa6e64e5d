package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/gconf"
	"github.com/iov-one/savingbank/savingbanktest"
	"github.com/iov-one/savingbank/store"
	"github.com/iov-one/savingbank/x/access"
	"github.com/iov-one/savingbank/x/certificate"
	"github.com/iov-one/savingbank/x/plan"
	"github.com/iov-one/savingbank/x/token"
	"github.com/iov-one/savingbank/x/utils"
	"github.com/iov-one/savingbank/x/vault"
	"github.com/stretchr/testify/require"
)

const usdc = 1000000

var (
	genesisTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	planOne = savingbanktest.SequenceID(1)
	planTwo = savingbanktest.SequenceID(2)
)

// day returns the block time the given number of days after genesis.
func day(n int) time.Time {
	return genesisTime.Add(time.Duration(n) * 24 * time.Hour)
}

// fixture is a fully wired saving bank with a default plan (id 1), a
// premium plan (id 2), funded accounts and an unfunded vault.
type fixture struct {
	db   savingbank.CacheableKVStore
	auth *savingbanktest.CtxAuth
	rt   *router

	tokens token.BaseController
	vault  vault.BaseController
	certs  certificate.BaseController
	plans  plan.BaseController
	access access.BaseController
	ctrl   BaseController

	admin, alice, bob, receiver savingbank.Condition
}

func newFixture(t testing.TB) *fixture {
	t.Helper()

	f := &fixture{
		db:       store.MemStore(),
		auth:     &savingbanktest.CtxAuth{Key: "auth"},
		rt:       newRouter(),
		admin:    savingbanktest.NewCondition(),
		alice:    savingbanktest.NewCondition(),
		bob:      savingbanktest.NewCondition(),
		receiver: savingbanktest.NewCondition(),
	}
	f.tokens = token.NewController()
	f.vault = vault.NewController(f.tokens)
	f.certs = certificate.NewController()
	f.plans = plan.NewController()
	f.access = access.NewController(f.auth, vault.CustodyAddress, LedgerAddress)
	f.ctrl = NewController(f.auth, f.access, f.plans, f.vault, f.certs)
	RegisterRoutes(f.rt, f.auth, f.access, f.ctrl)

	require.NoError(t, gconf.Save(f.db, "access", &access.Configuration{Admin: f.admin.Address()}))
	require.NoError(t, new(Initializer).FromGenesis(savingbank.Options{}, f.db))

	_, err := f.plans.Create(f.db, &plan.SavingPlan{
		Name:            "Default Plan",
		MinAmount:       100 * usdc,
		MinTermDays:     30,
		MaxTermDays:     365,
		InterestRateBps: 800,
		PenaltyRateBps:  500,
	})
	require.NoError(t, err)
	_, err = f.plans.Create(f.db, &plan.SavingPlan{
		Name:            "Premium Plan",
		MinAmount:       1000 * usdc,
		MaxAmount:       100000 * usdc,
		MinTermDays:     90,
		MaxTermDays:     730,
		InterestRateBps: 1200,
		PenaltyRateBps:  300,
	})
	require.NoError(t, err)

	for _, c := range []savingbank.Condition{f.alice, f.bob} {
		require.NoError(t, f.tokens.Mint(f.db, c.Address(), 100000*usdc))
		require.NoError(t, f.tokens.Approve(f.db, c.Address(), LedgerAddress, 100000*usdc))
	}
	require.NoError(t, f.tokens.Mint(f.db, f.admin.Address(), 1000000*usdc))
	require.NoError(t, f.tokens.Approve(f.db, f.admin.Address(), LedgerAddress, 1000000*usdc))
	return f
}

func (f *fixture) context(signer savingbank.Condition, at time.Time) savingbank.Context {
	ctx := savingbank.WithBlockTime(context.Background(), at)
	return f.auth.SetConditions(ctx, signer)
}

// handler returns the routed handler wrapped in a deliver savepoint, the
// same way the application chain runs it.
func (f *fixture) handler(msg savingbank.Msg) savingbank.Handler {
	return savingbanktest.Decorate(f.rt.handlers[msg.Path()], utils.NewSavepoint().OnDeliver())
}

// check runs the message check on a throw away cache.
func (f *fixture) check(signer savingbank.Condition, at time.Time, msg savingbank.Msg) error {
	cache := f.db.CacheWrap()
	defer cache.Discard()
	_, err := f.handler(msg).Check(f.context(signer, at), cache, &savingbanktest.Tx{Msg: msg})
	return err
}

func (f *fixture) deliver(signer savingbank.Condition, at time.Time, msg savingbank.Msg) (*savingbank.DeliverResult, error) {
	return f.handler(msg).Deliver(f.context(signer, at), f.db, &savingbanktest.Tx{Msg: msg})
}

// mustDeliver delivers a message that is expected to succeed.
func (f *fixture) mustDeliver(t testing.TB, signer savingbank.Condition, at time.Time, msg savingbank.Msg) *savingbank.DeliverResult {
	t.Helper()
	require.NoError(t, f.check(signer, at, msg))
	res, err := f.deliver(signer, at, msg)
	require.NoError(t, err)
	return res
}

func (f *fixture) fundVault(t testing.TB, amount uint64) {
	t.Helper()
	f.mustDeliver(t, f.admin, genesisTime, &DepositToVaultMsg{Amount: amount})
}

// openDeposit opens a deposit for alice at genesis time and returns its id.
func (f *fixture) openDeposit(t testing.TB, amount uint64, termDays uint32) []byte {
	t.Helper()
	res := f.mustDeliver(t, f.alice, genesisTime, &CreateDepositMsg{
		Depositor: f.alice.Address(),
		PlanID:    planOne,
		Amount:    amount,
		TermDays:  termDays,
	})
	return res.Data
}

func (f *fixture) balance(t testing.TB, addr savingbank.Address) uint64 {
	t.Helper()
	b, err := f.tokens.Balance(f.db, addr)
	require.NoError(t, err)
	return b
}

func (f *fixture) vaultBalance(t testing.TB) uint64 {
	t.Helper()
	b, err := f.vault.Balance(f.db)
	require.NoError(t, err)
	return b
}

type router struct {
	handlers map[string]savingbank.Handler
}

func newRouter() *router {
	return &router{handlers: make(map[string]savingbank.Handler)}
}

func (r *router) Handle(m savingbank.Msg, h savingbank.Handler) {
	r.handlers[m.Path()] = h
}
