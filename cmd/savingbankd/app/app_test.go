package savingbankd_test

import (
	"testing"
	"time"

	"github.com/iov-one/savingbank"
	sbapp "github.com/iov-one/savingbank/app"
	savingbankd "github.com/iov-one/savingbank/cmd/savingbankd/app"
	"github.com/iov-one/savingbank/crypto"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/orm"
	"github.com/iov-one/savingbank/x/access"
	"github.com/iov-one/savingbank/x/ledger"
	"github.com/iov-one/savingbank/x/sigs"
	"github.com/iov-one/savingbank/x/token"
	"github.com/iov-one/savingbank/x/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const chainID = "savingbank-test"

// node drives the application block by block and tracks the nonce of every
// signer.
type node struct {
	t      *testing.T
	app    abci.Application
	height int64
	nonces map[string]int64
}

func newNode(t *testing.T, admin savingbank.Address) *node {
	t.Helper()

	appState, err := savingbankd.GenInitOptions([]string{admin.String()})
	require.NoError(t, err)

	app, err := savingbankd.GenerateApp("", log.NewNopLogger(), true)
	require.NoError(t, err)
	app.InitChain(abci.RequestInitChain{
		ChainId:       chainID,
		AppStateBytes: appState,
	})
	return &node{t: t, app: app, nonces: make(map[string]int64)}
}

// block delivers all transactions in a single block at the given time.
func (n *node) block(at time.Time, txs ...[]byte) []abci.ResponseDeliverTx {
	n.t.Helper()

	n.height++
	n.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{Height: n.height, Time: at, ChainID: chainID},
	})
	res := make([]abci.ResponseDeliverTx, len(txs))
	for i, tx := range txs {
		res[i] = n.app.DeliverTx(tx)
	}
	n.app.EndBlock(abci.RequestEndBlock{Height: n.height})
	n.app.Commit()
	return res
}

// signed builds a transaction signed with the next nonce of the key.
func (n *node) signed(key *crypto.PrivateKey, msg savingbank.Msg) []byte {
	n.t.Helper()

	addr := key.PublicKey().Address().String()
	tx := savingbankd.NewTx(msg)
	require.NoError(n.t, tx.Sign(key, chainID, n.nonces[addr]))
	n.nonces[addr]++
	raw, err := tx.Marshal()
	require.NoError(n.t, err)
	return raw
}

func (n *node) query(path string, data []byte, dest savingbank.Persistent) {
	n.t.Helper()

	res := n.app.Query(abci.RequestQuery{Path: path, Data: data})
	require.Equal(n.t, uint32(0), res.Code, res.Log)
	require.NoError(n.t, sbapp.UnmarshalOneResult(res.Value, dest))
}

func (n *node) balance(addr savingbank.Address) uint64 {
	var b token.Balance
	n.query("/balances", addr, &b)
	return b.Amount
}

func requireOK(t testing.TB, res abci.ResponseDeliverTx) {
	t.Helper()
	require.Equal(t, uint32(0), res.Code, res.Log)
}

func TestDepositLifecycle(t *testing.T) {
	const usdc = savingbankd.OneUSDC

	adminKey := crypto.PrivKeyEd25519FromSeed(make([]byte, 32))
	userKey := crypto.GenPrivKeyEd25519()
	admin := adminKey.PublicKey().Address()
	user := userKey.PublicKey().Address()

	n := newNode(t, admin)
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	res := n.block(start,
		n.signed(adminKey, &token.TransferMsg{Source: admin, Destination: user, Amount: 20000 * usdc}),
		n.signed(adminKey, &token.ApproveMsg{Owner: admin, Spender: ledger.LedgerAddress, Amount: 50000 * usdc}),
		n.signed(adminKey, &ledger.DepositToVaultMsg{Amount: 50000 * usdc}),
		n.signed(userKey, &token.ApproveMsg{Owner: user, Spender: ledger.LedgerAddress, Amount: 10000 * usdc}),
		n.signed(userKey, &ledger.CreateDepositMsg{
			Depositor: user,
			PlanID:    orm.Uint64Key(1),
			Amount:    10000 * usdc,
			TermDays:  90,
		}),
	)
	for _, r := range res {
		requireOK(t, r)
	}
	depositID := res[4].Data
	assert.Equal(t, orm.Uint64Key(1), depositID)

	assert.Equal(t, uint64(10000*usdc), n.balance(user))
	var state vault.State
	n.query("/vault", []byte("state"), &state)
	assert.Equal(t, uint64(60000*usdc), state.Balance)

	var d ledger.Deposit
	n.query("/deposits", depositID, &d)
	assert.Equal(t, uint64(10000*usdc), d.Amount)
	assert.Equal(t, uint32(800), d.InterestRateBps)
	assert.False(t, d.IsClosed)

	// Only the admin can pause, and the failed tx still uses the nonce.
	res = n.block(start.Add(time.Hour), n.signed(userKey, &access.PauseMsg{}))
	assert.Equal(t, errors.ErrNotAdmin.ABCICode(), res[0].Code)

	// A replayed transaction is rejected by the nonce check.
	replay := n.signed(userKey, &token.ApproveMsg{Owner: user, Spender: admin, Amount: usdc})
	res = n.block(start.Add(2*time.Hour), replay, replay)
	requireOK(t, res[0])
	assert.Equal(t, sigs.ErrInvalidSequence.ABCICode(), res[1].Code, res[1].Log)

	maturity := start.Add(90 * 24 * time.Hour)
	res = n.block(maturity, n.signed(userKey, &ledger.WithdrawMsg{DepositID: depositID}))
	requireOK(t, res[0])

	assert.Equal(t, uint64(20000*usdc+197260273), n.balance(user))
	n.query("/vault", []byte("state"), &state)
	assert.Equal(t, uint64(50000*usdc-197260273), state.Balance)
	n.query("/deposits", depositID, &d)
	assert.True(t, d.IsClosed)
}

func TestPausedSystemRejectsDeposits(t *testing.T) {
	adminKey := crypto.GenPrivKeyEd25519()
	admin := adminKey.PublicKey().Address()
	n := newNode(t, admin)
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	res := n.block(now,
		n.signed(adminKey, &access.PauseMsg{}),
		n.signed(adminKey, &ledger.CreateDepositMsg{
			Depositor: admin,
			PlanID:    orm.Uint64Key(1),
			Amount:    1000 * savingbankd.OneUSDC,
			TermDays:  30,
		}),
		n.signed(adminKey, &access.UnpauseMsg{}),
	)
	requireOK(t, res[0])
	assert.Equal(t, errors.ErrEnforcedPause.ABCICode(), res[1].Code, res[1].Log)
	requireOK(t, res[2])
}

func TestDecodeInvalidTransaction(t *testing.T) {
	app, err := savingbankd.GenerateApp("", log.NewNopLogger(), false)
	require.NoError(t, err)

	res := app.CheckTx([]byte("not a transaction"))
	assert.NotEqual(t, uint32(0), res.Code)
}
