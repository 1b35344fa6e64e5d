/*
Package savingbankd links together all the various components
to construct the savingbankd app.
*/
package savingbankd

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/app"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/store/iavl"
	"github.com/iov-one/savingbank/x"
	"github.com/iov-one/savingbank/x/access"
	"github.com/iov-one/savingbank/x/certificate"
	"github.com/iov-one/savingbank/x/ledger"
	"github.com/iov-one/savingbank/x/plan"
	"github.com/iov-one/savingbank/x/sigs"
	"github.com/iov-one/savingbank/x/token"
	"github.com/iov-one/savingbank/x/utils"
	"github.com/iov-one/savingbank/x/vault"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router registers the handlers of every extension. All of them share the
// same controllers, so the ledger sees the token balances, plans and access
// configuration that the other handlers write.
func Router(authFn x.Authenticator) *app.Router {
	tokens := token.NewController()
	gate := access.NewController(authFn, vault.CustodyAddress, ledger.LedgerAddress)
	plans := plan.NewController()
	certs := certificate.NewController()
	bank := ledger.NewController(authFn, gate, plans, vault.NewController(tokens), certs)

	r := app.NewRouter()
	sigs.RegisterRoutes(r, authFn)
	access.RegisterRoutes(r, gate)
	token.RegisterRoutes(r, authFn, tokens)
	certificate.RegisterRoutes(r, authFn, certs)
	plan.RegisterRoutes(r, gate, plans)
	ledger.RegisterRoutes(r, authFn, gate, bank)
	return r
}

// QueryRouter returns a default query router, allowing access to
// "/auth", "/access", "/balances", "/allowances", "/vault", "/certificates",
// "/plans", "/deposits" and "/interest"
func QueryRouter() savingbank.QueryRouter {
	r := savingbank.NewQueryRouter()
	r.RegisterAll(
		sigs.RegisterQuery,
		access.RegisterQuery,
		token.RegisterQuery,
		vault.RegisterQuery,
		certificate.RegisterQuery,
		plan.RegisterQuery,
		ledger.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() savingbank.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h savingbank.Handler,
	tx savingbank.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), ctx)
	base := app.NewBaseApp(store, tx, h, debug)
	return base, nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (savingbank.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}
