package ledger

import (
	"testing"

	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/savingbanktest"
	"github.com/iov-one/savingbank/store"
	"github.com/iov-one/savingbank/x/certificate"
	"github.com/iov-one/savingbank/x/token"
	"github.com/iov-one/savingbank/x/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesisBindsLedgerAccount(t *testing.T) {
	db := store.MemStore()
	require.NoError(t, new(Initializer).FromGenesis(savingbank.Options{}, db))

	bound, err := vault.NewController(token.NewController()).Bound(db)
	require.NoError(t, err)
	assert.Equal(t, LedgerAddress, bound)

	minter, err := certificate.NewController().Minter(db)
	require.NoError(t, err)
	assert.Equal(t, LedgerAddress, minter)

	// Running it again is a noop.
	require.NoError(t, new(Initializer).FromGenesis(savingbank.Options{}, db))
}

func TestGenesisRejectsForeignBinding(t *testing.T) {
	other := savingbanktest.NewCondition().Address()

	cases := map[string]func(t testing.TB, db savingbank.KVStore){
		"vault bound elsewhere": func(t testing.TB, db savingbank.KVStore) {
			require.NoError(t, vault.NewController(token.NewController()).Bind(db, other))
		},
		"certificates minted elsewhere": func(t testing.TB, db savingbank.KVStore) {
			require.NoError(t, certificate.NewController().Bind(db, other))
		},
	}
	for testName, prepare := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			prepare(t, db)
			err := new(Initializer).FromGenesis(savingbank.Options{}, db)
			if !errors.ErrState.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}
