package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

const tendermintGenesis = `{
  "genesis_time": "2024-01-01T00:00:00Z",
  "chain_id": "test-chain-1",
  "validators": [],
  "app_hash": ""
}`

// setupHome creates a home directory with a genesis file as created by
// tendermint init.
func setupHome(t *testing.T) (string, func()) {
	home, err := ioutil.TempDir("", "savingbank-cmd")
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(home, dirConfig), 0755))
	require.NoError(t, ioutil.WriteFile(filepath.Join(home, dirConfig, genesisFile), []byte(tendermintGenesis), 0600))
	return home, func() { os.RemoveAll(home) }
}

func readGenesis(t *testing.T, home string) GenesisDoc {
	bz, err := ioutil.ReadFile(filepath.Join(home, dirConfig, genesisFile))
	require.NoError(t, err)
	var doc GenesisDoc
	require.NoError(t, json.Unmarshal(bz, &doc))
	return doc
}

func genStatic(state string) GenOptions {
	return func(args []string) (json.RawMessage, error) {
		return json.RawMessage(state), nil
	}
}

func TestInit(t *testing.T) {
	home, cleanup := setupHome(t)
	defer cleanup()

	logger := log.NewNopLogger()
	require.NoError(t, InitCmd(genStatic(`{"conf":{"access":{}}}`), logger, home, nil))

	// keep old values, and add our values
	doc := readGenesis(t, home)
	assert.Equal(t, json.RawMessage(`"test-chain-1"`), doc["chain_id"])
	assert.Contains(t, doc, "validators")
	assert.JSONEq(t, `{"conf":{"access":{}}}`, string(doc[appStateKey]))

	// An existing state is only replaced on demand.
	err := InitCmd(genStatic(`{}`), logger, home, nil)
	assert.True(t, errors.ErrState.Is(err))
	require.NoError(t, InitCmd(genStatic(`{"replaced":true}`), logger, home, []string{"-i"}))
	assert.JSONEq(t, `{"replaced":true}`, string(readGenesis(t, home)[appStateKey]))
}

func TestInitPassesArguments(t *testing.T) {
	home, cleanup := setupHome(t)
	defer cleanup()

	var got []string
	gen := func(args []string) (json.RawMessage, error) {
		got = args
		return json.RawMessage(`{}`), nil
	}
	require.NoError(t, InitCmd(gen, log.NewNopLogger(), home, []string{"-i", "USDC", "ABCD"}))
	assert.Equal(t, []string{"USDC", "ABCD"}, got)
}

func TestInitWithoutTendermintFiles(t *testing.T) {
	home, err := ioutil.TempDir("", "savingbank-cmd")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	err = InitCmd(genStatic(`{}`), log.NewNopLogger(), home, nil)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestParseStartFlags(t *testing.T) {
	res, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, "tcp://localhost:26658", res.bind)
	assert.False(t, res.debug)

	res, err = parseFlags([]string{"-bind", "unix:///tmp/app.sock", "-debug"})
	require.NoError(t, err)
	assert.Equal(t, "unix:///tmp/app.sock", res.bind)
	assert.True(t, res.debug)

	_, err = parseFlags([]string{"-unknown"})
	assert.True(t, errors.ErrInput.Is(err))
}

type requireKey string

func (k requireKey) FromGenesis(opts savingbank.Options, db savingbank.KVStore) error {
	if _, ok := opts[string(k)]; !ok {
		return errors.Wrapf(errors.ErrInput, "missing %q", string(k))
	}
	return nil
}

func TestValidateGenesis(t *testing.T) {
	home, cleanup := setupHome(t)
	defer cleanup()
	require.NoError(t, InitCmd(genStatic(`{"plans":[]}`), log.NewNopLogger(), home, nil))
	path := filepath.Join(home, dirConfig, genesisFile)

	assert.NoError(t, ValidateGenesis(requireKey("plans"), []string{path}))
	err := ValidateGenesis(requireKey("conf"), []string{path})
	assert.True(t, errors.ErrInput.Is(err))
	err = ValidateGenesis(requireKey("plans"), []string{filepath.Join(home, "missing.json")})
	assert.True(t, errors.ErrInput.Is(err))
	err = ValidateGenesis(requireKey("plans"), nil)
	assert.True(t, errors.ErrInput.Is(err))
}
