package server

import (
	"encoding/json"
	"flag"
	"io/ioutil"
	"path/filepath"

	"github.com/iov-one/savingbank/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	appStateKey = "app_state"
	dirConfig   = "config"
	genesisFile = "genesis.json"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

// InitCmd will try to parse the genesis file in
// <home>/config/genesis.json, created by `tendermint init`, and set the
// app_state to what gen returns. An existing app_state is kept, unless the
// -i flag is given.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	initFlags := flag.NewFlagSet("init", flag.ContinueOnError)
	force := initFlags.Bool("i", false, "ignore existing app_state and overwrite it")
	if err := initFlags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	genFile := filepath.Join(home, dirConfig, genesisFile)
	bz, err := ioutil.ReadFile(genFile)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot read genesis, did you run tendermint init: %s", err)
	}
	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot parse genesis %s: %s", genFile, err)
	}
	if state, ok := doc[appStateKey]; ok && len(state) > 0 && string(state) != "null" && !*force {
		return errors.Wrap(errors.ErrState, "app_state already set, use -i to overwrite")
	}

	options, err := gen(initFlags.Args())
	if err != nil {
		return err
	}
	doc[appStateKey] = options

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrHuman, err.Error())
	}
	if err := ioutil.WriteFile(genFile, out, 0600); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "cannot write genesis: %s", err)
	}
	logger.Info("app_state written", "path", genFile)
	return nil
}
