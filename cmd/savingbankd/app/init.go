package savingbankd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/crypto"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/x/access"
	"github.com/iov-one/savingbank/x/certificate"
	"github.com/iov-one/savingbank/x/ledger"
	"github.com/iov-one/savingbank/x/plan"
	"github.com/iov-one/savingbank/x/token"
	"github.com/iov-one/savingbank/x/vault"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// OneUSDC is a single whole token, with 6 decimals.
const OneUSDC = 1000000

// initialSupply is minted to the admin in dev mode.
const initialSupply = 10000000 * OneUSDC

// DefaultPlans are the plans every dev genesis starts with. The first one gets
// id 1.
func DefaultPlans() []plan.CreatePlanMsg {
	return []plan.CreatePlanMsg{
		{
			Name:            "Default Plan",
			MinAmount:       100 * OneUSDC,
			MaxAmount:       0,
			MinTermDays:     30,
			MaxTermDays:     365,
			InterestRateBps: 800,
			PenaltyRateBps:  500,
		},
		{
			Name:            "Premium Plan",
			MinAmount:       1000 * OneUSDC,
			MaxAmount:       100000 * OneUSDC,
			MinTermDays:     90,
			MaxTermDays:     730,
			InterestRateBps: 1200,
			PenaltyRateBps:  300,
		},
	}
}

type genesisConf struct {
	Access access.Configuration `json:"access"`
	Token  token.Configuration  `json:"token"`
}

type genesis struct {
	Conf     genesisConf            `json:"conf"`
	Balances []token.GenesisBalance `json:"balances"`
	Plans    []plan.CreatePlanMsg   `json:"plans"`
}

// GenInitOptions will produce some basic options for one admin
// account, to use for dev mode. The admin is also the token minter and holds
// the whole initial supply.
//
// You can pass the hex admin address as the only argument, otherwise a new
// key is generated and printed out.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var admin savingbank.Address
	if len(args) > 0 {
		addr, err := savingbank.ParseAddress(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "admin address")
		}
		if len(addr) == 0 {
			return nil, errors.Wrap(errors.ErrInput, "empty admin address")
		}
		admin = addr
	} else {
		// if no address provided, auto-generate one
		// and print out the keys
		addr, keys, err := GenerateAdminKey()
		if err != nil {
			return nil, err
		}
		admin = addr
		fmt.Println(keys)
	}

	gen := genesis{
		Conf: genesisConf{
			Access: access.Configuration{Admin: admin},
			Token: token.Configuration{
				Name:     "USD Coin",
				Symbol:   "USDC",
				Decimals: 6,
				Minter:   admin,
			},
		},
		Balances: []token.GenesisBalance{
			{Address: admin, Amount: initialSupply},
		},
		Plans: DefaultPlans(),
	}
	raw, err := json.MarshalIndent(gen, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// Initializers loads every extension from the genesis. The ledger comes last,
// as it binds the vault and the certificate registry created before it.
func Initializers() savingbank.Initializer {
	return savingbank.ChainInitializers{
		&access.Initializer{},
		&token.Initializer{},
		&vault.Initializer{},
		&certificate.Initializer{},
		&plan.Initializer{},
		&ledger.Initializer{},
	}
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "savingbank.db")
	}

	application, err := Application("savingbankd", Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(Initializers())

	// set the logger and return
	application.WithLogger(logger)
	return application, nil
}

type output struct {
	Pubkey *crypto.PublicKey  `json:"pub_key"`
	Secret *crypto.PrivateKey `json:"secret"`
}

// GenerateAdminKey returns the address of a new public key,
// along with a json representation of the keys.
func GenerateAdminKey() (savingbank.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()

	out := output{Pubkey: pubKey, Secret: privKey}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return pubKey.Address(), string(keys), nil
}
