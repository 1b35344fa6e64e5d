package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/savingbank"
	savingbankd "github.com/iov-one/savingbank/cmd/savingbankd/app"
	"github.com/iov-one/savingbank/commands/server"
	"github.com/iov-one/savingbank/errors"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome = "home"
	varHome  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".savingbank")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("savingbankd")
	fmt.Println("          Fixed term deposit node")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Initialize app options in genesis file")
	fmt.Println("start     Run the abci server")
	fmt.Println("validate  Check that genesis files load")
	fmt.Println("version   Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.savingbank")`)
}

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "savingbank")

	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	var err error
	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(savingbankd.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(savingbankd.GenerateApp, logger, *varHome, rest)
	case "validate":
		err = server.ValidateGenesis(savingbankd.Initializers(), rest)
	case "version":
		fmt.Println(savingbank.Version())
	default:
		err = errors.Wrapf(errors.ErrInput, "unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}
