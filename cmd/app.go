// Package cmd implements the stocks command line application.
package cmd

import (
	"flag"
	"io"
	"os"

	"github.com/google/subcommands"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data-dir", "", "Folder of the saved portfolios. Defaults to $STOCKS_DATA_DIR.")
var raw = flag.Bool("raw", false, "Print reports as raw markdown instead of rendering them for the terminal.")

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Commands returns a new instance of every subcommand, with its group.
func Commands() map[subcommands.Command]string {
	return map[subcommands.Command]string{
		&createCmd{}: "portfolios",
		&listCmd{}:   "portfolios",
		&renameCmd{}: "portfolios",
		&exportCmd{}: "portfolios",

		&buyCmd{}:       "transactions",
		&sellCmd{}:      "transactions",
		&rebalanceCmd{}: "transactions",

		&valueCmd{}:        "reports",
		&distributionCmd{}: "reports",
		&compositionCmd{}:  "reports",
		&logCmd{}:          "reports",

		&changeCmd{}:     "stocks",
		&averageCmd{}:    "stocks",
		&crossoversCmd{}: "stocks",
	}
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for command, group := range Commands() {
		c.Register(command, group)
	}
}
