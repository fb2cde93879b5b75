package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type logCmd struct {
	portfolio string
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "display the transactions of a portfolio" }
func (*logCmd) Usage() string {
	return `stocks log -p <portfolio>

  Lists the transactions of a portfolio in the order they were made.
`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Name of the portfolio.")
}

func (c *logCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	p, err := s.load(ctx, c.portfolio)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(s.render.Transactions(p.Name(), p.Transactions()))
	return subcommands.ExitSuccess
}
