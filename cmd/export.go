package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/annahallx127/HW4Stocks-sub000"
	"github.com/annahallx127/HW4Stocks-sub000/export"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
	date   string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export portfolios to a spreadsheet" }
func (*exportCmd) Usage() string {
	return `stocks export [-o <file.xlsx>] [-d <date>] [<portfolio>...]

  Writes one sheet per portfolio with its holdings valued on the date. All the
  saved portfolios are exported when none is named.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "portfolios.xlsx", "Path of the spreadsheet to write.")
	f.StringVar(&c.date, "d", "", "Valuation date (yyyy-mm-dd). Defaults to today.")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintf(stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	names := f.Args()
	if len(names) == 0 {
		if names, err = stocks.FindPortfolios(s.dir); err != nil {
			fmt.Fprintf(stderr, "Error listing portfolios: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	if len(names) == 0 {
		fmt.Fprintf(stderr, "Error: no portfolio to export in %q\n", s.dir)
		return subcommands.ExitFailure
	}

	snapshots := make([]stocks.Snapshot, 0, len(names))
	for _, name := range names {
		p, err := s.load(ctx, name)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading portfolio: %v\n", err)
			return subcommands.ExitFailure
		}
		snapshot, err := p.Snapshot(on)
		if err != nil {
			fmt.Fprintf(stderr, "Error valuing portfolio %q: %v\n", name, err)
			return subcommands.ExitFailure
		}
		snapshots = append(snapshots, snapshot)
	}

	out, err := os.Create(c.output)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	if err := export.XLSX(out, snapshots...); err != nil {
		out.Close()
		fmt.Fprintf(stderr, "Error writing %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(stderr, "Error writing %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	s.log.Info().Str("file", c.output).Int("portfolios", len(snapshots)).Msg("exported")
	fmt.Fprintf(stdout, "Exported %d portfolio(s) to %s\n", len(snapshots), c.output)
	return subcommands.ExitSuccess
}
