package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/annahallx127/HW4Stocks-sub000"
	"github.com/annahallx127/HW4Stocks-sub000/date"
	"github.com/google/subcommands"
)

// reportFlags are the flags shared by the reports on a portfolio.
type reportFlags struct {
	portfolio string
	date      string
}

func (r *reportFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.portfolio, "p", "", "Name of the portfolio.")
	f.StringVar(&r.date, "d", "", "Date of the report (yyyy-mm-dd). Defaults to today.")
}

// report loads the portfolio and prints the markdown returned by build.
func (r *reportFlags) report(ctx context.Context, build func(s *session, p *stocks.Portfolio, on date.Date) (string, error)) subcommands.ExitStatus {
	on, err := parseDate(r.date)
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

	p, err := s.load(ctx, r.portfolio)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	md, err := build(s, p, on)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

type valueCmd struct{ reportFlags }

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "value of a portfolio on a date" }
func (*valueCmd) Usage() string {
	return `stocks value -p <portfolio> [-d <date>]

  Prints the total value of the current holdings on the date. Each stock is
  priced on its closest trading day on or before the date.
`
}

func (c *valueCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.report(ctx, func(s *session, p *stocks.Portfolio, on date.Date) (string, error) {
		total, err := p.ValueOnDate(on)
		if err != nil {
			return "", err
		}
		return s.render.Value(p.Name(), on, total), nil
	})
}

type distributionCmd struct{ reportFlags }

func (*distributionCmd) Name() string     { return "distribution" }
func (*distributionCmd) Synopsis() string { return "weight of each stock in a portfolio" }
func (*distributionCmd) Usage() string {
	return `stocks distribution -p <portfolio> [-d <date>]

  Prints the value of each holding on the date and its percent of the
  portfolio value.
`
}

func (c *distributionCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.report(ctx, func(s *session, p *stocks.Portfolio, on date.Date) (string, error) {
		d, err := p.DistributionOnDate(on)
		if err != nil {
			return "", err
		}
		return s.render.Distribution(p.Name(), d), nil
	})
}

type compositionCmd struct{ reportFlags }

func (*compositionCmd) Name() string     { return "composition" }
func (*compositionCmd) Synopsis() string { return "holdings of a portfolio at the end of a date" }
func (*compositionCmd) Usage() string {
	return `stocks composition -p <portfolio> [-d <date>]

  Prints the shares held at the end of the date, replayed from the
  transactions.
`
}

func (c *compositionCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.report(ctx, func(s *session, p *stocks.Portfolio, on date.Date) (string, error) {
		holdings, err := p.CompositionOnDate(on)
		if err != nil {
			return "", err
		}
		return s.render.Composition(p.Name(), on, holdings), nil
	})
}
