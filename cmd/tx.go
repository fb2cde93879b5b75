package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/annahallx127/HW4Stocks-sub000"
	"github.com/annahallx127/HW4Stocks-sub000/date"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// txFlags are the flags shared by the commands that add a transaction.
type txFlags struct {
	portfolio string
	date      string
}

func (t *txFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&t.portfolio, "p", "", "Name of the portfolio.")
	f.StringVar(&t.date, "d", date.Today().String(), "Date of the transaction (yyyy-mm-dd).")
}

// trade loads the portfolio, applies op and saves the portfolio back.
func (t *txFlags) trade(ctx context.Context, op func(s *session, p *stocks.Portfolio, on date.Date) error) subcommands.ExitStatus {
	on, err := date.Parse(t.date)
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

	p, err := s.load(ctx, t.portfolio)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := op(s, p, on); err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	if err := s.save(p.Name(), on); err != nil {
		fmt.Fprintf(stderr, "Error saving portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// parseTrade parses the "<symbol> <shares>" arguments of buy and sell.
func parseTrade(f *flag.FlagSet) (string, decimal.Decimal, error) {
	if f.NArg() != 2 {
		return "", decimal.Zero, fmt.Errorf("want <symbol> <shares>, got %d arguments", f.NArg())
	}
	shares, err := decimal.NewFromString(f.Arg(1))
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("invalid shares %q: %w", f.Arg(1), err)
	}
	return f.Arg(0), shares, nil
}

type buyCmd struct{ txFlags }

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy shares of a stock" }
func (*buyCmd) Usage() string {
	return `stocks buy -p <portfolio> [-d <date>] <symbol> <shares>

  Adds shares of a stock to a portfolio. Shares can be fractional.
`
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol, shares, err := parseTrade(f)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return c.trade(ctx, func(s *session, p *stocks.Portfolio, on date.Date) error {
		stock, err := s.registry.Stock(ctx, symbol)
		if err != nil {
			return err
		}
		if err := p.Add(stock, shares, on); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Bought %s of %s in %q on %s\n", shares, stock, p.Name(), on)
		return nil
	})
}

type sellCmd struct{ txFlags }

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares of a stock" }
func (*sellCmd) Usage() string {
	return `stocks sell -p <portfolio> [-d <date>] <symbol> <shares>

  Removes shares of a held stock from a portfolio.
`
}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol, shares, err := parseTrade(f)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return c.trade(ctx, func(s *session, p *stocks.Portfolio, on date.Date) error {
		stock, err := s.registry.Stock(ctx, symbol)
		if err != nil {
			return err
		}
		if err := p.Remove(stock, shares, on); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Sold %s of %s from %q on %s\n", shares, stock, p.Name(), on)
		return nil
	})
}

type rebalanceCmd struct{ txFlags }

func (*rebalanceCmd) Name() string     { return "rebalance" }
func (*rebalanceCmd) Synopsis() string { return "rebalance a portfolio to target weights" }
func (*rebalanceCmd) Usage() string {
	return `stocks rebalance -p <portfolio> [-d <date>] <symbol>=<percent>...

  Resets the holdings so that each listed stock is worth its percent of the
  portfolio value on the date. Stocks not listed are sold entirely.

  Example: stocks rebalance -p retirement AAPL=60 MSFT=40
`
}

func (c *rebalanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	weights, err := parseWeights(f.Args())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return c.trade(ctx, func(s *session, p *stocks.Portfolio, on date.Date) error {
		targets := make([]stocks.Allocation, 0, len(weights))
		for _, w := range weights {
			stock, err := s.registry.Stock(ctx, w.symbol)
			if err != nil {
				return err
			}
			targets = append(targets, stocks.Allocation{Stock: stock, Percent: w.percent})
		}
		if err := p.Rebalance(on, targets); err != nil {
			return err
		}
		printMarkdown(s.render.Composition(p.Name(), on, p.Holdings()))
		return nil
	})
}

type weight struct {
	symbol  string
	percent int
}

// parseWeights parses "<symbol>=<percent>" arguments.
func parseWeights(args []string) ([]weight, error) {
	weights := make([]weight, 0, len(args))
	for _, arg := range args {
		symbol, value, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(symbol) == "" {
			return nil, fmt.Errorf("invalid target %q, want <symbol>=<percent>", arg)
		}
		percent, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(value), "%"))
		if err != nil {
			return nil, fmt.Errorf("invalid percent in %q: %w", arg, err)
		}
		weights = append(weights, weight{symbol: symbol, percent: percent})
	}
	return weights, nil
}
