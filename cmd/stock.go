package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/annahallx127/HW4Stocks-sub000"
	"github.com/google/subcommands"
)

// withStock opens a session and runs report on the stock of symbol.
func withStock(ctx context.Context, symbol string, report func(s *session, stock *stocks.Stock) (string, error)) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	stock, err := s.registry.Stock(ctx, symbol)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	md, err := report(s, stock)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

type changeCmd struct{}

func (*changeCmd) Name() string     { return "change" }
func (*changeCmd) Synopsis() string { return "change of a stock close price between two dates" }
func (*changeCmd) Usage() string {
	return `stocks change <symbol> <start> <end>

  Prints the close on the end date minus the close on the start date. Dates
  falling on a weekend or a holiday use the previous trading day.
`
}

func (*changeCmd) SetFlags(*flag.FlagSet) {}

func (c *changeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprintln(stderr, "Error: change takes a symbol, a start date and an end date.")
		return subcommands.ExitUsageError
	}
	start, end := f.Arg(1), f.Arg(2)
	return withStock(ctx, f.Arg(0), func(s *session, stock *stocks.Stock) (string, error) {
		change, err := stock.GainedValue(start, end)
		if err != nil {
			return "", err
		}
		// GainedValue validated both dates.
		from, _ := parseDate(start)
		to, _ := parseDate(end)
		return s.render.Change(stock.Symbol(), from, to, change), nil
	})
}

type averageCmd struct {
	days int
	date string
}

func (*averageCmd) Name() string     { return "average" }
func (*averageCmd) Synopsis() string { return "moving average of a stock" }
func (*averageCmd) Usage() string {
	return `stocks average [-days <n>] [-d <date>] <symbol>

  Prints the mean close over the n trading days ending on the date.
`
}

func (c *averageCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 30, "Number of trading days in the average.")
	f.StringVar(&c.date, "d", "", "Last day of the average (yyyy-mm-dd). Defaults to today.")
}

func (c *averageCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: average takes exactly one symbol.")
		return subcommands.ExitUsageError
	}
	on, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintf(stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return withStock(ctx, f.Arg(0), func(s *session, stock *stocks.Stock) (string, error) {
		average, err := stock.MovingAverage(c.days, on)
		if err != nil {
			return "", err
		}
		return s.render.MovingAverage(stock.Symbol(), c.days, on, average), nil
	})
}

type crossoversCmd struct {
	days  int
	start string
	end   string
}

func (*crossoversCmd) Name() string     { return "crossovers" }
func (*crossoversCmd) Synopsis() string { return "days a stock closed above its moving average" }
func (*crossoversCmd) Usage() string {
	return `stocks crossovers [-days <n>] -s <start> [-e <end>] <symbol>

  Lists the trading days in the range whose close is above the n-day moving
  average ending on that day, most recent first.
`
}

func (c *crossoversCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 30, "Number of trading days in the average.")
	f.StringVar(&c.start, "s", "", "Start of the range (yyyy-mm-dd).")
	f.StringVar(&c.end, "e", "", "End of the range (yyyy-mm-dd). Defaults to today.")
}

func (c *crossoversCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || c.start == "" {
		fmt.Fprintln(stderr, "Error: crossovers takes a start date and exactly one symbol.")
		return subcommands.ExitUsageError
	}
	start, err := parseDate(c.start)
	if err != nil {
		fmt.Fprintf(stderr, "Error parsing start date: %v\n", err)
		return subcommands.ExitUsageError
	}
	end, err := parseDate(c.end)
	if err != nil {
		fmt.Fprintf(stderr, "Error parsing end date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return withStock(ctx, f.Arg(0), func(s *session, stock *stocks.Stock) (string, error) {
		crossovers, err := stock.Crossovers(c.days, start, end)
		if err != nil {
			return "", err
		}
		return s.render.Crossovers(crossovers), nil
	})
}
