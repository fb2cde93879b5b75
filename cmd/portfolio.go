package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/annahallx127/HW4Stocks-sub000"
	"github.com/annahallx127/HW4Stocks-sub000/date"
	"github.com/google/subcommands"
)

type createCmd struct{}

func (*createCmd) Name() string     { return "create" }
func (*createCmd) Synopsis() string { return "create an empty portfolio" }
func (*createCmd) Usage() string {
	return `stocks create <name>

  Creates and saves a new empty portfolio.
`
}

func (*createCmd) SetFlags(*flag.FlagSet) {}

func (c *createCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: create takes exactly one portfolio name.")
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)

	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	if _, err := s.load(ctx, name); err == nil {
		fmt.Fprintf(stderr, "Error: portfolio %q already exists in %q\n", name, s.dir)
		return subcommands.ExitFailure
	} else if !errors.Is(err, stocks.ErrNotFound) {
		fmt.Fprintf(stderr, "Error loading portfolio %q: %v\n", name, err)
		return subcommands.ExitFailure
	}

	if _, err := s.registry.Create(name); err != nil {
		fmt.Fprintf(stderr, "Error creating portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.save(name, date.Today()); err != nil {
		fmt.Fprintf(stderr, "Error saving portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Created portfolio %q in %s\n", name, s.dir)
	return subcommands.ExitSuccess
}

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the saved portfolios" }
func (*listCmd) Usage() string {
	return `stocks list

  Lists the portfolios saved in the data folder.
`
}

func (*listCmd) SetFlags(*flag.FlagSet) {}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	names, err := stocks.FindPortfolios(s.dir)
	if err != nil {
		fmt.Fprintf(stderr, "Error listing portfolios: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(s.render.Portfolios(names))
	return subcommands.ExitSuccess
}

type renameCmd struct{}

func (*renameCmd) Name() string     { return "rename" }
func (*renameCmd) Synopsis() string { return "rename a portfolio" }
func (*renameCmd) Usage() string {
	return `stocks rename <old> <new>

  Renames a saved portfolio, keeping its whole transaction history.
`
}

func (*renameCmd) SetFlags(*flag.FlagSet) {}

func (c *renameCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(stderr, "Error: rename takes the old and the new portfolio names.")
		return subcommands.ExitUsageError
	}
	oldName, newName := f.Arg(0), f.Arg(1)

	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	if _, err := s.load(ctx, newName); err == nil {
		fmt.Fprintf(stderr, "Error: portfolio %q already exists\n", newName)
		return subcommands.ExitFailure
	}
	p, err := s.load(ctx, oldName)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading portfolio %q: %v\n", oldName, err)
		return subcommands.ExitFailure
	}
	if err := s.registry.Rename(oldName, newName); err != nil {
		fmt.Fprintf(stderr, "Error renaming portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.save(newName, saveDate(p)); err != nil {
		fmt.Fprintf(stderr, "Error saving portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := stocks.RemoveSaved(oldName, s.dir); err != nil {
		fmt.Fprintf(stderr, "Error removing portfolio %q: %v\n", oldName, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Renamed portfolio %q to %q\n", oldName, newName)
	return subcommands.ExitSuccess
}

// saveDate is the date a portfolio is valued on when saved without a new
// transaction: the day of its last one, today if it has none.
func saveDate(p *stocks.Portfolio) date.Date {
	if last := p.LastTransactionDate(); !last.IsZero() {
		return last
	}
	return date.Today()
}
