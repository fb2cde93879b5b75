package cmd

import (
	"flag"
	"slices"

	"github.com/annahallx127/HW4Stocks-sub000"
	"github.com/annahallx127/HW4Stocks-sub000/config"
	"github.com/annahallx127/HW4Stocks-sub000/feed"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line of the application for shell completion.
func Completion() *complete.Command {
	portfolios := complete.PredictFunc(predictPortfolios)
	symbols := complete.PredictFunc(predictSymbols)

	args := map[string]complete.Predictor{
		"create":     predict.Nothing,
		"list":       predict.Nothing,
		"rename":     portfolios,
		"export":     portfolios,
		"buy":        symbols,
		"sell":       symbols,
		"rebalance":  symbols,
		"change":     symbols,
		"average":    symbols,
		"crossovers": symbols,
	}
	flags := map[string]complete.Predictor{
		"p": portfolios,
		"o": predict.Files("*.xlsx"),
	}

	root := &complete.Command{
		Sub: make(map[string]*complete.Command),
		Flags: map[string]complete.Predictor{
			"data-dir": predict.Dirs("*"),
			"raw":      predict.Nothing,
		},
	}
	for command := range Commands() {
		fs := flag.NewFlagSet(command.Name(), flag.ContinueOnError)
		command.SetFlags(fs)
		sub := &complete.Command{Flags: make(map[string]complete.Predictor), Args: args[command.Name()]}
		fs.VisitAll(func(f *flag.Flag) {
			if p, ok := flags[f.Name]; ok {
				sub.Flags[f.Name] = p
			} else {
				sub.Flags[f.Name] = predict.Something
			}
		})
		root.Sub[command.Name()] = sub
	}
	return root
}

func predictPortfolios(prefix string) []string {
	cfg, err := config.Load()
	if err != nil {
		return nil
	}
	dir := cfg.DataDir
	if *dataDir != "" {
		dir = *dataDir
	}
	names, _ := stocks.FindPortfolios(dir)
	return names
}

func predictSymbols(prefix string) []string {
	cfg, err := config.Load()
	if err != nil {
		return nil
	}
	directory, err := feed.LoadSymbolsFile(cfg.SymbolsFile)
	if err != nil {
		return nil
	}
	return slices.Collect(directory.All())
}
