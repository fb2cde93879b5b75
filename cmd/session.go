package cmd

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/annahallx127/HW4Stocks-sub000"
	"github.com/annahallx127/HW4Stocks-sub000/config"
	"github.com/annahallx127/HW4Stocks-sub000/date"
	"github.com/annahallx127/HW4Stocks-sub000/feed"
	"github.com/annahallx127/HW4Stocks-sub000/logging"
	"github.com/annahallx127/HW4Stocks-sub000/renderer"
	"github.com/rs/zerolog"
)

// session is what a command needs to work on saved portfolios: the
// configuration, the market, the registry and the renderer.
type session struct {
	cfg      *config.Config
	log      zerolog.Logger
	registry *stocks.Registry
	render   renderer.Renderer
	dir      string
	closers  []func() error
}

// openSession reads the configuration and builds the market it describes.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logging.New(stderr, cfg.Log.Level, cfg.Log.Format)
	stocks.SetLogger(log)

	s := &session{
		cfg:    cfg,
		log:    log,
		render: renderer.New(cfg.Currency),
		dir:    cfg.DataDir,
	}
	if *dataDir != "" {
		s.dir = *dataDir
	}

	directory, err := feed.LoadSymbolsFile(cfg.SymbolsFile)
	if err != nil {
		return nil, fmt.Errorf("cannot load the listing of symbols: %w", err)
	}

	var prices stocks.PriceFeed
	switch cfg.Feed {
	case config.FeedCSV:
		prices = feed.CSVDir{Dir: cfg.PricesDir}
	case config.FeedJSON:
		prices = feed.JSONDir{Dir: cfg.PricesDir, Path: cfg.JSONPath}
	case config.FeedRedis:
		client, err := feed.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, client.Close)
		prices = feed.Redis{Client: client, Prefix: cfg.Redis.Prefix}
	}

	s.registry = stocks.NewRegistry(stocks.NewMarket(directory, prices))
	log.Debug().Str("feed", cfg.Feed).Int("symbols", directory.Len()).Str("dir", s.dir).Msg("session opened")
	return s, nil
}

func (s *session) Close() error {
	var errs []error
	for _, c := range slices.Backward(s.closers) {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// load reads a saved portfolio.
func (s *session) load(ctx context.Context, name string) (*stocks.Portfolio, error) {
	if name == "" {
		return nil, errors.New("missing portfolio name, use -p <name>")
	}
	return s.registry.Load(ctx, name, s.dir)
}

// save writes a portfolio back, valued on day.
func (s *session) save(name string, on date.Date) error {
	return s.registry.Save(name, s.dir, on)
}

// parseDate parses a date flag, today if empty.
func parseDate(value string) (date.Date, error) {
	if value == "" {
		return date.Today(), nil
	}
	return date.Parse(value)
}
