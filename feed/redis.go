package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/annahallx127/HW4Stocks-sub000"
	"github.com/redis/go-redis/v9"
)

// Redis serves rows cached in Redis, as a JSON array under the key
// "<Prefix><SYMBOL>".
type Redis struct {
	Client redis.Cmdable
	Prefix string
}

// NewRedisClient connects to the Redis server at addr.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("error while connecting to redis at %q: %w", addr, err)
	}
	return rdb, nil
}

func (r Redis) key(symbol string) string { return r.Prefix + stocks.NormalizeSymbol(symbol) }

// Rows implements stocks.PriceFeed.
func (r Redis) Rows(ctx context.Context, symbol string) ([]stocks.PriceRecord, error) {
	data, err := r.Client.Get(ctx, r.key(symbol)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: no cached prices for %q", stocks.ErrNoSuchSymbol, symbol)
	}
	if err != nil {
		return nil, fmt.Errorf("failed on redis get %q: %w", r.key(symbol), err)
	}
	return decodeRows(data)
}

// Store caches the rows of symbol for ttl, forever if ttl is zero.
func (r Redis) Store(ctx context.Context, symbol string, rows []stocks.PriceRecord, ttl time.Duration) error {
	data, err := encodeRows(rows)
	if err != nil {
		return fmt.Errorf("can't marshal prices of %q: %w", symbol, err)
	}
	return r.Client.Set(ctx, r.key(symbol), data, ttl).Err()
}

// StoreAll caches the rows of several symbols in a single round trip.
func (r Redis) StoreAll(ctx context.Context, rows map[string][]stocks.PriceRecord, ttl time.Duration) error {
	pipe := r.Client.Pipeline()
	for symbol, list := range rows {
		data, err := encodeRows(list)
		if err != nil {
			return fmt.Errorf("can't marshal prices of %q: %w", symbol, err)
		}
		pipe.Set(ctx, r.key(symbol), data, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed on pipe exec: %w", err)
	}
	return nil
}

func encodeRows(rows []stocks.PriceRecord) ([]byte, error) {
	if rows == nil {
		rows = []stocks.PriceRecord{}
	}
	return json.Marshal(rows)
}

func decodeRows(data []byte) ([]stocks.PriceRecord, error) {
	var rows []stocks.PriceRecord
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("can't unmarshal cached prices: %w", err)
	}
	for i, r := range rows {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return rows, nil
}
