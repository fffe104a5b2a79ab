// Package timeouts centralizes the context deadlines used for database
// operations so handlers and stores share one tunable set of values.
package timeouts

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default durations for each operation tier.
const (
	DefaultPing   = 3 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 15 * time.Second
	DefaultLong   = 30 * time.Second
)

// Config holds the tunable timeout tiers.
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

var (
	mu  sync.RWMutex
	cfg = Config{
		Ping:   DefaultPing,
		Short:  DefaultShort,
		Medium: DefaultMedium,
		Long:   DefaultLong,
	}
)

// Configure replaces the active timeout tiers. Zero values keep the
// current setting for that tier.
func Configure(c Config) {
	mu.Lock()
	defer mu.Unlock()
	if c.Ping > 0 {
		cfg.Ping = c.Ping
	}
	if c.Short > 0 {
		cfg.Short = c.Short
	}
	if c.Medium > 0 {
		cfg.Medium = c.Medium
	}
	if c.Long > 0 {
		cfg.Long = c.Long
	}
}

// Reset restores the default tiers. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	cfg = Config{
		Ping:   DefaultPing,
		Short:  DefaultShort,
		Medium: DefaultMedium,
		Long:   DefaultLong,
	}
}

// Ping is the budget for connectivity checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return cfg.Ping
}

// Short is the budget for single-document reads and writes.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return cfg.Short
}

// Medium is the budget for multi-document queries and aggregations.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return cfg.Medium
}

// Long is the budget for transactions and cascade operations.
func Long() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return cfg.Long
}

// WithTimeout derives a context with the given budget and logs when the
// parent has already expired, which usually means a handler chained too
// many sequential calls on one request budget.
func WithTimeout(ctx context.Context, d time.Duration, logger *zap.Logger) (context.Context, context.CancelFunc) {
	if err := ctx.Err(); err != nil && logger != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Warn("deriving timeout from expired context", zap.Duration("budget", d))
		}
	}
	return context.WithTimeout(ctx, d)
}
