// Package numerator provides document auto-numbering service.
// Numbers come from sys_sequences rows incremented atomically via UPSERT,
// so they are safe under concurrent document creation.
package numerator

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
)

// Strategy defines the numbering generation strategy.
type Strategy int

const (
	// StrategyStrict uses UPSERT ... RETURNING for every number.
	// Guarantees sequential numbers without gaps.
	// Slower, suitable for orders and accounting documents.
	StrategyStrict Strategy = iota

	// StrategyCached allocates ranges of numbers in memory.
	// Much faster, but may produce gaps if application restarts.
	// Suitable for internal documents.
	StrategyCached
)

// Options configuration for number generation.
type Options struct {
	// Strategy to use for number generation
	Strategy Strategy
	// RangeSize is the number of IDs to allocate at once in Cached strategy.
	// Default is 50.
	RangeSize int64
}

// DefaultOptions returns standard options (Strict).
func DefaultOptions() *Options {
	return &Options{
		Strategy: StrategyStrict,
	}
}

// Querier interface for database operations.
// Satisfied by pgx.Tx, pgxpool.Pool and the postgres TxManager querier.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// QuerierFunc resolves the querier for the current context.
// Wiring it to TxManager.GetQuerier makes counter increments participate
// in the caller's transaction when one is active.
type QuerierFunc func(ctx context.Context) Querier

type cachedRange struct {
	current int64
	max     int64
}

// Service provides document numbering functionality.
type Service struct {
	querier QuerierFunc

	cacheMu sync.Mutex
	ranges  map[string]*cachedRange
}

// New creates a new numerator service.
func New(querier QuerierFunc) *Service {
	return &Service{
		querier: querier,
		ranges:  make(map[string]*cachedRange),
	}
}

// NewStatic creates a numerator service bound to a single querier.
// Use for testing scenarios.
func NewStatic(q Querier) *Service {
	return New(func(context.Context) Querier { return q })
}

// Config holds numbering configuration.
type Config struct {
	// Prefix added to all numbers (e.g., "PO", "ADJ"); empty for bare numbers
	Prefix string

	// SequenceName identifies the counter row (e.g., "orderNumber")
	SequenceName string

	// PadWidth is the minimum number width (default 6)
	PadWidth int

	// ResetPeriod: "year", "month", "never"
	ResetPeriod string
}

// DefaultConfig returns sensible defaults: bare zero-padded numbers,
// never reset.
func DefaultConfig(sequenceName string) Config {
	return Config{
		SequenceName: sequenceName,
		PadWidth:     6,
		ResetPeriod:  "never",
	}
}

// PrefixedConfig returns a config producing PREFIX-XXXXXX numbers.
func PrefixedConfig(prefix, sequenceName string) Config {
	cfg := DefaultConfig(sequenceName)
	cfg.Prefix = prefix
	return cfg
}

// GetNextNumber generates the next document number.
// Pattern: [PREFIX-]XXXXXX (e.g., 000123 or PO-000042).
func (s *Service) GetNextNumber(ctx context.Context, cfg Config, opts *Options, period time.Time) (string, error) {
	if s == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}

	if opts == nil {
		opts = DefaultOptions()
	}

	key := s.buildKey(cfg, period)
	var num int64
	var err error

	switch opts.Strategy {
	case StrategyCached:
		num, err = s.getNextCached(ctx, key, opts)
	case StrategyStrict:
		fallthrough
	default:
		num, err = s.getNextStrict(ctx, key)
	}

	if err != nil {
		return "", err
	}

	return s.formatNumber(cfg, num), nil
}

// Next generates the next number for a sequence using default config.
func (s *Service) Next(ctx context.Context, sequenceName string) (string, error) {
	return s.GetNextNumber(ctx, DefaultConfig(sequenceName), nil, time.Now())
}

// getNextStrict fetches the next number directly from DB using UPSERT + RETURNING.
func (s *Service) getNextStrict(ctx context.Context, key string) (int64, error) {
	var num int64
	err := s.querier(ctx).QueryRow(ctx, `
        INSERT INTO sys_sequences (key, current_val)
        VALUES ($1, 1)
        ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + 1
        RETURNING current_val
	`, key).Scan(&num)
	if err != nil {
		return 0, fmt.Errorf("strict next: %w", err)
	}
	return num, nil
}

// getNextCached fetches next number from memory, refilling from DB if needed.
func (s *Service) getNextCached(ctx context.Context, key string, opts *Options) (int64, error) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	rng, exists := s.ranges[key]
	if !exists {
		rng = &cachedRange{}
		s.ranges[key] = rng
	}

	if rng.current >= rng.max {
		size := opts.RangeSize
		if size <= 0 {
			size = 50
		}

		// current_val in sys_sequences is the last handed-out value.
		// Bumping it by size reserves the half-open range (newMax-size, newMax].
		var newMax int64
		err := s.querier(ctx).QueryRow(ctx, `
            INSERT INTO sys_sequences (key, current_val)
            VALUES ($1, $2)
            ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + $2
            RETURNING current_val
		`, key, size).Scan(&newMax)
		if err != nil {
			return 0, fmt.Errorf("reserve range: %w", err)
		}

		rng.current = newMax - size
		rng.max = newMax
	}

	rng.current++
	return rng.current, nil
}

// SetNextNumber sets the counter value (for migration purposes).
func (s *Service) SetNextNumber(ctx context.Context, cfg Config, period time.Time, value int64) error {
	key := s.buildKey(cfg, period)

	var result int64
	err := s.querier(ctx).QueryRow(ctx, `
		INSERT INTO sys_sequences (key, current_val)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET current_val = $2
		RETURNING current_val
	`, key, value).Scan(&result)

	s.cacheMu.Lock()
	delete(s.ranges, key)
	s.cacheMu.Unlock()

	return err
}

// buildKey creates the sequence key based on config and period.
func (s *Service) buildKey(cfg Config, period time.Time) string {
	switch cfg.ResetPeriod {
	case "month":
		return fmt.Sprintf("%s_%s", cfg.SequenceName, period.Format("2006_01"))
	case "year":
		return fmt.Sprintf("%s_%s", cfg.SequenceName, period.Format("2006"))
	default:
		return cfg.SequenceName
	}
}

// formatNumber creates the final number string.
func (s *Service) formatNumber(cfg Config, num int64) string {
	padWidth := cfg.PadWidth
	if padWidth == 0 {
		padWidth = 6
	}

	if cfg.Prefix != "" {
		return fmt.Sprintf("%s-%0*d", cfg.Prefix, padWidth, num)
	}
	return fmt.Sprintf("%0*d", padWidth, num)
}

// ParseNumber extracts numeric part from formatted number.
// Returns -1 if parsing fails.
func ParseNumber(formatted string) int64 {
	var num int64
	if idx := strings.LastIndex(formatted, "-"); idx >= 0 {
		formatted = formatted[idx+1:]
	}
	if _, err := fmt.Sscanf(formatted, "%d", &num); err != nil {
		return -1
	}
	return num
}
