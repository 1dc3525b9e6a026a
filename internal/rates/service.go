package rates

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// CacheTTL is how long a fetched rate stays valid
const CacheTTL = 60 * time.Minute

type cacheEntry struct {
	rate      decimal.Decimal
	fetchedAt time.Time
}

// Service resolves spot conversion rates through an ordered source chain with
// a TTL cache. An expired entry is never served stale: when every source
// fails, callers get domain.ErrRateUnavailable and must skip conversion
// rather than treat the rate as zero.
type Service struct {
	sources []Source
	ttl     time.Duration
	now     func() time.Time
	limiter *rate.Limiter
	logger  zerolog.Logger

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// Option configures a Service
type Option func(*Service)

// WithClock injects a clock, for deterministic TTL tests
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithTTL overrides the cache TTL
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

// NewService creates a rate service over an ordered list of sources
// (primary first)
func NewService(sources []Source, logger zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		sources: sources,
		ttl:     CacheTTL,
		now:     time.Now,
		// Upstream fetches are throttled so concurrent cache misses cannot
		// stampede the providers
		limiter: rate.NewLimiter(rate.Every(time.Second), 2),
		logger:  logger.With().Str("component", "rates").Logger(),
		cache:   make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetRate returns the spot rate from one currency to another. Same-currency
// requests always yield 1.
func (s *Service) GetRate(ctx context.Context, from, to domain.Currency) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	key := string(from) + "/" + string(to)

	s.mu.Lock()
	if entry, ok := s.cache[key]; ok && s.now().Sub(entry.fetchedAt) < s.ttl {
		s.mu.Unlock()
		return entry.rate, nil
	}
	s.mu.Unlock()

	if err := s.limiter.Wait(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("rate fetch throttled: %w", err)
	}

	for _, src := range s.sources {
		fetched, err := src.Fetch(ctx, from, to)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("source", src.Name()).
				Str("pair", key).
				Msg("Rate source failed")
			continue
		}

		s.mu.Lock()
		s.cache[key] = cacheEntry{rate: fetched, fetchedAt: s.now()}
		s.mu.Unlock()

		return fetched, nil
	}

	return decimal.Zero, fmt.Errorf("%s: %w", key, domain.ErrRateUnavailable)
}
