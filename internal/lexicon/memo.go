package lexicon

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kkennyy/call-what-ah/internal/cache"
)

// DefaultMemoSize bounds the memo when no size is configured
const DefaultMemoSize = 500

// Memo caches a provider's answers and never fails: provider errors
// degrade to an empty baseline.
type Memo struct {
	provider Provider
	cache    *cache.MemoryCache
	ttl      time.Duration
	logger   *zap.Logger
}

// NewMemo wraps provider with a bounded cache. maxEntries <= 0 uses
// DefaultMemoSize; ttl 0 keeps entries until evicted.
func NewMemo(provider Provider, maxEntries int, ttl time.Duration, logger *zap.Logger) *Memo {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Memo{
		provider: provider,
		cache:    cache.NewMemoryCache(ttl, time.Minute, maxEntries),
		ttl:      ttl,
		logger:   logger,
	}
}

// MemoKey is the cache key for q
func MemoKey(q Query) string {
	return fmt.Sprintf("%d|%t|%s", int(q.Sex), q.Reverse, q.Text)
}

// Terms returns the cached or freshly fetched baseline for q
func (m *Memo) Terms(ctx context.Context, q Query) []string {
	if q.Text == "" {
		return []string{}
	}

	key := MemoKey(q)
	var terms []string
	if cache.GetJSON(m.cache, key, &terms) {
		m.logger.Debug("baseline cache hit", zap.String("key", key))
		return terms
	}

	terms, err := m.provider.Terms(ctx, q)
	if err != nil {
		m.logger.Warn("baseline lookup failed",
			zap.String("provider", m.provider.Name()),
			zap.String("text", q.Text),
			zap.Error(err))
		return []string{}
	}
	if terms == nil {
		terms = []string{}
	}

	if err := cache.SetJSON(m.cache, key, terms, m.ttl); err != nil {
		m.logger.Debug("baseline cache write failed", zap.Error(err))
	}
	return terms
}

// Len returns the number of memoized queries
func (m *Memo) Len() int {
	return m.cache.Len()
}
