package memory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"globe-quiz-service/internal/domain"
)

// QuestionSource fetches shaped questions from the backing store.
type QuestionSource interface {
	Query(ctx context.Context, filter domain.QuestionFilter) ([]domain.PresentationQuestion, error)
}

// QuestionCache keeps recent fetch results per (country, difficulty, limit)
// for a fixed TTL. Entries are bounded by an LRU.
type QuestionCache struct {
	source QuestionSource
	ttl    time.Duration
	clock  func() time.Time
	log    *zap.Logger
	sf     singleflight.Group

	entries *lru.Cache
}

type cachedQuestions struct {
	questions []domain.PresentationQuestion
	fetchedAt time.Time
}

type CacheOption func(*QuestionCache)

// WithClock injects the time source; tests use it to step past the TTL.
func WithClock(clock func() time.Time) CacheOption {
	return func(c *QuestionCache) { c.clock = clock }
}

func WithCacheLogger(log *zap.Logger) CacheOption {
	return func(c *QuestionCache) {
		if log != nil {
			c.log = log
		}
	}
}

func NewQuestionCache(source QuestionSource, ttl time.Duration, maxEntries int, opts ...CacheOption) (*QuestionCache, error) {
	entries, err := lru.New(maxEntries)
	if err != nil {
		return nil, fmt.Errorf("question cache: %w", err)
	}
	c := &QuestionCache{
		source:  source,
		ttl:     ttl,
		clock:   time.Now,
		log:     zap.NewNop(),
		entries: entries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CacheKey joins the three lookup dimensions.
func CacheKey(countryID string, difficulty domain.Difficulty, limit int) string {
	return countryID + ":" + string(difficulty) + ":" + strconv.Itoa(limit)
}

// GetOrFetch returns the cached list unchanged while it is younger than the
// TTL, otherwise fetches, stores and returns a fresh one. Failed fetches are
// not cached and yield an empty list.
func (c *QuestionCache) GetOrFetch(ctx context.Context, countryID string, difficulty domain.Difficulty, limit int) []domain.PresentationQuestion {
	key := CacheKey(countryID, difficulty, limit)
	if questions, ok := c.fresh(key); ok {
		return questions
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		if questions, ok := c.fresh(key); ok {
			return questions, nil
		}
		questions, err := c.source.Query(ctx, domain.QuestionFilter{
			CountryID:       countryID,
			Difficulty:      difficulty,
			Limit:           limit,
			ValidateContent: true,
		})
		if err != nil {
			return nil, err
		}
		c.entries.Add(key, cachedQuestions{questions: questions, fetchedAt: c.clock()})
		return questions, nil
	})
	if err != nil {
		c.log.Error("question cache refresh failed", zap.String("key", key), zap.Error(err))
		return []domain.PresentationQuestion{}
	}
	return result.([]domain.PresentationQuestion)
}

// Len reports how many keys are cached.
func (c *QuestionCache) Len() int {
	return c.entries.Len()
}

// Invalidate drops every cached list for a country.
func (c *QuestionCache) Invalidate(_ context.Context, countryID string) error {
	prefix := countryID + ":"
	for _, k := range c.entries.Keys() {
		key, ok := k.(string)
		if !ok {
			continue
		}
		if rest, ok := strings.CutPrefix(key, prefix); ok && strings.Count(rest, ":") == 1 {
			c.entries.Remove(key)
		}
	}
	return nil
}

func (c *QuestionCache) fresh(key string) ([]domain.PresentationQuestion, bool) {
	v, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	entry := v.(cachedQuestions)
	if c.clock().Sub(entry.fetchedAt) >= c.ttl {
		return nil, false
	}
	return entry.questions, true
}
