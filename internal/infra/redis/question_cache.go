package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"globe-quiz-service/internal/domain"
	"globe-quiz-service/internal/logger"
)

// QuestionSource fetches shaped questions from the backing store.
type QuestionSource interface {
	Query(ctx context.Context, filter domain.QuestionFilter) ([]domain.PresentationQuestion, error)
}

// QuestionCache shares fetch results between instances.
// Each (country, difficulty, limit) list is stored as one JSON string:
//
//	SET questions:{country}:{difficulty}:{limit} <json> EX ttl
//
// Redis failures degrade to a direct fetch; they never fail the caller.
type QuestionCache struct {
	client *redis.Client
	source QuestionSource
	ttl    time.Duration
	log    *zap.Logger
	sf     singleflight.Group
}

func NewQuestionCache(client *redis.Client, source QuestionSource, ttl time.Duration, log *zap.Logger) *QuestionCache {
	return &QuestionCache{client: client, source: source, ttl: ttl, log: logger.OrNop(log)}
}

func (c *QuestionCache) GetOrFetch(ctx context.Context, countryID string, difficulty domain.Difficulty, limit int) []domain.PresentationQuestion {
	key := c.key(countryID, difficulty, limit)
	if questions, ok := c.lookup(ctx, key); ok {
		return questions
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		if questions, ok := c.lookup(ctx, key); ok {
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
		c.store(ctx, key, questions)
		return questions, nil
	})
	if err != nil {
		c.log.Error("question cache refresh failed", zap.String("key", key), zap.Error(err))
		return []domain.PresentationQuestion{}
	}
	return result.([]domain.PresentationQuestion)
}

// Invalidate drops every cached list for a country, used after its
// questions are replaced.
func (c *QuestionCache) Invalidate(ctx context.Context, countryID string) error {
	prefix := "questions:" + countryID + ":"
	iter := c.client.Scan(ctx, 0, globEscaper.Replace(prefix)+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		key := iter.Val()
		// difficulty:limit must follow, so ids sharing a prefix are left alone
		if rest, ok := strings.CutPrefix(key, prefix); ok && strings.Count(rest, ":") == 1 {
			keys = append(keys, key)
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *QuestionCache) lookup(ctx context.Context, key string) ([]domain.PresentationQuestion, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("question cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var questions []domain.PresentationQuestion
	if err := json.Unmarshal(raw, &questions); err != nil {
		c.log.Warn("question cache entry unreadable", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return questions, true
}

func (c *QuestionCache) store(ctx context.Context, key string, questions []domain.PresentationQuestion) {
	raw, err := json.Marshal(questions)
	if err != nil {
		c.log.Warn("question cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("question cache write failed", zap.String("key", key), zap.Error(err))
	}
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func (c *QuestionCache) key(countryID string, difficulty domain.Difficulty, limit int) string {
	return "questions:" + countryID + ":" + string(difficulty) + ":" + strconv.Itoa(limit)
}
