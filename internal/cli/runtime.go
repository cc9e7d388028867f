package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"globe-quiz-service/internal/app"
	"globe-quiz-service/internal/config"
	"globe-quiz-service/internal/infra/memory"
	"globe-quiz-service/internal/infra/postgres"
	redisinfra "globe-quiz-service/internal/infra/redis"
	"globe-quiz-service/internal/quality"
)

// questionStore is everything the services need from question persistence.
type questionStore interface {
	app.QuestionReader
	app.QuestionWriter
}

// countryStore is everything the services need from the country table.
type countryStore interface {
	app.CountryDirectory
	app.CountryLister
}

// runtime holds the wired services for one process.
type runtime struct {
	questions questionStore
	countries countryStore
	counter   app.QuestionCounter
	seeder    *postgres.CountryStore
	redis     *redis.Client

	fetcher   *app.Fetcher
	cache     app.QuestionCache
	admission *app.Admission
	coverage  *app.Coverage
	sessions  app.SessionRepository

	closers []func()
}

func (r *runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

// buildRuntime wires Postgres when a URL is configured and falls back to the
// in-memory store seeded with sample data otherwise. Redis, when configured,
// backs the result cache and session markers.
func buildRuntime(ctx context.Context, cfg config.Config, log *zap.Logger) (*runtime, error) {
	q := cfg.Questions
	readProfile, err := quality.ParseProfile(q.ReadProfile)
	if err != nil {
		return nil, fmt.Errorf("questions.read_profile: %w", err)
	}
	writeProfile, err := quality.ParseProfile(q.WriteProfile)
	if err != nil {
		return nil, fmt.Errorf("questions.write_profile: %w", err)
	}

	rt := &runtime{}
	if cfg.Postgres.URL != "" {
		db := postgres.OpenBun(cfg.Postgres.URL)
		rt.closers = append(rt.closers, func() { _ = db.Close() })
		if _, err := postgres.Migrate(ctx, db); err != nil {
			rt.Close()
			return nil, err
		}
		pool, err := postgres.OpenPool(ctx, cfg.Postgres.URL, cfg.Postgres.MaxConns)
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt.closers = append(rt.closers, pool.Close)
		countries := postgres.NewCountryStore(pool)
		rt.questions = postgres.NewQuestionStore(db)
		rt.countries = countries
		rt.counter = countries
		rt.seeder = countries
		log.Info("using postgres question store")
	} else {
		store := memory.NewQuestionStore(sampleQuestions()...)
		rt.questions = store
		rt.countries = memory.NewStaticCountryDirectory(sampleCountries()...)
		rt.counter = store
		log.Info("using in-memory question store with sample data", zap.Int("questions", store.Len()))
	}

	if cfg.Redis.Addr != "" {
		rt.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rt.closers = append(rt.closers, func() { _ = rt.redis.Close() })
	}

	rt.fetcher = app.NewFetcher(rt.questions,
		app.WithReadProfile(readProfile),
		app.WithFetchTimeout(config.TTLDuration(q.FetchTimeout, config.DefaultFetchTimeout)),
		app.WithFetchLogger(log.Named("fetcher")))

	cacheTTL := config.TTLDuration(q.CacheTTL, config.DefaultCacheTTL)
	var invalidator app.CacheInvalidator
	if rt.redis != nil {
		c := redisinfra.NewQuestionCache(rt.redis, rt.fetcher, cacheTTL, log.Named("cache"))
		rt.cache, invalidator = c, c
	} else {
		c, err := memory.NewQuestionCache(rt.fetcher, cacheTTL, q.CacheMaxEntries, memory.WithCacheLogger(log.Named("cache")))
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt.cache, invalidator = c, c
	}

	rt.admission = app.NewAdmission(rt.questions, rt.countries,
		app.WithWriteProfile(writeProfile),
		app.WithAdmissionLogger(log.Named("admission")),
		app.WithCacheInvalidator(invalidator))
	rt.coverage = app.NewCoverage(rt.counter, q.MinCoverage)

	if rt.redis != nil {
		rt.sessions = redisinfra.NewSessionStore(rt.redis, config.TTLDuration(cfg.Redis.TTL, 10*time.Minute), log.Named("sessions"))
	} else {
		rt.sessions = memory.NewSessionStore()
	}
	return rt, nil
}
