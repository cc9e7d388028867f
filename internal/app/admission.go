package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"globe-quiz-service/internal/domain"
	"globe-quiz-service/internal/quality"
)

const defaultLoadParallelism = 4

// Admission validates and inserts externally generated question batches,
// de-duplicating against what is already persisted.
type Admission struct {
	store       QuestionWriter
	countries   CountryDirectory
	checker     *quality.PreChecker
	log         *zap.Logger
	newID       func() string
	parallelism int
	caches      []CacheInvalidator
}

type AdmissionOption func(*Admission)

// WithWriteProfile sets the profile used by the template/off-topic rule.
func WithWriteProfile(p quality.Profile) AdmissionOption {
	return func(a *Admission) { a.checker = quality.NewPreChecker(p) }
}

func WithAdmissionLogger(log *zap.Logger) AdmissionOption {
	return func(a *Admission) {
		if log != nil {
			a.log = log
		}
	}
}

// WithIDGenerator replaces the UUID generator for questions arriving without an id.
func WithIDGenerator(fn func() string) AdmissionOption {
	return func(a *Admission) { a.newID = fn }
}

// WithCacheInvalidator registers a cache to flush for every country a batch touched.
func WithCacheInvalidator(c CacheInvalidator) AdmissionOption {
	return func(a *Admission) {
		if c != nil {
			a.caches = append(a.caches, c)
		}
	}
}

// NewAdmission builds the service. countries may be nil, in which case
// country names are derived from their ids.
func NewAdmission(store QuestionWriter, countries CountryDirectory, opts ...AdmissionOption) *Admission {
	a := &Admission{
		store:       store,
		countries:   countries,
		checker:     quality.NewPreChecker(quality.ProfileStrict),
		log:         zap.NewNop(),
		newID:       uuid.NewString,
		parallelism: defaultLoadParallelism,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Check runs the pre-check for a single candidate without persisting it.
func (a *Admission) Check(ctx context.Context, candidate quality.Candidate) quality.Report {
	if candidate.CountryName == "" && candidate.Question.CountryID != "" {
		candidate.CountryName = a.countryName(ctx, candidate.Question.CountryID)
	}
	return a.checker.Check(candidate)
}

// Upsert admits a batch. Validation failures and duplicates are reported in
// the result; only store failures while loading or inserting return an error,
// and the result returned alongside still carries the delete count and skips.
func (a *Admission) Upsert(ctx context.Context, questions []domain.Question, opts domain.UpsertOptions) (domain.UpsertResult, error) {
	result := domain.UpsertResult{SkippedDetails: []domain.SkippedQuestion{}}

	if opts.ReplaceForCountry && opts.CountryID != "" {
		deleted, err := a.store.DeleteByCountry(ctx, opts.CountryID)
		if err != nil {
			a.log.Error("delete before replace failed", zap.String("country_id", opts.CountryID), zap.Error(err))
			result.DeleteError = err.Error()
		} else {
			result.Deleted = deleted
			a.log.Info("deleted questions before replace", zap.String("country_id", opts.CountryID), zap.Int("deleted", deleted))
		}
	}

	batch := lo.Map(questions, func(q domain.Question, _ int) domain.Question {
		if q.CountryID == "" {
			q.CountryID = opts.CountryID
		}
		return q
	})
	countryIDs := lo.Uniq(lo.FilterMap(batch, func(q domain.Question, _ int) (string, bool) {
		return q.CountryID, q.CountryID != ""
	}))

	existing, err := a.loadExisting(ctx, countryIDs)
	if err != nil {
		return result, err
	}

	accepted := make([]domain.Question, 0, len(batch))
	for i, q := range batch {
		if issues := a.rowIssues(&q, existing); len(issues) > 0 {
			result.AddSkipped(domain.SkippedQuestion{Index: i, ID: q.ID, Text: q.Text, Reason: domain.SkipValidationFailed, Issues: issues})
			a.log.Info("question rejected", zap.Int("index", i), zap.Strings("issues", issues))
			continue
		}
		report := a.checker.Check(quality.Candidate{Question: q, CountryName: existing.names[q.CountryID]})
		if !report.IsValid {
			result.AddSkipped(domain.SkippedQuestion{Index: i, ID: q.ID, Text: q.Text, Reason: domain.SkipValidationFailed, Issues: report.Issues})
			a.log.Info("question failed validation",
				zap.Int("index", i),
				zap.String("severity", string(report.Severity)),
				zap.Strings("issues", report.Issues))
			continue
		}
		if !existing.fingerprints.Add(quality.Fingerprint(q)) {
			result.AddSkipped(domain.SkippedQuestion{Index: i, ID: q.ID, Text: q.Text, Reason: domain.SkipDuplicate})
			a.log.Info("skipping duplicate question", zap.Int("index", i), zap.String("question_id", q.ID))
			continue
		}
		if q.ID != "" {
			if _, taken := existing.ids[q.ID]; taken {
				result.AddSkipped(domain.SkippedQuestion{Index: i, ID: q.ID, Text: q.Text, Reason: domain.SkipValidationFailed,
					Issues: []string{fmt.Sprintf("id %q is already in use", q.ID)}})
				a.log.Info("question id already in use", zap.Int("index", i), zap.String("question_id", q.ID))
				continue
			}
			existing.ids[q.ID] = struct{}{}
		}
		accepted = append(accepted, a.prepare(q))
	}

	if result.Deleted > 0 {
		a.invalidate(ctx, opts.CountryID)
	}
	if len(accepted) == 0 {
		return result, nil
	}
	inserted, err := a.store.InsertQuestions(ctx, accepted)
	if err != nil {
		return result, fmt.Errorf("insert questions: %w", err)
	}
	result.Inserted = inserted
	for _, id := range lo.Uniq(lo.Map(accepted, func(q domain.Question, _ int) string { return q.CountryID })) {
		a.invalidate(ctx, id)
	}
	a.log.Info("batch admitted",
		zap.Int("inserted", result.Inserted),
		zap.Int("skipped", result.Skipped),
		zap.Int("deleted", result.Deleted))
	return result, nil
}

// persisted is what a batch is checked against: stored fingerprints and ids
// for the batch's countries, plus which of those countries exist.
type persisted struct {
	fingerprints quality.FingerprintSet
	ids          map[string]struct{}
	names        map[string]string
	known        map[string]bool
}

// loadExisting fans out over the batch's countries, collecting persisted
// fingerprints, ids and display names.
func (a *Admission) loadExisting(ctx context.Context, countryIDs []string) (persisted, error) {
	var (
		mu   sync.Mutex
		rows []domain.Question
		p    = persisted{
			ids:   make(map[string]struct{}),
			names: make(map[string]string, len(countryIDs)),
			known: make(map[string]bool, len(countryIDs)),
		}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.parallelism)
	for _, id := range countryIDs {
		id := id
		g.Go(func() error {
			stored, err := a.store.ListByCountry(gctx, id)
			if err != nil {
				return fmt.Errorf("load questions for %s: %w", id, err)
			}
			name, known := a.lookupCountry(gctx, id)
			mu.Lock()
			rows = append(rows, stored...)
			p.names[id] = name
			p.known[id] = known
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return persisted{}, err
	}
	for _, q := range rows {
		p.ids[q.ID] = struct{}{}
	}
	p.fingerprints = quality.NewFingerprintSet(rows...)
	return p, nil
}

// rowIssues normalizes the difficulty in place and reports values the
// questions table would refuse.
func (a *Admission) rowIssues(q *domain.Question, existing persisted) []string {
	var issues []string
	difficulty, err := domain.ParseDifficulty(string(q.Difficulty))
	if err != nil {
		issues = append(issues, fmt.Sprintf("difficulty %q is not one of easy, medium, hard", q.Difficulty))
	} else {
		q.Difficulty = difficulty
	}
	if q.CountryID != "" && !existing.known[q.CountryID] {
		issues = append(issues, fmt.Sprintf("unknown country %q", q.CountryID))
	}
	return issues
}

func (a *Admission) countryName(ctx context.Context, id string) string {
	name, _ := a.lookupCountry(ctx, id)
	return name
}

// lookupCountry resolves a display name. Without a directory, or when the
// lookup itself fails, the country is assumed to exist.
func (a *Admission) lookupCountry(ctx context.Context, id string) (string, bool) {
	if a.countries == nil {
		return "", true
	}
	country, err := a.countries.GetCountry(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrCountryNotFound) {
			return "", false
		}
		a.log.Warn("country lookup failed", zap.String("country_id", id), zap.Error(err))
		return "", true
	}
	return country.Name, true
}

func (a *Admission) invalidate(ctx context.Context, countryID string) {
	for _, c := range a.caches {
		if err := c.Invalidate(ctx, countryID); err != nil {
			a.log.Warn("cache invalidation failed", zap.String("country_id", countryID), zap.Error(err))
		}
	}
}

func (a *Admission) prepare(q domain.Question) domain.Question {
	if q.ID == "" {
		q.ID = a.newID()
	}
	q.Category, _ = quality.NormalizeCategory(q.Category)
	return q
}
