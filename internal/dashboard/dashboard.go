// Package dashboard summarises stored assessments into the widgets shown on
// the practice dashboard.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/abhisek/praxis/internal/questions"
	"github.com/abhisek/praxis/internal/scoring"
	"github.com/abhisek/praxis/internal/store"
)

const summaryKey = "dashboard:summary"

// historyWindow is how many recent assessments are searched for a comparable previous one.
const historyWindow = 20

// Snapshot identifies one assessment and its headline score.
type Snapshot struct {
	ID             string               `json:"id"`
	PracticeName   string               `json:"practiceName"`
	Discipline     questions.Discipline `json:"discipline"`
	CatalogVersion string               `json:"catalogVersion"`
	CompletedAt    time.Time            `json:"completedAt"`
	Overall        float64              `json:"overall"`
	Bucket         scoring.Bucket       `json:"bucket"`
}

// CategoryTrend is the change in one category between two assessments.
type CategoryTrend struct {
	Category questions.Category `json:"category"`
	Delta    float64            `json:"delta"`
}

// Trend compares the latest assessment with the previous comparable one.
type Trend struct {
	Previous   Snapshot        `json:"previous"`
	Delta      float64         `json:"delta"`
	Categories []CategoryTrend `json:"categories"`
}

// Priority is a high-urgency finding from the latest assessment.
type Priority struct {
	QuestionID     string             `json:"questionId"`
	Question       string             `json:"question"`
	Category       questions.Category `json:"category"`
	Priority       questions.Priority `json:"priority"`
	Interpretation string             `json:"interpretation"`
	Timeframe      string             `json:"timeframe,omitempty"`
}

// Summary holds every dashboard widget. Latest is nil until an assessment is saved.
type Summary struct {
	Completed   int                     `json:"completed"`
	Latest      *Snapshot               `json:"latest,omitempty"`
	Categories  []scoring.CategoryScore `json:"categories"`
	Trend       *Trend                  `json:"trend,omitempty"`
	Priorities  []Priority              `json:"priorities"`
	GeneratedAt time.Time               `json:"generatedAt"`
}

// Options tunes a Service.
type Options struct {
	Cache         Cache
	TTL           time.Duration
	MaxPriorities int
	Logger        *slog.Logger
}

// Service builds dashboard summaries. It is safe for concurrent use.
type Service struct {
	repo    store.AssessmentRepo
	catalog *questions.Catalog
	cache   Cache
	ttl     time.Duration
	maxPri  int
	log     *slog.Logger
	now     func() time.Time
}

// NewService returns a Service over repo. Zero Options fields get defaults:
// no cache, a five minute TTL and five priorities.
func NewService(repo store.AssessmentRepo, c *questions.Catalog, opts Options) *Service {
	s := &Service{
		repo:    repo,
		catalog: c,
		cache:   opts.Cache,
		ttl:     opts.TTL,
		maxPri:  opts.MaxPriorities,
		log:     opts.Logger,
		now:     time.Now,
	}
	if s.cache == nil {
		s.cache = NopCache{}
	}
	if s.ttl <= 0 {
		s.ttl = 5 * time.Minute
	}
	if s.maxPri <= 0 {
		s.maxPri = 5
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	return s
}

// Summary returns the dashboard, from cache when fresh. Cache failures are
// logged and the summary is rebuilt from the store.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	var cached Summary
	hit, err := s.cache.Get(ctx, summaryKey, &cached)
	if err != nil {
		s.log.Warn("dashboard cache read", "error", err)
	}
	if hit {
		return &cached, nil
	}

	sum, err := s.build(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, summaryKey, sum, s.ttl); err != nil {
		s.log.Warn("dashboard cache write", "error", err)
	}
	return sum, nil
}

// Record saves a completed assessment and drops the cached summary.
func (s *Service) Record(ctx context.Context, a *store.Assessment) error {
	if err := s.repo.Save(ctx, a); err != nil {
		return err
	}
	s.Invalidate(ctx)
	return nil
}

// Invalidate drops the cached summary.
func (s *Service) Invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, summaryKey); err != nil {
		s.log.Warn("dashboard cache invalidate", "error", err)
	}
}

func (s *Service) build(ctx context.Context) (*Summary, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	sum := &Summary{
		Completed:   n,
		Categories:  make([]scoring.CategoryScore, 0),
		Priorities:  make([]Priority, 0),
		GeneratedAt: s.now(),
	}
	if n == 0 {
		return sum, nil
	}

	recent, err := s.repo.List(ctx, store.QueryOpts{Limit: historyWindow})
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	if len(recent) == 0 {
		return sum, nil
	}

	latest := recent[0]
	snap := snapshot(latest)
	sum.Latest = &snap
	sum.Categories = append(sum.Categories, latest.Report.Categories...)
	sum.Priorities = s.priorities(latest.Report)

	for _, prev := range recent[1:] {
		if comparable(latest, prev) {
			sum.Trend = trend(latest, prev)
			break
		}
	}
	return sum, nil
}

// comparable reports whether b is an earlier assessment of the same practice:
// same discipline, same practice name (ignoring case and surrounding space)
// and a catalog with the same major version.
func comparable(a, b store.Assessment) bool {
	return a.Discipline == b.Discipline &&
		strings.EqualFold(strings.TrimSpace(a.PracticeName), strings.TrimSpace(b.PracticeName)) &&
		semver.Major(a.CatalogVersion) != "" &&
		semver.Major(a.CatalogVersion) == semver.Major(b.CatalogVersion)
}

func snapshot(a store.Assessment) Snapshot {
	return Snapshot{
		ID:             a.ID,
		PracticeName:   a.PracticeName,
		Discipline:     a.Discipline,
		CatalogVersion: a.CatalogVersion,
		CompletedAt:    a.CompletedAt,
		Overall:        a.Report.Overall,
		Bucket:         a.Report.Bucket,
	}
}

// trend lists category deltas for categories scored in both assessments, in catalog order.
func trend(latest, prev store.Assessment) *Trend {
	t := &Trend{
		Previous:   snapshot(prev),
		Delta:      latest.Report.Overall - prev.Report.Overall,
		Categories: make([]CategoryTrend, 0),
	}
	for _, c := range questions.AllCategories() {
		now, ok1 := latest.Report.CategoryPercent(c)
		then, ok2 := prev.Report.CategoryPercent(c)
		if ok1 && ok2 {
			t.Categories = append(t.Categories, CategoryTrend{Category: c, Delta: now - then})
		}
	}
	return t
}

// priorities returns the high and critical findings, already in report order.
func (s *Service) priorities(r scoring.Report) []Priority {
	out := make([]Priority, 0, s.maxPri)
	for _, f := range r.Findings {
		if len(out) == s.maxPri {
			break
		}
		if f.Interpretation.Priority.Rank() < questions.PriorityHigh.Rank() {
			continue
		}
		text := f.QuestionID
		if q, err := s.catalog.GetQuestion(f.QuestionID); err == nil {
			text = q.Text
		}
		out = append(out, Priority{
			QuestionID:     f.QuestionID,
			Question:       text,
			Category:       f.Category,
			Priority:       f.Interpretation.Priority,
			Interpretation: f.Interpretation.Interpretation,
			Timeframe:      f.Interpretation.Timeframe,
		})
	}
	return out
}
