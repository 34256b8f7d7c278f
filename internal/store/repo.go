package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/praxis/internal/questions"
	"github.com/abhisek/praxis/internal/scoring"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// QueryOpts configures list queries with filtering and pagination.
type QueryOpts struct {
	Limit      int                  // max results (0 = unlimited)
	After      int64                // sequence > After
	Before     int64                // sequence < Before
	From       time.Time            // timestamp >= From
	To         time.Time            // timestamp <= To
	Discipline questions.Discipline // assessments only; "" = any
}

// Assessment is a stored, completed assessment.
type Assessment struct {
	ID             string
	Sequence       int64
	PracticeName   string
	Discipline     questions.Discipline
	PracticeSize   questions.PracticeSize
	CatalogVersion string
	Report         scoring.Report
	Responses      map[string]string
	StartedAt      time.Time
	CompletedAt    time.Time
}

// AssessmentRepo persists completed assessments.
type AssessmentRepo interface {
	// Save stores an assessment and its responses. Sequence is assigned on save.
	Save(ctx context.Context, a *Assessment) error

	// Get returns one assessment with its responses, or ErrNotFound.
	Get(ctx context.Context, id string) (*Assessment, error)

	// List returns assessments newest first, without responses.
	List(ctx context.Context, opts QueryOpts) ([]Assessment, error)

	// Latest returns the most recent assessment, or nil if none exist.
	Latest(ctx context.Context) (*Assessment, error)

	// Count returns the number of stored assessments.
	Count(ctx context.Context) (int, error)

	// Prune deletes all but the N most recent assessments.
	Prune(ctx context.Context, keep int) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}

// LLMUsageStats is the token usage of one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage is the token usage of one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}
