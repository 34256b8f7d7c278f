package actionplan

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/abhisek/praxis/internal/assessment"
	"github.com/abhisek/praxis/internal/llm"
	"github.com/abhisek/praxis/internal/questions"
	"github.com/abhisek/praxis/internal/scoring"
)

// Input is a completed assessment to plan for.
type Input struct {
	AssessmentID string
	Profile      assessment.Profile
	Responses    map[string]string
	Report       scoring.Report
}

// Generator builds action plans. It is safe for concurrent use.
type Generator struct {
	catalog  *questions.Catalog
	provider llm.Provider
	cfg      Config
	log      *slog.Logger
	now      func() time.Time
}

// NewGenerator returns a Generator. A nil provider yields static plans only.
func NewGenerator(c *questions.Catalog, provider llm.Provider, cfg Config, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.Default()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Generator{catalog: c, provider: provider, cfg: cfg, log: log, now: time.Now}
}

// Generate plans one item per finding of medium priority or above. SOP-relevant
// findings of high or critical priority get LLM-drafted steps; a failed draft
// falls back to the finding's static action prompts. Items keep the report's
// finding order.
func (g *Generator) Generate(ctx context.Context, in Input) (*Plan, error) {
	plan := &Plan{AssessmentID: in.AssessmentID, GeneratedAt: g.now(), Items: make([]Item, 0)}
	if g.provider != nil {
		plan.Model = g.provider.ModelID()
	}

	type job struct {
		idx    int
		q      questions.Question
		answer string
		interp questions.Interpretation
	}
	var jobs []job

	for _, f := range in.Report.Findings {
		it := f.Interpretation
		if it.Priority.Rank() < questions.PriorityMedium.Rank() {
			continue
		}
		q, err := g.catalog.GetQuestion(f.QuestionID)
		if err != nil {
			return nil, fmt.Errorf("finding %s: %w", f.QuestionID, err)
		}
		q = q.ForDiscipline(in.Profile.Discipline)

		item := staticItem(q, it)
		if g.provider != nil && draftable(q, it) {
			jobs = append(jobs, job{idx: len(plan.Items), q: q, answer: in.Responses[q.ID], interp: it})
		} else if len(item.Steps) == 0 {
			continue
		}
		plan.Items = append(plan.Items, item)
	}

	if len(jobs) == 0 {
		return plan, nil
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeSOP)
	sem := make(chan struct{}, g.cfg.Workers)
	var wg sync.WaitGroup
	for _, j := range jobs {
		wg.Go(func() {
			sem <- struct{}{}
			defer func() { <-sem }()

			out, err := g.draft(ctx, in.Profile, j.q, j.answer, j.interp)
			if err != nil {
				g.log.Warn("sop draft failed, using static actions", "question", j.q.ID, "error", err)
				return
			}
			// Each job owns a distinct index.
			item := &plan.Items[j.idx]
			item.Title = out.Title
			item.Steps = out.Steps
			item.Source = SourceLLM
		})
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Drop SOP-only items whose draft failed and had nothing static to fall back on.
	plan.Items = slices.DeleteFunc(plan.Items, func(it Item) bool { return len(it.Steps) == 0 })
	return plan, nil
}

func draftable(q questions.Question, it questions.Interpretation) bool {
	return q.SOPRelevance != nil && q.SOPRelevance.Relevant &&
		it.Priority.Rank() >= questions.PriorityHigh.Rank()
}

func staticItem(q questions.Question, it questions.Interpretation) Item {
	var sopTypes []string
	if q.SOPRelevance != nil {
		sopTypes = slices.Clone(q.SOPRelevance.SOPTypes)
	}
	return Item{
		QuestionID:     q.ID,
		Category:       q.Category,
		Priority:       it.Priority,
		Timeframe:      it.Timeframe,
		Interpretation: it.Interpretation,
		SOPTypes:       sopTypes,
		Title:          q.Text,
		Steps:          slices.Clone(it.ActionPrompts),
		Source:         SourceStatic,
	}
}

func (g *Generator) draft(ctx context.Context, p assessment.Profile, q questions.Question, answer string, it questions.Interpretation) (*sopOutput, error) {
	req := llm.Request{
		System: sopSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildSOPUserMessage(p, q, answer, it)},
		},
		Schema:      SOPSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}
	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("draft sop for %s: %w", q.ID, err)
	}
	var out sopOutput
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
