package actionplan

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/praxis/internal/assessment"
	"github.com/abhisek/praxis/internal/llm"
	"github.com/abhisek/praxis/internal/questions"
	"github.com/abhisek/praxis/internal/scoring"
)

var physioSolo = assessment.Profile{
	PracticeName: "Harbour Physio",
	Discipline:   questions.DisciplinePhysiotherapy,
	PracticeSize: questions.PracticeSolo,
}

// testInput answers three questions: a critical SOP-relevant finding on revenue,
// a high non-SOP finding on fee reviews, and a low-priority utilisation finding.
func testInput() Input {
	responses := map[string]string{
		"fin-revenue-per-clinician": "5000",
		"fin-fee-review":            "never",
		"ops-utilisation":           "95",
	}
	return Input{
		AssessmentID: "a-1",
		Profile:      physioSolo,
		Responses:    responses,
		Report:       scoring.Score(questions.AllQuestions(), responses),
	}
}

const draftedSOP = `{"title":"Monthly fee and billing audit","steps":["Practice manager exports last month's invoices","Reception flags unbilled appointments","Practice manager compares revenue per clinician to target"]}`

func TestGenerate_DraftsSOPForCriticalFinding(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(draftedSOP)})
	g := NewGenerator(questions.Default(), mock, DefaultConfig(), nil)

	plan, err := g.Generate(t.Context(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.Items) != 2 {
		t.Fatalf("expected 2 items (low priority skipped), got %d", len(plan.Items))
	}
	first := plan.Items[0]
	if first.QuestionID != "fin-revenue-per-clinician" || first.Source != SourceLLM {
		t.Fatalf("first item = %s/%s, want drafted revenue SOP", first.QuestionID, first.Source)
	}
	if first.Title != "Monthly fee and billing audit" || len(first.Steps) != 3 {
		t.Errorf("drafted item = %+v", first)
	}
	if first.Priority != questions.PriorityCritical || first.Timeframe != "30 days" {
		t.Errorf("priority/timeframe = %s/%s", first.Priority, first.Timeframe)
	}

	second := plan.Items[1]
	if second.QuestionID != "fin-fee-review" || second.Source != SourceStatic {
		t.Fatalf("second item = %s/%s, want static fee review", second.QuestionID, second.Source)
	}
	if len(second.Steps) != 1 || second.Steps[0] != "Schedule an annual fee review tied to CPI" {
		t.Errorf("static steps = %v", second.Steps)
	}

	if plan.Drafted() != 1 || plan.Model != "mock" {
		t.Errorf("drafted = %d, model = %q", plan.Drafted(), plan.Model)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 LLM call, got %d", mock.CallCount())
	}
	req := mock.Calls()[0]
	if req.Schema == nil || req.Schema.Name != "sop-draft" {
		t.Error("expected schema name 'sop-draft'")
	}
	msg := req.Messages[0].Content
	for _, want := range []string{"Harbour Physio", "physiotherapy", "Answer: 5000", "billing, fee-review", "Review fee schedule"} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestGenerate_FallsBackWhenDraftFails(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")})
	g := NewGenerator(questions.Default(), mock, DefaultConfig(), nil)

	plan, err := g.Generate(t.Context(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := plan.Items[0]
	if first.Source != SourceStatic || len(first.Steps) != 2 {
		t.Fatalf("expected static fallback with 2 prompts, got %+v", first)
	}
	if plan.Drafted() != 0 {
		t.Errorf("drafted = %d, want 0", plan.Drafted())
	}
}

func TestGenerate_InvalidDraftFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"title":"x","steps":["only one"]}`)})
	g := NewGenerator(questions.Default(), mock, DefaultConfig(), nil)

	plan, err := g.Generate(t.Context(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Items[0].Source != SourceStatic {
		t.Fatalf("draft with too few steps was accepted: %+v", plan.Items[0])
	}
}

func TestGenerate_NoProvider(t *testing.T) {
	g := NewGenerator(questions.Default(), nil, DefaultConfig(), nil)
	g.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

	plan, err := g.Generate(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Model != "" || plan.Drafted() != 0 {
		t.Fatalf("static plan reports model %q, drafted %d", plan.Model, plan.Drafted())
	}
	if len(plan.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(plan.Items))
	}
	if !plan.GeneratedAt.Equal(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("generated at = %v", plan.GeneratedAt)
	}
}

func TestGenerate_NoFindings(t *testing.T) {
	g := NewGenerator(questions.Default(), nil, DefaultConfig(), nil)
	plan, err := g.Generate(t.Context(), Input{Profile: physioSolo})
	if err != nil {
		t.Fatal(err)
	}
	if plan.Items == nil || len(plan.Items) != 0 {
		t.Fatalf("items = %#v, want empty non-nil", plan.Items)
	}
}

func TestGenerate_UnknownQuestion(t *testing.T) {
	g := NewGenerator(questions.Default(), nil, DefaultConfig(), nil)
	in := Input{Profile: physioSolo, Report: scoring.Report{Findings: []scoring.Finding{{
		QuestionID:     "no-such-question",
		Interpretation: questions.Interpretation{Priority: questions.PriorityHigh},
	}}}}
	if _, err := g.Generate(t.Context(), in); err == nil {
		t.Fatal("expected error for unknown finding question")
	}
}

func TestGenerate_Cancelled(t *testing.T) {
	mock := &llm.MockProvider{Handler: func(llm.Request) llm.MockResponse {
		return llm.MockResponse{Err: context.Canceled}
	}}
	g := NewGenerator(questions.Default(), mock, DefaultConfig(), nil)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	if _, err := g.Generate(ctx, testInput()); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
