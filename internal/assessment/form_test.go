package assessment

import (
	"errors"
	"testing"
	"time"

	"github.com/abhisek/praxis/internal/questions"
	"github.com/abhisek/praxis/internal/scoring"
)

func yesNo(id string, c questions.Category, module string) questions.Question {
	return questions.Question{
		ID:                id,
		Text:              id + "?",
		Type:              questions.TypeYesNo,
		Category:          c,
		ModuleID:          module,
		UniversalQuestion: true,
		Weight:            1,
		Options: []questions.Option{
			{Value: "yes", Score: 5, Text: "Yes"},
			{Value: "no", Score: 1, Text: "No"},
		},
	}
}

func smallCatalog(t *testing.T) *questions.Catalog {
	t.Helper()
	podOnly := yesNo("fin-pod", questions.CategoryFinancial, "fin-2")
	podOnly.UniversalQuestion = false
	podOnly.ApplicableDisciplines = []questions.Discipline{questions.DisciplinePodiatry}

	notes := questions.Question{
		ID:                "ops-notes",
		Text:              "Anything else?",
		Type:              questions.TypeText,
		Category:          questions.CategoryOperations,
		ModuleID:          "ops-1",
		UniversalQuestion: true,
	}
	c, err := questions.New(
		questions.Set{Category: questions.CategoryFinancial, Questions: []questions.Question{
			yesNo("fin-a", questions.CategoryFinancial, "fin-1"),
			yesNo("fin-b", questions.CategoryFinancial, "fin-1"),
			podOnly,
		}},
		questions.Set{Category: questions.CategoryOperations, Questions: []questions.Question{
			yesNo("ops-a", questions.CategoryOperations, "ops-1"),
			notes,
		}},
	)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return c
}

var physioSolo = Profile{
	PracticeName: "Harbour Physio",
	Discipline:   questions.DisciplinePhysiotherapy,
	PracticeSize: questions.PracticeSolo,
}

func TestNewForm_StepsPerModule(t *testing.T) {
	f, err := NewForm(smallCatalog(t), physioSolo)
	if err != nil {
		t.Fatalf("NewForm: %v", err)
	}
	if f.Steps() != 2 {
		t.Fatalf("got %d steps, want 2 (fin-2 has no physiotherapy questions)", f.Steps())
	}
	if s := f.Current(); s.ModuleID != "fin-1" || len(s.Questions) != 2 {
		t.Errorf("first step = %s with %d questions", s.ModuleID, len(s.Questions))
	}

	pod := physioSolo
	pod.Discipline = questions.DisciplinePodiatry
	f, err = NewForm(smallCatalog(t), pod)
	if err != nil {
		t.Fatalf("NewForm: %v", err)
	}
	if f.Steps() != 3 {
		t.Errorf("podiatry: got %d steps, want 3", f.Steps())
	}
}

func TestNewForm_InvalidProfile(t *testing.T) {
	tests := []Profile{
		{PracticeName: "", Discipline: questions.DisciplinePodiatry, PracticeSize: questions.PracticeSolo},
		{PracticeName: "x", Discipline: "dentistry", PracticeSize: questions.PracticeSolo},
		{PracticeName: "x", Discipline: questions.DisciplinePodiatry, PracticeSize: "tiny"},
	}
	for _, p := range tests {
		if _, err := NewForm(smallCatalog(t), p); err == nil {
			t.Errorf("NewForm(%+v): expected error", p)
		}
	}
}

func TestForm_NextRefusesIncompleteStep(t *testing.T) {
	f, _ := NewForm(smallCatalog(t), physioSolo)
	if err := f.Answer("fin-a", "yes"); err != nil {
		t.Fatalf("Answer: %v", err)
	}

	moved, err := f.Next()
	if moved {
		t.Error("should not advance with unanswered questions")
	}
	if !errors.Is(err, ErrIncompleteStep) {
		t.Fatalf("got %v, want ErrIncompleteStep", err)
	}
	var inc *IncompleteError
	if !errors.As(err, &inc) || len(inc.Missing) != 1 || inc.Missing[0] != "fin-b" {
		t.Errorf("missing = %+v, want [fin-b]", inc)
	}

	if err := f.Answer("fin-b", "no"); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if moved, err := f.Next(); !moved || err != nil {
		t.Fatalf("Next = %v, %v", moved, err)
	}
	if f.Current().ModuleID != "ops-1" {
		t.Errorf("current = %s, want ops-1", f.Current().ModuleID)
	}
}

func TestForm_AnswerValidation(t *testing.T) {
	f, _ := NewForm(smallCatalog(t), physioSolo)
	if err := f.Answer("fin-a", "maybe"); !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("bad option: got %v, want ErrInvalidResponse", err)
	}
	if err := f.Answer("ops-a", "yes"); !errors.Is(err, ErrUnknownQuestion) {
		t.Errorf("other step: got %v, want ErrUnknownQuestion", err)
	}
	if err := f.Answer("fin-a", "  yes "); err != nil {
		t.Errorf("padded answer: %v", err)
	}
	if v, _ := f.Response("fin-a"); v != "yes" {
		t.Errorf("stored %q, want trimmed yes", v)
	}
}

func TestForm_BackKeepsAnswers(t *testing.T) {
	f, _ := NewForm(smallCatalog(t), physioSolo)
	if f.Back() {
		t.Error("Back on first step should report false")
	}
	_ = f.Answer("fin-a", "yes")
	_ = f.Answer("fin-b", "yes")
	f.Next()
	if !f.Back() {
		t.Fatal("Back from second step should succeed")
	}
	if v, ok := f.Response("fin-b"); !ok || v != "yes" {
		t.Errorf("answer lost after Back: %q, %v", v, ok)
	}
}

func TestForm_Progress(t *testing.T) {
	f, _ := NewForm(smallCatalog(t), physioSolo)
	_ = f.Answer("fin-a", "yes")
	p := f.Progress()
	if p.Step != 1 || p.Steps != 2 || p.Answered != 1 || p.Total != 4 {
		t.Errorf("progress = %+v", p)
	}
	if p.Percent() != 25 {
		t.Errorf("percent = %v, want 25", p.Percent())
	}
}

func TestForm_Complete(t *testing.T) {
	f, _ := NewForm(smallCatalog(t), physioSolo)
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return fixed }

	_ = f.Answer("fin-a", "yes")
	_ = f.Answer("fin-b", "no")
	if _, err := f.Complete(); !errors.Is(err, ErrNotFinished) {
		t.Errorf("Complete on first step: got %v, want ErrNotFinished", err)
	}
	f.Next()
	if _, err := f.Complete(); !errors.Is(err, ErrIncompleteStep) {
		t.Errorf("Complete with unanswered: got %v, want ErrIncompleteStep", err)
	}
	_ = f.Answer("ops-a", "yes")

	r, err := f.Complete()
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if r.ID == "" {
		t.Error("result needs an ID")
	}
	if !r.CompletedAt.Equal(fixed) {
		t.Errorf("completed at %v, want %v", r.CompletedAt, fixed)
	}
	if len(r.Responses) != 3 {
		t.Errorf("got %d responses, want 3 (optional text left blank)", len(r.Responses))
	}
	// fin: (100 + 20) / 2 = 60; ops: 100; overall (100+20+100)/3.
	fin, _ := r.Report.CategoryPercent(questions.CategoryFinancial)
	if fin != 60 {
		t.Errorf("financial = %v, want 60", fin)
	}
	if r.Report.Bucket != scoring.BucketEstablished {
		t.Errorf("bucket = %q, want established", r.Report.Bucket)
	}
}

func TestForm_OptionalTextCanBeCleared(t *testing.T) {
	f, _ := NewForm(smallCatalog(t), physioSolo)
	_ = f.Answer("fin-a", "yes")
	_ = f.Answer("fin-b", "yes")
	f.Next()
	if err := f.Answer("ops-notes", "parking is hard"); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if err := f.Answer("ops-notes", ""); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := f.Response("ops-notes"); ok {
		t.Error("cleared answer should be gone")
	}
}

func TestNewForm_DefaultCatalogAppliesOverrides(t *testing.T) {
	p := Profile{PracticeName: "Mind Matters", Discipline: questions.DisciplinePsychology, PracticeSize: questions.PracticeSolo}
	f, err := NewForm(questions.Default(), p)
	if err != nil {
		t.Fatalf("NewForm: %v", err)
	}
	for _, q := range f.Questions() {
		if !q.AppliesTo(questions.DisciplinePsychology) {
			t.Errorf("question %q does not apply to psychology", q.ID)
		}
		if !q.AppliesToSize(questions.PracticeSolo) {
			t.Errorf("question %q does not apply to solo practices", q.ID)
		}
		if q.ID == "pc-outcome-measures" && q.Weight != 2 {
			t.Errorf("psychology override not applied: weight %v", q.Weight)
		}
	}
}
