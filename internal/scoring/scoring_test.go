package scoring

import (
	"errors"
	"math"
	"testing"

	"github.com/abhisek/praxis/internal/questions"
)

func mustQuestion(t *testing.T, id string) questions.Question {
	t.Helper()
	q, err := questions.GetQuestion(id)
	if err != nil {
		t.Fatalf("GetQuestion(%q): %v", id, err)
	}
	return q
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestQuestionScore_Choice(t *testing.T) {
	q := mustQuestion(t, "ops-rebooking")
	tests := []struct {
		answer string
		want   float64
		ok     bool
	}{
		{"clinician", 5, true},
		{"reception", 3, true},
		{"patient-calls", 1, true},
		{"someone", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := QuestionScore(q, tt.answer)
		if ok != tt.ok || got != tt.want {
			t.Errorf("QuestionScore(%q) = %v, %v; want %v, %v", tt.answer, got, ok, tt.want, tt.ok)
		}
	}
}

func TestQuestionScore_NumericThresholds(t *testing.T) {
	q := mustQuestion(t, "ops-utilisation")
	tests := []struct {
		answer string
		want   float64
	}{
		{"55", 1},
		{"60", 2},
		{"72.5", 3},
		{"85%", 5},
		{"95", 4},
		{"-5", 1},
	}
	for _, tt := range tests {
		got, ok := QuestionScore(q, tt.answer)
		if !ok || got != tt.want {
			t.Errorf("QuestionScore(%q) = %v, %v; want %v", tt.answer, got, ok, tt.want)
		}
	}
}

func TestQuestionScore_Currency(t *testing.T) {
	q := mustQuestion(t, "fin-revenue-per-clinician")
	got, ok := QuestionScore(q, "$18,500")
	if !ok || got != 3 {
		t.Errorf("got %v, %v; want 3, true", got, ok)
	}
	for _, answer := range []string{"lots", "NaN", "Inf", "-Inf", "$+Inf"} {
		if _, ok := QuestionScore(q, answer); ok {
			t.Errorf("QuestionScore(%q) should be unscored", answer)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"$12,500.50", 12500.5, false},
		{" 85% ", 85, false},
		{"1e3", 1000, false},
		{"NaN", 0, true},
		{"nan%", 0, true},
		{"Inf", 0, true},
		{"+Inf", 0, true},
		{"-Infinity", 0, true},
		{"twelve", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseNumber(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseNumber(%q) = %v, %v; want %v, err %v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
	if _, err := ParseNumber("NaN"); !errors.Is(err, ErrNotFinite) {
		t.Errorf("NaN error = %v, want ErrNotFinite", err)
	}
}

func TestQuestionScore_Unscored(t *testing.T) {
	if _, ok := QuestionScore(mustQuestion(t, "pc-biggest-complaint"), "parking"); ok {
		t.Error("text question should be unscored")
	}
	if _, ok := QuestionScore(mustQuestion(t, "ops-home-visits"), "40"); ok {
		t.Error("numeric question without options should be unscored")
	}
}

func TestPercent(t *testing.T) {
	q := mustQuestion(t, "ops-documented-procedures")
	got, ok := Percent(q, "3")
	if !ok || !approx(got, 60) {
		t.Errorf("Percent = %v, %v; want 60", got, ok)
	}
}

func TestInterpret(t *testing.T) {
	q := mustQuestion(t, "fin-revenue-per-clinician")
	tests := []struct {
		score    float64
		priority questions.Priority
		ok       bool
	}{
		{1, questions.PriorityCritical, true},
		{2, questions.PriorityCritical, true},
		{3, questions.PriorityMedium, true},
		{5, questions.PriorityLow, true},
		{2.5, "", false},
		{7, "", false},
	}
	for _, tt := range tests {
		got, ok := Interpret(q, tt.score)
		if ok != tt.ok || got.Priority != tt.priority {
			t.Errorf("Interpret(%v) = %q, %v; want %q, %v", tt.score, got.Priority, ok, tt.priority, tt.ok)
		}
	}
}

func TestInterpret_OverlappingKeysPickLowestBand(t *testing.T) {
	q := questions.Question{ScoreInterpretation: map[string]questions.Interpretation{
		"2-4": {Interpretation: "wide"},
		"1-3": {Interpretation: "low"},
		"bad": {Interpretation: "ignored"},
	}}
	got, ok := Interpret(q, 3)
	if !ok || got.Interpretation != "low" {
		t.Errorf("got %q, %v; want low", got.Interpretation, ok)
	}
}

func TestBucketFor(t *testing.T) {
	tests := []struct {
		pct  float64
		want Bucket
	}{
		{0, BucketCritical},
		{39.9, BucketCritical},
		{40, BucketDeveloping},
		{59.99, BucketDeveloping},
		{60, BucketEstablished},
		{80, BucketLeading},
		{100, BucketLeading},
	}
	for _, tt := range tests {
		if got := BucketFor(tt.pct); got != tt.want {
			t.Errorf("BucketFor(%v) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestScore_WeightedMeans(t *testing.T) {
	// Weights: utilisation 1.5, rebooking 1, fee review 1. All max out at 5.
	util := mustQuestion(t, "ops-utilisation")
	rebook := mustQuestion(t, "ops-rebooking")
	fee := mustQuestion(t, "fin-fee-review")
	text := mustQuestion(t, "pc-biggest-complaint")

	r := Score(
		[]questions.Question{fee, util, rebook, text},
		map[string]string{
			"ops-utilisation":      "85",
			"ops-rebooking":        "reception",
			"fin-fee-review":       "never",
			"pc-biggest-complaint": "parking",
			"unknown":              "x",
		},
	)

	ops, ok := r.CategoryPercent(questions.CategoryOperations)
	if !ok || !approx(ops, (100*1.5+60*1)/2.5) {
		t.Errorf("operations = %v, %v; want 84", ops, ok)
	}
	fin, _ := r.CategoryPercent(questions.CategoryFinancial)
	if !approx(fin, 20) {
		t.Errorf("financial = %v, want 20", fin)
	}
	if want := (100*1.5 + 60 + 20) / 3.5; !approx(r.Overall, want) {
		t.Errorf("overall = %v, want %v", r.Overall, want)
	}
	if r.Bucket != BucketEstablished {
		t.Errorf("bucket = %q, want established", r.Bucket)
	}

	if len(r.Categories) != 3 {
		t.Fatalf("got %d categories, want 3", len(r.Categories))
	}
	if r.Categories[0].Category != questions.CategoryFinancial || r.Categories[2].Category != questions.CategoryPatientCare {
		t.Errorf("categories out of catalog order: %+v", r.Categories)
	}
	if pc := r.Categories[2]; pc.Answered != 1 || pc.Scored != 0 {
		t.Errorf("patient care answered/scored = %d/%d, want 1/0", pc.Answered, pc.Scored)
	}
	if _, ok := r.CategoryPercent(questions.CategoryPatientCare); ok {
		t.Error("unscored category should report no percent")
	}
}

func TestScore_FindingsSortedByPriority(t *testing.T) {
	util := mustQuestion(t, "ops-utilisation")
	fee := mustQuestion(t, "fin-fee-review")
	r := Score([]questions.Question{fee, util}, map[string]string{
		"fin-fee-review":  "ad-hoc",
		"ops-utilisation": "50",
	})
	if len(r.Findings) != 2 {
		t.Fatalf("got %d findings, want 2", len(r.Findings))
	}
	if r.Findings[0].QuestionID != "ops-utilisation" {
		t.Errorf("critical finding should come first, got %q", r.Findings[0].QuestionID)
	}
}

func TestScore_Empty(t *testing.T) {
	r := Score(nil, nil)
	if r.Overall != 0 || r.Bucket != BucketCritical {
		t.Errorf("empty report = %v %q", r.Overall, r.Bucket)
	}
	if r.Findings == nil || r.Categories == nil {
		t.Error("empty report should carry empty, non-nil slices")
	}
}
