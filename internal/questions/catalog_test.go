package questions

import (
	"reflect"
	"testing"
)

func TestAllQuestions_Count(t *testing.T) {
	all := AllQuestions()
	if len(all) != 42 {
		t.Errorf("got %d questions, want 42", len(all))
	}
}

func TestByCategory(t *testing.T) {
	tests := []struct {
		category Category
		want     int
	}{
		{CategoryFinancial, 5},
		{CategoryOperations, 5},
		{CategoryPatientCare, 5},
		{CategoryTechnology, 4},
		{CategoryCompliance, 4},
		{CategoryFacilities, 4},
		{CategoryMarketing, 4},
		{CategoryGeography, 3},
		{CategoryStaffing, 4},
		{CategoryAutomation, 4},
	}
	total := 0
	for _, tt := range tests {
		qs := ByCategory(tt.category)
		if len(qs) != tt.want {
			t.Errorf("ByCategory(%q): got %d questions, want %d", tt.category, len(qs), tt.want)
		}
		for _, q := range qs {
			if q.Category != tt.category {
				t.Errorf("ByCategory(%q) returned %q with category %q", tt.category, q.ID, q.Category)
			}
		}
		total += len(qs)
	}
	if total != len(AllQuestions()) {
		t.Errorf("category sizes sum to %d, catalog has %d", total, len(AllQuestions()))
	}
}

func TestAllQuestions_CategoryOrder(t *testing.T) {
	rank := make(map[Category]int)
	for i, c := range AllCategories() {
		rank[c] = i
	}
	all := AllQuestions()
	for i := 1; i < len(all); i++ {
		if rank[all[i].Category] < rank[all[i-1].Category] {
			t.Errorf("question %q (%s) appears after %q (%s)",
				all[i].ID, all[i].Category, all[i-1].ID, all[i-1].Category)
		}
	}
	if all[0].ID != "fin-revenue-per-clinician" {
		t.Errorf("first question: got %q, want fin-revenue-per-clinician", all[0].ID)
	}
}

func TestByCategory_IsOrderedSubsetOfCatalog(t *testing.T) {
	all := AllQuestions()
	for _, c := range AllCategories() {
		var want []string
		for _, q := range all {
			if q.Category == c {
				want = append(want, q.ID)
			}
		}
		got := ids(ByCategory(c))
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ByCategory(%q): got %v, want %v", c, got, want)
		}
	}
}

func TestByDiscipline_MatchesApplicabilityRule(t *testing.T) {
	all := AllQuestions()
	for _, d := range AllDisciplines() {
		var want []string
		for _, q := range all {
			if q.UniversalQuestion || containsDiscipline(q.ApplicableDisciplines, d) {
				want = append(want, q.ID)
			}
		}
		got := ids(ByDiscipline(d))
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ByDiscipline(%q): got %v, want %v", d, got, want)
		}
	}
}

func TestByDiscipline_SpecificQuestions(t *testing.T) {
	physio := ids(ByDiscipline(DisciplinePhysiotherapy))
	if !containsID(physio, "fac-gym-space") {
		t.Error("physiotherapy should see fac-gym-space")
	}
	psych := ids(ByDiscipline(DisciplinePsychology))
	if containsID(psych, "fac-gym-space") {
		t.Error("psychology should not see fac-gym-space")
	}
	massage := ids(ByDiscipline(DisciplineMassageTherapy))
	for _, q := range ByDiscipline(DisciplineMassageTherapy) {
		if !q.UniversalQuestion {
			t.Errorf("massage therapy got non-universal question %q", q.ID)
		}
	}
	if len(massage) >= len(physio) {
		t.Errorf("massage therapy (%d) should see fewer questions than physiotherapy (%d)", len(massage), len(physio))
	}
}

func TestByModule(t *testing.T) {
	got := ids(ByModule("fin-revenue"))
	want := []string{"fin-revenue-per-clinician", "fin-fee-review"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ByModule(fin-revenue): got %v, want %v", got, want)
	}
	if qs := ByModule("fin"); len(qs) != 0 {
		t.Errorf("ByModule must match exactly, got %d questions for prefix", len(qs))
	}
}

func TestByType(t *testing.T) {
	for _, typ := range AllTypes() {
		for _, q := range ByType(typ) {
			if q.Type != typ {
				t.Errorf("ByType(%q) returned %q of type %q", typ, q.ID, q.Type)
			}
		}
	}
	if got := ids(ByType(TypeText)); !reflect.DeepEqual(got, []string{"pc-biggest-complaint"}) {
		t.Errorf("ByType(text): got %v", got)
	}
	if got := ids(ByType(TypeCurrency)); !reflect.DeepEqual(got, []string{"fin-revenue-per-clinician"}) {
		t.Errorf("ByType(currency): got %v", got)
	}
}

func TestQueries_NoMatchIsEmptyNotNil(t *testing.T) {
	cases := map[string][]Question{
		"ByModule":   ByModule("no-such-module"),
		"ByCategory": ByCategory(Category("no-such-category")),
		"ByType":     ByType(QuestionType("no-such-type")),
	}
	for name, qs := range cases {
		if qs == nil {
			t.Errorf("%s: got nil slice, want empty slice", name)
		}
		if len(qs) != 0 {
			t.Errorf("%s: got %d questions, want 0", name, len(qs))
		}
	}
}

func TestQueries_Idempotent(t *testing.T) {
	first := ByDiscipline(DisciplinePodiatry)
	first[0].Text = "mutated"
	first[0].Options = nil
	second := ByDiscipline(DisciplinePodiatry)
	if second[0].Text == "mutated" {
		t.Error("mutating a query result leaked into the catalog")
	}
	third := ByDiscipline(DisciplinePodiatry)
	if !reflect.DeepEqual(second, third) {
		t.Error("repeated queries returned different results")
	}
}

func TestQueries_NestedFieldsNotShared(t *testing.T) {
	before, err := GetQuestion("fin-revenue-per-clinician")
	if err != nil {
		t.Fatal(err)
	}
	before = before.clone()

	q, _ := GetQuestion("fin-revenue-per-clinician")
	in := q.ScoreInterpretation["3"]
	in.Interpretation = "changed"
	q.ScoreInterpretation["3"] = in
	q.ScoreInterpretation["1-2"].ActionPrompts[0] = "changed"
	delete(q.ScoreInterpretation, "4-5")
	q.SOPRelevance.Relevant = false
	q.SOPRelevance.SOPTypes[0] = "changed"
	q.SOPRelevance.RAGParameters["topic"] = "changed"

	after, _ := GetQuestion("fin-revenue-per-clinician")
	if !reflect.DeepEqual(before, after) {
		t.Errorf("catalog changed through a returned question:\n got %+v\nwant %+v", after, before)
	}

	pc := ByCategory(CategoryPatientCare)[0]
	if pc.ID != "pc-outcome-measures" {
		t.Fatalf("first patient care question = %q", pc.ID)
	}
	ov := pc.DisciplineSpecific[DisciplinePsychology]
	*ov.Weight = 99
	ov.HelpText = "changed"
	pc.DisciplineSpecific[DisciplinePsychology] = ov
	delete(pc.DisciplineSpecific, DisciplinePhysiotherapy)

	fresh, _ := GetQuestion("pc-outcome-measures")
	if got := fresh.ForDiscipline(DisciplinePsychology).Weight; got != 2 {
		t.Errorf("psychology weight = %v, want 2", got)
	}
	if _, ok := fresh.DisciplineSpecific[DisciplinePhysiotherapy]; !ok {
		t.Error("physiotherapy override was deleted from the catalog")
	}
}

func TestNew_CopiesSets(t *testing.T) {
	w := 3.0
	q := Question{
		ID:                    "fin-q",
		Text:                  "Revenue?",
		Type:                  TypeYesNo,
		Category:              CategoryFinancial,
		ModuleID:              "fin-1",
		ApplicableDisciplines: []Discipline{DisciplinePodiatry},
		Weight:                1,
		Options:               []Option{{Value: "yes", Score: 2, Text: "Yes"}, {Value: "no", Score: 0, Text: "No"}},
		ScoreInterpretation: map[string]Interpretation{
			"0": {Interpretation: "No tracking.", ActionPrompts: []string{"Start tracking"}},
		},
		SOPRelevance:       &SOPRelevance{Relevant: true, SOPTypes: []string{"billing"}},
		DisciplineSpecific: map[Discipline]DisciplineOverride{DisciplinePodiatry: {Weight: &w}},
	}
	set := Set{Category: CategoryFinancial, Questions: []Question{q}}
	c, err := New(set)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	set.Questions[0].Text = "changed"
	q.ScoreInterpretation["0"].ActionPrompts[0] = "changed"
	q.ScoreInterpretation["5"] = Interpretation{Interpretation: "added"}
	q.SOPRelevance.SOPTypes[0] = "changed"
	w = 7

	got, err := c.GetQuestion("fin-q")
	if err != nil {
		t.Fatal(err)
	}
	if got.Text != "Revenue?" || len(got.ScoreInterpretation) != 1 ||
		got.ScoreInterpretation["0"].ActionPrompts[0] != "Start tracking" ||
		got.SOPRelevance.SOPTypes[0] != "billing" ||
		*got.DisciplineSpecific[DisciplinePodiatry].Weight != 3 {
		t.Errorf("editing the input set changed the catalog: %+v", got)
	}
}

func TestGetQuestion(t *testing.T) {
	q, err := GetQuestion("ops-utilisation")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Category != CategoryOperations {
		t.Errorf("got category %q, want operations", q.Category)
	}
	if q.Weight != 1.5 {
		t.Errorf("got weight %v, want 1.5", q.Weight)
	}
	if _, err := GetQuestion("nonexistent"); err == nil {
		t.Fatal("expected error for nonexistent question, got nil")
	}
}

func TestModules(t *testing.T) {
	mods := Modules()
	if len(mods) != 16 {
		t.Errorf("got %d modules, want 16: %v", len(mods), mods)
	}
	if mods[0] != "fin-revenue" || mods[len(mods)-1] != "auto-admin" {
		t.Errorf("unexpected module order: %v", mods)
	}
	seen := map[string]bool{}
	for _, m := range mods {
		if seen[m] {
			t.Errorf("module %q listed twice", m)
		}
		seen[m] = true
	}
}

func TestFirstInModule(t *testing.T) {
	q, ok := Default().FirstInModule("ops-workflow")
	if !ok {
		t.Fatal("expected ops-workflow to have questions")
	}
	if q.ID != "ops-rebooking" {
		t.Errorf("got %q, want ops-rebooking", q.ID)
	}
	if _, ok := Default().FirstInModule("missing"); ok {
		t.Error("expected no question for unknown module")
	}
}

func TestFilter(t *testing.T) {
	got := ids(Default().Filter(Query{
		Category:     CategoryFinancial,
		Discipline:   DisciplinePsychology,
		PracticeSize: PracticeSolo,
	}))
	want := []string{"fin-revenue-per-clinician", "fin-fee-review", "fin-overheads-ratio"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if n := len(Default().Filter(Query{})); n != Default().Len() {
		t.Errorf("empty query: got %d, want %d", n, Default().Len())
	}
}

func TestVersion(t *testing.T) {
	if Version() != "v1.4.0" {
		t.Errorf("got version %q, want v1.4.0", Version())
	}
}

func TestNew_TwoQuestionScenario(t *testing.T) {
	fin := Question{
		ID:                    "fin-q",
		Text:                  "Revenue?",
		Type:                  TypeNumber,
		Category:              CategoryFinancial,
		ModuleID:              "fin-1",
		ApplicableDisciplines: []Discipline{DisciplinePhysiotherapy},
		Weight:                1,
	}
	ops := Question{
		ID:                "ops-q",
		Text:              "Scheduling?",
		Type:              TypeNumber,
		Category:          CategoryOperations,
		ModuleID:          "ops-1",
		UniversalQuestion: true,
		Weight:            1,
	}
	c, err := New(
		Set{Category: CategoryFinancial, Questions: []Question{fin}},
		Set{Category: CategoryOperations, Questions: []Question{ops}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := ids(c.ByDiscipline(DisciplinePhysiotherapy)); !reflect.DeepEqual(got, []string{"fin-q", "ops-q"}) {
		t.Errorf("physiotherapy: got %v", got)
	}
	if got := ids(c.ByDiscipline(DisciplinePodiatry)); !reflect.DeepEqual(got, []string{"ops-q"}) {
		t.Errorf("podiatry: got %v", got)
	}
	if got := ids(c.ByCategory(CategoryOperations)); !reflect.DeepEqual(got, []string{"ops-q"}) {
		t.Errorf("operations: got %v", got)
	}
	if c.Version() != "" {
		t.Errorf("catalog built without manifest should have no version, got %q", c.Version())
	}
}

func TestForDiscipline(t *testing.T) {
	q, err := GetQuestion("pc-outcome-measures")
	if err != nil {
		t.Fatal(err)
	}
	psych := q.ForDiscipline(DisciplinePsychology)
	if psych.Weight != 2 {
		t.Errorf("psychology weight: got %v, want 2", psych.Weight)
	}
	if psych.HelpText != "e.g. K10, DASS-21, PHQ-9." {
		t.Errorf("psychology help text: got %q", psych.HelpText)
	}
	if q.Weight != 1.5 {
		t.Errorf("override mutated original weight: %v", q.Weight)
	}

	podiatry := q.ForDiscipline(DisciplinePodiatry)
	if !reflect.DeepEqual(podiatry, q) {
		t.Error("discipline without override should get an identical copy")
	}
}

func TestAppliesToSize(t *testing.T) {
	q, err := GetQuestion("staff-turnover")
	if err != nil {
		t.Fatal(err)
	}
	if q.AppliesToSize(PracticeSolo) {
		t.Error("staff-turnover should not apply to solo practices")
	}
	if !q.AppliesToSize(PracticeLarge) {
		t.Error("staff-turnover should apply to large practices")
	}
}

func TestEnums_Valid(t *testing.T) {
	if !DisciplinePodiatry.Valid() || Discipline("dentistry").Valid() {
		t.Error("Discipline.Valid mismatch")
	}
	if !TypeYesNo.IsChoice() || TypeCurrency.IsChoice() {
		t.Error("IsChoice mismatch")
	}
	if !TypePercentage.IsNumeric() || TypeText.IsNumeric() {
		t.Error("IsNumeric mismatch")
	}
	if PriorityCritical.Rank() <= PriorityHigh.Rank() || Priority("").Rank() != 0 {
		t.Error("Priority.Rank ordering mismatch")
	}
}

func ids(qs []Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func containsID(list []string, id string) bool {
	for _, s := range list {
		if s == id {
			return true
		}
	}
	return false
}

func containsDiscipline(list []Discipline, d Discipline) bool {
	for _, x := range list {
		if x == d {
			return true
		}
	}
	return false
}

func TestDisplayNames(t *testing.T) {
	if got := DisciplineOccupationalTherapy.DisplayName(); got != "Occupational Therapy" {
		t.Errorf("discipline display name = %q", got)
	}
	if got := PracticeMedium.DisplayName(); got != "Medium (6-15 clinicians)" {
		t.Errorf("size display name = %q", got)
	}
	for _, d := range AllDisciplines() {
		if d.DisplayName() == "" {
			t.Errorf("%s has no display name", d)
		}
	}
}
