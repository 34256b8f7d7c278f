package questions

import (
	"slices"
	"strings"
)

// Category is an assessment category. Declaration order is catalog order.
type Category string

const (
	CategoryFinancial   Category = "financial"
	CategoryOperations  Category = "operations"
	CategoryPatientCare Category = "patient-care"
	CategoryTechnology  Category = "technology"
	CategoryCompliance  Category = "compliance"
	CategoryFacilities  Category = "facilities"
	CategoryMarketing   Category = "marketing"
	CategoryGeography   Category = "geography"
	CategoryStaffing    Category = "staffing"
	CategoryAutomation  Category = "automation"
)

// AllCategories returns all categories in catalog order.
func AllCategories() []Category {
	return []Category{
		CategoryFinancial,
		CategoryOperations,
		CategoryPatientCare,
		CategoryTechnology,
		CategoryCompliance,
		CategoryFacilities,
		CategoryMarketing,
		CategoryGeography,
		CategoryStaffing,
		CategoryAutomation,
	}
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	return slices.Contains(AllCategories(), c)
}

// DisplayName returns a human-readable name for a category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryFinancial:
		return "Financial Health"
	case CategoryOperations:
		return "Operations"
	case CategoryPatientCare:
		return "Patient Care"
	case CategoryTechnology:
		return "Technology"
	case CategoryCompliance:
		return "Compliance & Risk"
	case CategoryFacilities:
		return "Facilities"
	case CategoryMarketing:
		return "Marketing & Growth"
	case CategoryGeography:
		return "Location & Catchment"
	case CategoryStaffing:
		return "Staffing"
	case CategoryAutomation:
		return "Automation"
	default:
		return string(c)
	}
}

// QuestionType is the kind of answer a question expects.
type QuestionType string

const (
	TypeNumber         QuestionType = "number"
	TypeMultipleChoice QuestionType = "multiple-choice"
	TypeScale          QuestionType = "scale"
	TypeYesNo          QuestionType = "yes-no"
	TypeText           QuestionType = "text"
	TypePercentage     QuestionType = "percentage"
	TypeCurrency       QuestionType = "currency"
)

// AllTypes returns all question types.
func AllTypes() []QuestionType {
	return []QuestionType{
		TypeNumber,
		TypeMultipleChoice,
		TypeScale,
		TypeYesNo,
		TypeText,
		TypePercentage,
		TypeCurrency,
	}
}

// Valid reports whether t is one of the defined question types.
func (t QuestionType) Valid() bool {
	return slices.Contains(AllTypes(), t)
}

// IsChoice reports whether answers are picked from the question's options.
func (t QuestionType) IsChoice() bool {
	return t == TypeMultipleChoice || t == TypeScale || t == TypeYesNo
}

// IsNumeric reports whether answers are free numeric values.
func (t QuestionType) IsNumeric() bool {
	return t == TypeNumber || t == TypePercentage || t == TypeCurrency
}

// Discipline is an allied-health profession.
type Discipline string

const (
	DisciplinePhysiotherapy       Discipline = "physiotherapy"
	DisciplineOccupationalTherapy Discipline = "occupational-therapy"
	DisciplineSpeechPathology     Discipline = "speech-pathology"
	DisciplinePodiatry            Discipline = "podiatry"
	DisciplineDietetics           Discipline = "dietetics"
	DisciplineExercisePhysiology  Discipline = "exercise-physiology"
	DisciplinePsychology          Discipline = "psychology"
	DisciplineChiropractic        Discipline = "chiropractic"
	DisciplineOsteopathy          Discipline = "osteopathy"
	DisciplineMassageTherapy      Discipline = "massage-therapy"
)

// AllDisciplines returns all disciplines.
func AllDisciplines() []Discipline {
	return []Discipline{
		DisciplinePhysiotherapy,
		DisciplineOccupationalTherapy,
		DisciplineSpeechPathology,
		DisciplinePodiatry,
		DisciplineDietetics,
		DisciplineExercisePhysiology,
		DisciplinePsychology,
		DisciplineChiropractic,
		DisciplineOsteopathy,
		DisciplineMassageTherapy,
	}
}

// Valid reports whether d is one of the defined disciplines.
func (d Discipline) Valid() bool {
	return slices.Contains(AllDisciplines(), d)
}

// DisplayName returns a human-readable name for a discipline.
func (d Discipline) DisplayName() string {
	words := strings.Split(string(d), "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// PracticeSize buckets a practice by clinician headcount.
type PracticeSize string

const (
	PracticeSolo   PracticeSize = "solo"   // 1 clinician
	PracticeSmall  PracticeSize = "small"  // 2-5
	PracticeMedium PracticeSize = "medium" // 6-15
	PracticeLarge  PracticeSize = "large"  // 16+
)

// AllPracticeSizes returns all practice sizes, smallest first.
func AllPracticeSizes() []PracticeSize {
	return []PracticeSize{PracticeSolo, PracticeSmall, PracticeMedium, PracticeLarge}
}

// Valid reports whether s is one of the defined practice sizes.
func (s PracticeSize) Valid() bool {
	return slices.Contains(AllPracticeSizes(), s)
}

// DisplayName describes the size with its clinician headcount.
func (s PracticeSize) DisplayName() string {
	switch s {
	case PracticeSolo:
		return "Solo (1 clinician)"
	case PracticeSmall:
		return "Small (2-5 clinicians)"
	case PracticeMedium:
		return "Medium (6-15 clinicians)"
	case PracticeLarge:
		return "Large (16+ clinicians)"
	default:
		return string(s)
	}
}

// Priority ranks an interpretation's urgency.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Rank orders priorities; unknown or empty priorities rank lowest.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// TrackingPeriod is how often a metric should be re-measured.
type TrackingPeriod string

const (
	TrackWeekly    TrackingPeriod = "weekly"
	TrackMonthly   TrackingPeriod = "monthly"
	TrackQuarterly TrackingPeriod = "quarterly"
	TrackAnnually  TrackingPeriod = "annually"
)

// Option is one selectable answer of a choice question.
type Option struct {
	Value string  `json:"value"`
	Score float64 `json:"score"`
	Text  string  `json:"text"`
}

// Interpretation explains what a score band means for the practice.
type Interpretation struct {
	Interpretation string   `json:"interpretation"`
	ActionPrompts  []string `json:"actionPrompts"`
	Priority       Priority `json:"priority,omitempty"`
	Timeframe      string   `json:"timeframe,omitempty"`
}

// SOPRelevance marks questions whose answers feed standard operating procedure generation.
type SOPRelevance struct {
	Relevant      bool           `json:"relevant"`
	SOPTypes      []string       `json:"sopTypes,omitempty"`
	RAGParameters map[string]any `json:"ragParameters,omitempty"`
}

// DisciplineOverride replaces parts of a question for one discipline.
type DisciplineOverride struct {
	HelpText string   `json:"helpText,omitempty"`
	Options  []Option `json:"options,omitempty"`
	Weight   *float64 `json:"weight,omitempty"`
}

// Question is a single assessment item.
type Question struct {
	ID                    string       `json:"id"`
	Text                  string       `json:"text"`
	Type                  QuestionType `json:"type"`
	Category              Category     `json:"category"`
	ModuleID              string       `json:"moduleId"`
	ApplicableDisciplines []Discipline `json:"applicableDisciplines"`
	UniversalQuestion     bool         `json:"universalQuestion"`
	Options               []Option     `json:"options,omitempty"`
	Weight                float64      `json:"weight"`

	HelpText                string                            `json:"helpText,omitempty"`
	ImpactAreas             []string                          `json:"impactAreas,omitempty"`
	ApplicablePracticeSizes []PracticeSize                    `json:"applicablePracticeSizes,omitempty"`
	TrackingPeriod          TrackingPeriod                    `json:"trackingPeriod,omitempty"`
	BenchmarkReference      string                            `json:"benchmarkReference,omitempty"`
	ScoreInterpretation     map[string]Interpretation         `json:"scoreInterpretation,omitempty"`
	SOPRelevance            *SOPRelevance                     `json:"sopRelevance,omitempty"`
	DisciplineSpecific      map[Discipline]DisciplineOverride `json:"disciplineSpecific,omitempty"`
}

// AppliesTo reports whether the question is asked of discipline d.
func (q Question) AppliesTo(d Discipline) bool {
	return q.UniversalQuestion || slices.Contains(q.ApplicableDisciplines, d)
}

// AppliesToSize reports whether the question is asked of a practice of size s.
// Questions without a size restriction apply to every size.
func (q Question) AppliesToSize(s PracticeSize) bool {
	return len(q.ApplicablePracticeSizes) == 0 || slices.Contains(q.ApplicablePracticeSizes, s)
}

// ForDiscipline returns a copy of q with the override for d applied.
// The receiver's slices and maps are never modified.
func (q Question) ForDiscipline(d Discipline) Question {
	out := q.clone()
	ov, ok := q.DisciplineSpecific[d]
	if !ok {
		return out
	}
	if ov.HelpText != "" {
		out.HelpText = ov.HelpText
	}
	if len(ov.Options) > 0 {
		out.Options = slices.Clone(ov.Options)
	}
	if ov.Weight != nil {
		out.Weight = *ov.Weight
	}
	return out
}

// OptionByValue returns the option with the given value.
func (q Question) OptionByValue(value string) (Option, bool) {
	for _, o := range q.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// clone returns a copy of q that shares no memory with it.
func (q Question) clone() Question {
	out := q
	out.ApplicableDisciplines = slices.Clone(q.ApplicableDisciplines)
	out.Options = slices.Clone(q.Options)
	out.ImpactAreas = slices.Clone(q.ImpactAreas)
	out.ApplicablePracticeSizes = slices.Clone(q.ApplicablePracticeSizes)

	if q.ScoreInterpretation != nil {
		out.ScoreInterpretation = make(map[string]Interpretation, len(q.ScoreInterpretation))
		for k, in := range q.ScoreInterpretation {
			in.ActionPrompts = slices.Clone(in.ActionPrompts)
			out.ScoreInterpretation[k] = in
		}
	}
	if q.SOPRelevance != nil {
		sop := *q.SOPRelevance
		sop.SOPTypes = slices.Clone(sop.SOPTypes)
		if sop.RAGParameters != nil {
			sop.RAGParameters = cloneValue(sop.RAGParameters).(map[string]any)
		}
		out.SOPRelevance = &sop
	}
	if q.DisciplineSpecific != nil {
		out.DisciplineSpecific = make(map[Discipline]DisciplineOverride, len(q.DisciplineSpecific))
		for d, ov := range q.DisciplineSpecific {
			ov.Options = slices.Clone(ov.Options)
			if ov.Weight != nil {
				w := *ov.Weight
				ov.Weight = &w
			}
			out.DisciplineSpecific[d] = ov
		}
	}
	return out
}

// cloneValue deep-copies the maps and slices of a decoded YAML/JSON value.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, x := range t {
			m[k] = cloneValue(x)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, x := range t {
			s[i] = cloneValue(x)
		}
		return s
	default:
		return v
	}
}
