package actionplan

import (
	"fmt"
	"strings"

	"github.com/abhisek/praxis/internal/assessment"
	"github.com/abhisek/praxis/internal/questions"
)

const sopSystemPrompt = `You are an operations consultant for Australian allied-health practices. You write short, practical standard operating procedures that a practice manager can adopt the same week.`

func buildSOPUserMessage(p assessment.Profile, q questions.Question, answer string, it questions.Interpretation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Practice: %s\n", p.PracticeName)
	fmt.Fprintf(&b, "Discipline: %s\n", p.Discipline)
	fmt.Fprintf(&b, "Size: %s\n", p.PracticeSize)
	fmt.Fprintf(&b, "\nArea: %s\n", q.Category.DisplayName())
	fmt.Fprintf(&b, "Question: %s\n", q.Text)
	if o, ok := q.OptionByValue(answer); ok {
		fmt.Fprintf(&b, "Answer: %s\n", o.Text)
	} else {
		fmt.Fprintf(&b, "Answer: %s\n", answer)
	}
	if q.BenchmarkReference != "" {
		fmt.Fprintf(&b, "Benchmark: %s\n", q.BenchmarkReference)
	}
	fmt.Fprintf(&b, "Finding (%s priority): %s\n", it.Priority, it.Interpretation)
	if it.Timeframe != "" {
		fmt.Fprintf(&b, "Timeframe: %s\n", it.Timeframe)
	}
	if q.SOPRelevance != nil && len(q.SOPRelevance.SOPTypes) > 0 {
		fmt.Fprintf(&b, "Procedure type: %s\n", strings.Join(q.SOPRelevance.SOPTypes, ", "))
	}
	if len(it.ActionPrompts) > 0 {
		b.WriteString("\nSuggested starting points:\n")
		for _, a := range it.ActionPrompts {
			fmt.Fprintf(&b, "- %s\n", a)
		}
	}

	b.WriteString(`
Instructions:
Write one procedure that fixes this finding.
1. Give it a short title.
2. List 3-8 steps in order. Each step is one sentence and names the role responsible (e.g. practice manager, reception, clinician).
3. Include at least one step that measures whether the fix worked.
4. Do not give legal or clinical advice. Refer to the relevant professional body where regulation applies.`)

	return b.String()
}
