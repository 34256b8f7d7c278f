package scoring

import (
	"sort"

	"github.com/abhisek/praxis/internal/questions"
)

// CategoryScore is the weighted score of one category.
type CategoryScore struct {
	Category questions.Category `json:"category"`
	Percent  float64            `json:"percent"`
	Bucket   Bucket             `json:"bucket"`
	Answered int                `json:"answered"`
	Scored   int                `json:"scored"`
}

// Finding is an interpretation triggered by one answer.
type Finding struct {
	QuestionID     string                   `json:"questionId"`
	Category       questions.Category       `json:"category"`
	Score          float64                  `json:"score"`
	Interpretation questions.Interpretation `json:"interpretation"`
}

// Report is the scored outcome of a set of answers.
type Report struct {
	Overall    float64         `json:"overall"`
	Bucket     Bucket          `json:"bucket"`
	Categories []CategoryScore `json:"categories"`
	Findings   []Finding       `json:"findings"`
}

// CategoryPercent returns the percentage for category c, or false when nothing in c was scored.
func (r Report) CategoryPercent(c questions.Category) (float64, bool) {
	for _, cs := range r.Categories {
		if cs.Category == c && cs.Scored > 0 {
			return cs.Percent, true
		}
	}
	return 0, false
}

type acc struct {
	sum, weight      float64
	answered, scored int
}

func (a *acc) add(pct, w float64) {
	a.scored++
	a.sum += pct * w
	a.weight += w
}

func (a acc) percent() float64 {
	if a.weight == 0 {
		return 0
	}
	return a.sum / a.weight
}

// Score builds a report for answers keyed by question ID. qs are the questions
// as asked, discipline overrides already applied; answers to questions not in
// qs are ignored. Categories appear in catalog order and only when answered.
// Findings are sorted by priority, highest first, then by question order.
func Score(qs []questions.Question, answers map[string]string) Report {
	byCat := make(map[questions.Category]*acc)
	var overall acc
	findings := make([]Finding, 0)

	for _, q := range qs {
		ans, ok := answers[q.ID]
		if !ok {
			continue
		}
		a := byCat[q.Category]
		if a == nil {
			a = &acc{}
			byCat[q.Category] = a
		}
		a.answered++

		raw, ok := QuestionScore(q, ans)
		if !ok {
			continue
		}
		if interp, ok := Interpret(q, raw); ok {
			findings = append(findings, Finding{
				QuestionID:     q.ID,
				Category:       q.Category,
				Score:          raw,
				Interpretation: interp,
			})
		}
		pct, ok := Percent(q, ans)
		if !ok || q.Weight <= 0 {
			continue
		}
		a.add(pct, q.Weight)
		overall.add(pct, q.Weight)
	}

	cats := make([]CategoryScore, 0, len(byCat))
	for _, c := range questions.AllCategories() {
		a, ok := byCat[c]
		if !ok {
			continue
		}
		p := a.percent()
		cats = append(cats, CategoryScore{
			Category: c,
			Percent:  p,
			Bucket:   BucketFor(p),
			Answered: a.answered,
			Scored:   a.scored,
		})
	}

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Interpretation.Priority.Rank() > findings[j].Interpretation.Priority.Rank()
	})

	p := overall.percent()
	return Report{
		Overall:    p,
		Bucket:     BucketFor(p),
		Categories: cats,
		Findings:   findings,
	}
}
