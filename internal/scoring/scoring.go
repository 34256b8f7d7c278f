// Package scoring turns assessment answers into question, category and overall
// scores and looks up the matching score interpretations.
package scoring

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/abhisek/praxis/internal/questions"
)

// QuestionScore returns the raw score for an answer to q.
// Choice questions score as the chosen option. Numeric questions score as the
// option with the largest threshold at or below the answer; answers below every
// threshold take the lowest threshold's score. Text questions and questions
// without options are unscored and return false.
func QuestionScore(q questions.Question, answer string) (float64, bool) {
	answer = strings.TrimSpace(answer)
	if answer == "" || len(q.Options) == 0 {
		return 0, false
	}
	switch {
	case q.Type.IsChoice():
		opt, ok := q.OptionByValue(answer)
		if !ok {
			return 0, false
		}
		return opt.Score, true
	case q.Type.IsNumeric():
		v, err := ParseNumber(answer)
		if err != nil {
			return 0, false
		}
		return thresholdScore(q.Options, v)
	default:
		return 0, false
	}
}

func thresholdScore(opts []questions.Option, v float64) (float64, bool) {
	bestAt, lowestAt := math.Inf(-1), math.Inf(1)
	var best, lowest float64
	var haveBest, haveLow bool
	for _, o := range opts {
		t, err := strconv.ParseFloat(o.Value, 64)
		if err != nil {
			continue
		}
		if t <= v && t > bestAt {
			best, bestAt, haveBest = o.Score, t, true
		}
		if t < lowestAt {
			lowest, lowestAt, haveLow = o.Score, t, true
		}
	}
	if haveBest {
		return best, true
	}
	return lowest, haveLow
}

// ErrNotFinite is returned by ParseNumber for NaN and infinite answers.
var ErrNotFinite = errors.New("not a finite number")

// ParseNumber parses a numeric answer, tolerating currency symbols,
// thousands separators and a trailing percent sign. NaN and infinities
// are rejected.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%q: %w", s, ErrNotFinite)
	}
	return n, nil
}

// MaxScore returns the highest option score of q, or 0 when q has no options.
func MaxScore(q questions.Question) float64 {
	best := 0.0
	for _, o := range q.Options {
		if o.Score > best {
			best = o.Score
		}
	}
	return best
}

// Percent returns the answer's score as a percentage of the question's maximum.
func Percent(q questions.Question, answer string) (float64, bool) {
	s, ok := QuestionScore(q, answer)
	if !ok {
		return 0, false
	}
	top := MaxScore(q)
	if top <= 0 {
		return 0, false
	}
	return s / top * 100, true
}

// Interpret returns the interpretation whose key covers score.
// Keys are a single value "3" or an inclusive range "1-2"; they are tried
// in ascending order of their lower bound.
func Interpret(q questions.Question, score float64) (questions.Interpretation, bool) {
	type band struct {
		key    string
		lo, hi float64
	}
	bands := make([]band, 0, len(q.ScoreInterpretation))
	for k := range q.ScoreInterpretation {
		lo, hi, ok := parseKey(k)
		if !ok {
			continue
		}
		bands = append(bands, band{k, lo, hi})
	}
	sort.Slice(bands, func(i, j int) bool {
		if bands[i].lo != bands[j].lo {
			return bands[i].lo < bands[j].lo
		}
		return bands[i].key < bands[j].key
	})
	for _, b := range bands {
		if score >= b.lo && score <= b.hi {
			return q.ScoreInterpretation[b.key], true
		}
	}
	return questions.Interpretation{}, false
}

func parseKey(k string) (lo, hi float64, ok bool) {
	from, to, isRange := strings.Cut(k, "-")
	lo, err := strconv.ParseFloat(from, 64)
	if err != nil {
		return 0, 0, false
	}
	if !isRange {
		return lo, lo, true
	}
	hi, err = strconv.ParseFloat(to, 64)
	if err != nil || hi < lo {
		return 0, 0, false
	}
	return lo, hi, true
}
