package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/praxis/internal/questions"
)

var assessmentColumns = []string{
	"id", "sequence", "practice_name", "discipline", "practice_size",
	"catalog_version", "overall", "bucket", "report", "started_at", "completed_at",
}

// assessmentRepo implements AssessmentRepo with ent's SQL builder.
type assessmentRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *assessmentRepo) Save(ctx context.Context, a *Assessment) error {
	report, err := json.Marshal(a.Report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	query, args := builder().Insert("assessments").
		Columns(assessmentColumns...).
		Values(
			a.ID, seqNum, a.PracticeName, string(a.Discipline), string(a.PracticeSize),
			a.CatalogVersion, a.Report.Overall, string(a.Report.Bucket), string(report),
			unixNano(a.StartedAt), unixNano(a.CompletedAt),
		).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}

	if len(a.Responses) > 0 {
		ins := builder().Insert("responses").Columns("assessment_id", "question_id", "value")
		for _, qid := range slices.Sorted(maps.Keys(a.Responses)) {
			ins.Values(a.ID, qid, a.Responses[qid])
		}
		query, args := ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert responses: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	a.Sequence = seqNum
	return nil
}

func (r *assessmentRepo) Get(ctx context.Context, id string) (*Assessment, error) {
	rows, err := r.query(ctx, r.selectAssessments().Where(entsql.EQ("id", id)))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("assessment %s: %w", id, ErrNotFound)
	}
	a := &rows[0]

	query, args := builder().Select("question_id", "value").
		From(builder().Table("responses")).
		Where(entsql.EQ("assessment_id", id)).
		Query()
	res, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	defer res.Close()

	a.Responses = make(map[string]string)
	for res.Next() {
		var qid, value string
		if err := res.Scan(&qid, &value); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		a.Responses[qid] = value
	}
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("iterate responses: %w", err)
	}
	return a, nil
}

func (r *assessmentRepo) List(ctx context.Context, opts QueryOpts) ([]Assessment, error) {
	sel := r.selectAssessments()
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("completed_at", unixNano(opts.From)))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("completed_at", unixNano(opts.To)))
	}
	if opts.Discipline != "" {
		sel.Where(entsql.EQ("discipline", string(opts.Discipline)))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return r.query(ctx, sel)
}

func (r *assessmentRepo) Latest(ctx context.Context) (*Assessment, error) {
	rows, err := r.List(ctx, QueryOpts{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *assessmentRepo) Count(ctx context.Context) (int, error) {
	query, args := builder().Select(entsql.Count("*")).
		From(builder().Table("assessments")).
		Query()
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count assessments: %w", err)
	}
	return n, nil
}

func (r *assessmentRepo) Prune(ctx context.Context, keep int) error {
	// Find the newest assessment that falls outside the window.
	query, args := builder().Select("sequence").
		From(builder().Table("assessments")).
		OrderBy(entsql.Desc("sequence")).
		Limit(1).
		Offset(keep).
		Query()
	var cutoff int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&cutoff)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // fewer than keep assessments exist
	}
	if err != nil {
		return fmt.Errorf("query assessments for prune: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stale := builder().Select("id").
		From(builder().Table("assessments")).
		Where(entsql.LTE("sequence", cutoff))
	query, args = builder().Delete("responses").
		Where(entsql.In("assessment_id", stale)).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune responses: %w", err)
	}

	query, args = builder().Delete("assessments").
		Where(entsql.LTE("sequence", cutoff)).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune assessments: %w", err)
	}
	return tx.Commit()
}

func (r *assessmentRepo) selectAssessments() *entsql.Selector {
	return builder().Select(assessmentColumns...).
		From(builder().Table("assessments")).
		OrderBy(entsql.Desc("sequence"))
}

func (r *assessmentRepo) query(ctx context.Context, sel *entsql.Selector) ([]Assessment, error) {
	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	out := make([]Assessment, 0)
	for rows.Next() {
		var (
			a                      Assessment
			discipline, size       string
			overall                float64
			bucket, report         string
			startedAt, completedAt int64
		)
		err := rows.Scan(&a.ID, &a.Sequence, &a.PracticeName, &discipline, &size,
			&a.CatalogVersion, &overall, &bucket, &report, &startedAt, &completedAt)
		if err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		if err := json.Unmarshal([]byte(report), &a.Report); err != nil {
			return nil, fmt.Errorf("unmarshal report of %s: %w", a.ID, err)
		}
		a.Discipline = questions.Discipline(discipline)
		a.PracticeSize = questions.PracticeSize(size)
		a.StartedAt = fromUnixNano(startedAt)
		a.CompletedAt = fromUnixNano(completedAt)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assessments: %w", err)
	}
	return out, nil
}

func unixNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromUnixNano(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}
