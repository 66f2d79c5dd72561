package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/internal/feature"
	"github.com/arbiterhq/arbiter/internal/judge"
	"github.com/arbiterhq/arbiter/internal/rule"
)

// AssessmentSummary is the row shape returned by RecentAssessments.
type AssessmentSummary struct {
	ID             uuid.UUID `json:"id"`
	SessionRef     string    `json:"session_ref"`
	A6Flag         bool      `json:"a6_flag"`
	JudgeScore     string    `json:"judge_score"`
	JudgeValidJSON bool      `json:"judge_valid_json"`
	CreatedAt      time.Time `json:"created_at"`
}

// WriteAssessment persists one transcript assessment across the assessments
// and assessment_evidence tables in a single transaction.
func (s *Store) WriteAssessment(ctx context.Context, sessionRef string, report feature.Report, rv rule.Verdict, jv judge.Verdict) (uuid.UUID, error) {
	ruleInputs, err := json.Marshal(rv.RuleInputs)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal rule inputs: %w", err)
	}
	features, err := json.Marshal(report)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal features: %w", err)
	}
	citedTurns, err := json.Marshal(jv.CitedTurns)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal cited turns: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	assessmentID := uuid.New()
	_, err = tx.Exec(ctx, `
		INSERT INTO assessments (
			id, session_ref, a6_flag, a6_rationale, rule_version, rule_inputs, features,
			judge_score, judge_rationale, judge_cited_turns, judge_valid_json, judge_raw_output,
			created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now())`,
		assessmentID, sessionRef, rv.Flag, rv.Rationale, rv.RuleVersion, ruleInputs, features,
		string(jv.Score), jv.Rationale, citedTurns, jv.ValidJSON, jv.RawOutput,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert assessment: %w", err)
	}

	for _, snippet := range rv.EvidenceSnippets {
		_, err = tx.Exec(ctx, `
			INSERT INTO assessment_evidence (id, assessment_id, feature, turn_index, quote)
			VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), assessmentID, string(snippet.Feature), snippet.TurnIndex, snippet.Quote,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("insert evidence: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("commit: %w", err)
	}

	return assessmentID, nil
}

// RecentAssessments returns the most recent assessment summaries, newest first.
func (s *Store) RecentAssessments(ctx context.Context, limit int) ([]AssessmentSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, session_ref, a6_flag, judge_score, judge_valid_json, created_at
		FROM assessments
		ORDER BY created_at DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	summaries := []AssessmentSummary{}
	for rows.Next() {
		var a AssessmentSummary
		if err := rows.Scan(&a.ID, &a.SessionRef, &a.A6Flag, &a.JudgeScore, &a.JudgeValidJSON, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan assessment row: %w", err)
		}
		summaries = append(summaries, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assessment rows: %w", err)
	}

	return summaries, nil
}
