// Package processor orchestrates the assessment pipeline: the deterministic
// rule path and the model judge path read the same transcript concurrently,
// and their verdicts are persisted and announced together.
package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/internal/bus"
	"github.com/arbiterhq/arbiter/internal/feature"
	"github.com/arbiterhq/arbiter/internal/judge"
	"github.com/arbiterhq/arbiter/internal/rule"
	"github.com/arbiterhq/arbiter/internal/transcript"
)

// TranscriptEvent is the payload of a dossier.transcript.stored event. Turns
// arrive inline, ordered by turn_index.
type TranscriptEvent struct {
	SessionRef string            `json:"session_ref"`
	Source     string            `json:"source"` // e.g. "scenario-runner", "replay"
	Turns      []transcript.Turn `json:"turns"`
}

// AssessmentCompleted is published after an assessment is persisted.
type AssessmentCompleted struct {
	AssessmentID   uuid.UUID `json:"assessment_id"`
	SessionRef     string    `json:"session_ref"`
	A6Flag         bool      `json:"a6_flag"`
	JudgeScore     string    `json:"judge_score"`
	JudgeValidJSON bool      `json:"judge_valid_json"`
}

// Assessment is the combined result of both verdict paths for one transcript.
type Assessment struct {
	ID         uuid.UUID      `json:"id"`
	SessionRef string         `json:"session_ref"`
	Features   feature.Report `json:"features"`
	Rule       rule.Verdict   `json:"rule_verdict"`
	Judge      judge.Verdict  `json:"judge_verdict"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Persister stores completed assessments. *store.Store satisfies it.
type Persister interface {
	WriteAssessment(ctx context.Context, sessionRef string, report feature.Report, rv rule.Verdict, jv judge.Verdict) (uuid.UUID, error)
}

// Publisher announces completed assessments. *bus.Client satisfies it.
type Publisher interface {
	Publish(subject string, data any) error
}

type Processor struct {
	store  Persister
	judge  *judge.Judge
	bus    Publisher
	logger *slog.Logger
}

func New(store Persister, j *judge.Judge, b Publisher, logger *slog.Logger) *Processor {
	return &Processor{store: store, judge: j, bus: b, logger: logger}
}

// Process runs both verdict paths over a transcript, persists the result, and
// publishes a completion event. The judge call is the only suspension point,
// so it runs in its own goroutine while the rule path completes synchronously.
func (p *Processor) Process(ctx context.Context, sessionRef string, turns []transcript.Turn) (*Assessment, error) {
	judgeCh := make(chan judge.Verdict, 1)
	go func() {
		judgeCh <- p.judge.Assess(ctx, turns)
	}()

	report := feature.Extract(turns)
	rv := rule.Evaluate(report)
	jv := <-judgeCh

	id, err := p.store.WriteAssessment(ctx, sessionRef, report, rv, jv)
	if err != nil {
		return nil, fmt.Errorf("persist assessment: %w", err)
	}

	a := &Assessment{
		ID:         id,
		SessionRef: sessionRef,
		Features:   report,
		Rule:       rv,
		Judge:      jv,
		CreatedAt:  time.Now().UTC(),
	}

	if p.bus != nil {
		evt := AssessmentCompleted{
			AssessmentID:   id,
			SessionRef:     sessionRef,
			A6Flag:         rv.Flag,
			JudgeScore:     string(jv.Score),
			JudgeValidJSON: jv.ValidJSON,
		}
		if err := p.bus.Publish(bus.SubjectAssessmentCompleted, evt); err != nil {
			p.logger.Warn("failed to publish assessment event", "assessment_id", id, "error", err)
		}
	}

	p.logger.Info("assessment complete",
		"assessment_id", id,
		"session_ref", sessionRef,
		"a6_flag", rv.Flag,
		"judge_score", jv.Score,
		"judge_valid_json", jv.ValidJSON,
	)

	return a, nil
}

// HandleTranscriptStored is the NATS handler for dossier.transcript.stored.
func (p *Processor) HandleTranscriptStored(subject string, data []byte) {
	var evt TranscriptEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		p.logger.Error("failed to parse transcript event", "error", err)
		return
	}
	if evt.SessionRef == "" {
		p.logger.Error("transcript event missing session_ref")
		return
	}

	p.logger.Info("processing transcript",
		"session_ref", evt.SessionRef,
		"source", evt.Source,
		"turns", len(evt.Turns),
	)

	if _, err := p.Process(context.Background(), evt.SessionRef, evt.Turns); err != nil {
		p.logger.Error("assessment failed", "session_ref", evt.SessionRef, "error", err)
	}
}
