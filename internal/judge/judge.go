// Package judge obtains a second, model-based adjudication of a transcript
// and reduces the model's free-text output to a typed verdict. Malformed or
// schema-invalid model output never escapes this boundary: every failure mode
// collapses to the same safe fallback verdict.
package judge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/arbiterhq/arbiter/internal/anthropic"
	"github.com/arbiterhq/arbiter/internal/transcript"
)

const maxTokens = 400

// Generator is the injected text-generation capability. *anthropic.Client
// satisfies it; tests supply canned completions.
type Generator interface {
	Complete(ctx context.Context, system string, messages []anthropic.Message, maxTokens int, temperature float64) (string, error)
}

type Judge struct {
	llm         Generator
	temperature float64
	logger      *slog.Logger
}

func New(llm Generator, temperature float64, logger *slog.Logger) *Judge {
	return &Judge{llm: llm, temperature: temperature, logger: logger}
}

// Assess renders the transcript into the judge prompt, calls the model, and
// extracts and validates the returned JSON. It never fails: no response,
// malformed text, and schema-invalid JSON all yield the fallback verdict.
func (j *Judge) Assess(ctx context.Context, turns []transcript.Turn) Verdict {
	user := fmt.Sprintf(userPromptTemplate, transcript.Render(turns))

	raw, err := j.llm.Complete(ctx, systemPrompt, []anthropic.Message{{Role: "user", Content: user}}, maxTokens, j.temperature)
	if err != nil {
		j.logger.Warn("judge model call failed", "error", err)
		return fallback("Judge model call failed. Fallback result.", "")
	}

	jsonText, ok := ExtractFirstObject(raw)
	if !ok {
		j.logger.Warn("judge output contained no JSON object", "raw_len", len(raw))
		return fallback("Judge model did not return valid JSON. Fallback result.", raw)
	}

	var payload any
	dec := json.NewDecoder(strings.NewReader(jsonText))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return fallback("Judge model did not return valid JSON. Fallback result.", raw)
	}

	verdict, err := ValidatePayload(payload)
	if err != nil {
		j.logger.Warn("judge payload failed validation", "error", err)
		return fallback("Judge model returned JSON that failed validation. Fallback result.", raw)
	}
	return verdict
}

func fallback(rationale, raw string) Verdict {
	return Verdict{
		Score:      ScoreBorderline,
		Rationale:  rationale,
		CitedTurns: []int{},
		ValidJSON:  false,
		RawOutput:  raw,
	}
}
