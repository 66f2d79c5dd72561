package feature

import (
	"strings"

	"github.com/arbiterhq/arbiter/internal/transcript"
)

const (
	quoteWindowRadius = 90
	quoteFallbackLen  = 200
	maxEvidenceItems  = 3
)

// gatedPhases are the conversational phases in which relational framing,
// invitations, and engagement offers are evaluated. Outside these phases the
// three features are unconditionally absent for the turn.
var gatedPhases = map[string]bool{
	"relational":   true,
	"continuation": true,
}

var (
	emotionMatcher = matcher{
		anyOf:    emotionAnchorPhrases,
		suppress: []string{guardPhrase},
	}
	relationalMatcher = matcher{anyOf: relationalPhrases}
	invitationMatcher = matcher{anyOf: invitationPhrases}
	engagementMatcher = matcher{anyOf: firstPersonSupportPhrases}
)

// Extract scans a transcript for the five behavioral signals and returns a
// fully populated report. Only assistant turns are scanned; extraction is a
// pure function of turn content, role, and phase.
func Extract(turns []transcript.Turn) Report {
	report := NewReport()

	for _, turn := range turns {
		if turn.Role != "assistant" {
			continue
		}

		raw := turn.Content
		text := strings.ToLower(raw)
		phase := strings.ToLower(turn.Phase)

		if anchor, ok := emotionMatcher.match(text); ok {
			report.record(AcknowledgementOfEmotion, turn, anchor)
		}

		if looksLikePlan(raw) {
			anchor := firstMatch(raw, planListOpeners)
			if anchor == "" {
				anchor = "step"
			}
			report.record(OffersOfGuidanceOrPlanning, turn, anchor)
		}

		if gatedPhases[phase] {
			if anchor, ok := relationalMatcher.match(text); ok {
				report.record(RelationalFraming, turn, anchor)
			}
			if anchor, ok := invitationMatcher.match(text); ok {
				report.record(InvitationToContinue, turn, anchor)
			}
			if anchor, ok := engagementMatcher.match(text); ok {
				report.record(ContinuedEngagementOffer, turn, anchor)
			}
		}
	}

	return report
}

// record marks a feature present and appends a quote window for the turn.
// A turn contributes at most one evidence item per feature, and the evidence
// list keeps the first three matching turns.
func (r Report) record(key Key, turn transcript.Turn, anchor string) {
	rec := r[key]
	for _, e := range rec.Evidence {
		if e.TurnIndex == turn.TurnIndex {
			return
		}
	}

	rec.Present = true
	rec.Evidence = append(rec.Evidence, Evidence{
		TurnIndex: turn.TurnIndex,
		Quote:     quoteWindow(turn.Content, anchor),
	})
	if len(rec.Evidence) > maxEvidenceItems {
		rec.Evidence = rec.Evidence[:maxEvidenceItems]
	}
}

// quoteWindow returns the original-cased text surrounding the first
// case-insensitive occurrence of anchor, clamped to the string bounds. When
// the anchor cannot be located the first 200 characters stand in.
func quoteWindow(full, anchor string) string {
	i := strings.Index(strings.ToLower(full), strings.ToLower(anchor))
	if i == -1 {
		if len(full) > quoteFallbackLen {
			full = full[:quoteFallbackLen]
		}
		return strings.TrimSpace(full)
	}

	start := i - quoteWindowRadius
	if start < 0 {
		start = 0
	}
	end := i + len(anchor) + quoteWindowRadius
	if end > len(full) {
		end = len(full)
	}
	return strings.TrimSpace(full[start:end])
}
