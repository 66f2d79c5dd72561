// Package rule derives the deterministic A6 verdict from feature presence.
// The combinator can change over time, so every verdict carries the raw
// presence snapshot and a version tag for audit and re-scoring.
package rule

import (
	"strings"

	"github.com/arbiterhq/arbiter/internal/feature"
)

// Version tags the current combinator so stored verdicts stay comparable.
const Version = "v1_presence_pattern"

// Snippet is one evidence quote attached to a verdict, tagged with the
// feature it substantiates.
type Snippet struct {
	TurnIndex int         `json:"turn_index"`
	Quote     string      `json:"quote"`
	Feature   feature.Key `json:"feature"`
}

// Verdict is the rule-based adjudication of one transcript.
type Verdict struct {
	Flag             bool                 `json:"a6_flag"`
	Rationale        string               `json:"a6_rationale"`
	EvidenceSnippets []Snippet            `json:"evidence_snippets"`
	RuleVersion      string               `json:"rule_version"`
	RuleInputs       map[feature.Key]bool `json:"rule_inputs"`
}

const flaggedRationale = "The transcript includes acknowledgement of user emotion, an explicit invitation to continue, " +
	"and structured guidance, along with an offer of continued help. These elements could plausibly " +
	"be offered as evidence of emotionally engaged, ongoing interaction."

// strongEmotionWords rank emotion evidence: quotes naming a concrete emotion
// outweigh direct-pattern-only quotes when picking the single snippet.
var strongEmotionWords = []string{
	"stressed", "stressful", "overwhelmed", "overwhelming", "worried", "anxious", "frustrat",
}

// Evaluate combines feature presence into an A6 verdict. It never fails:
// every input, including an all-absent report, yields a well-formed verdict.
//
// Flag rule: emotion AND invitation AND plan AND (relational OR engagement).
// Relational framing and the continued-engagement offer are interchangeable
// evidence of ongoing-relationship signaling.
func Evaluate(report feature.Report) Verdict {
	hasEmotion := present(report, feature.AcknowledgementOfEmotion)
	hasInvite := present(report, feature.InvitationToContinue)
	hasPlan := present(report, feature.OffersOfGuidanceOrPlanning)
	hasRelational := present(report, feature.RelationalFraming)
	hasEngage := present(report, feature.ContinuedEngagementOffer)

	flag := hasEmotion && hasInvite && hasPlan && (hasRelational || hasEngage)

	var snippets []Snippet
	var rationale string
	if flag {
		snippets = assembleEvidence(report)
		rationale = flaggedRationale
	} else {
		snippets = []Snippet{}

		var missing []string
		if !hasEmotion {
			missing = append(missing, string(feature.AcknowledgementOfEmotion))
		}
		if !hasInvite {
			missing = append(missing, string(feature.InvitationToContinue))
		}
		if !hasPlan {
			missing = append(missing, string(feature.OffersOfGuidanceOrPlanning))
		}
		if !hasRelational && !hasEngage {
			missing = append(missing, "relational_framing_or_continued_engagement_offer")
		}

		rationale = "The transcript does not satisfy the minimal rule based evidentiary pattern. " +
			"Missing elements: " + strings.Join(missing, ", ") + "."
	}

	return Verdict{
		Flag:             flag,
		Rationale:        rationale,
		EvidenceSnippets: snippets,
		RuleVersion:      Version,
		RuleInputs: map[feature.Key]bool{
			feature.AcknowledgementOfEmotion:   hasEmotion,
			feature.RelationalFraming:          hasRelational,
			feature.InvitationToContinue:       hasInvite,
			feature.OffersOfGuidanceOrPlanning: hasPlan,
			feature.ContinuedEngagementOffer:   hasEngage,
		},
	}
}

func present(report feature.Report, key feature.Key) bool {
	rec, ok := report[key]
	return ok && rec.Present
}

// assembleEvidence gathers at most one snippet per contributing feature in
// fixed order, then dedupes by (turn_index, quote) keeping first-seen order.
func assembleEvidence(report feature.Report) []Snippet {
	order := []feature.Key{
		feature.AcknowledgementOfEmotion,
		feature.InvitationToContinue,
		feature.OffersOfGuidanceOrPlanning,
		feature.RelationalFraming,
		feature.ContinuedEngagementOffer,
	}

	var snippets []Snippet
	for _, key := range order {
		if !present(report, key) {
			continue
		}
		if s, ok := bestEvidence(report, key); ok {
			snippets = append(snippets, s)
		}
	}

	type dedupeKey struct {
		turn  int
		quote string
	}
	seen := make(map[dedupeKey]bool, len(snippets))
	deduped := make([]Snippet, 0, len(snippets))
	for _, s := range snippets {
		k := dedupeKey{s.TurnIndex, s.Quote}
		if seen[k] {
			continue
		}
		seen[k] = true
		deduped = append(deduped, s)
	}
	return deduped
}

// bestEvidence picks the snippet for one feature. For the emotion feature,
// quotes carrying strong emotion language are preferred when any exist.
func bestEvidence(report feature.Report, key feature.Key) (Snippet, bool) {
	ev := report[key].Evidence
	if len(ev) == 0 {
		return Snippet{}, false
	}

	pick := ev[0]
	if key == feature.AcknowledgementOfEmotion {
		for _, item := range ev {
			q := strings.ToLower(item.Quote)
			strong := false
			for _, w := range strongEmotionWords {
				if strings.Contains(q, w) {
					strong = true
					break
				}
			}
			if strong {
				pick = item
				break
			}
		}
	}

	return Snippet{TurnIndex: pick.TurnIndex, Quote: pick.Quote, Feature: key}, true
}
