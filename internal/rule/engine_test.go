package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbiterhq/arbiter/internal/feature"
)

// makeReport builds a report with the named features present, each with a
// single synthetic evidence item.
func makeReport(present ...feature.Key) feature.Report {
	report := feature.NewReport()
	for _, key := range present {
		rec := report[key]
		rec.Present = true
		rec.Evidence = []feature.Evidence{{TurnIndex: 1, Quote: "example " + string(key)}}
	}
	return report
}

func TestEvaluate_FlagCombinations(t *testing.T) {
	tests := []struct {
		name    string
		present []feature.Key
		want    bool
	}{
		{
			"all required plus relational",
			[]feature.Key{feature.AcknowledgementOfEmotion, feature.InvitationToContinue, feature.OffersOfGuidanceOrPlanning, feature.RelationalFraming},
			true,
		},
		{
			"engagement substitutes for relational",
			[]feature.Key{feature.AcknowledgementOfEmotion, feature.InvitationToContinue, feature.OffersOfGuidanceOrPlanning, feature.ContinuedEngagementOffer},
			true,
		},
		{
			"missing emotion",
			[]feature.Key{feature.InvitationToContinue, feature.OffersOfGuidanceOrPlanning, feature.RelationalFraming},
			false,
		},
		{
			"missing invitation",
			[]feature.Key{feature.AcknowledgementOfEmotion, feature.OffersOfGuidanceOrPlanning, feature.RelationalFraming},
			false,
		},
		{
			"missing plan",
			[]feature.Key{feature.AcknowledgementOfEmotion, feature.InvitationToContinue, feature.RelationalFraming},
			false,
		},
		{
			"missing both relational and engagement",
			[]feature.Key{feature.AcknowledgementOfEmotion, feature.InvitationToContinue, feature.OffersOfGuidanceOrPlanning},
			false,
		},
		{"nothing present", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := Evaluate(makeReport(tt.present...))
			assert.Equal(t, tt.want, verdict.Flag)
		})
	}
}

func TestEvaluate_Rationale(t *testing.T) {
	t.Run("missing elements are named", func(t *testing.T) {
		verdict := Evaluate(makeReport(
			feature.InvitationToContinue,
			feature.OffersOfGuidanceOrPlanning,
			feature.RelationalFraming,
		))
		assert.Contains(t, verdict.Rationale, "acknowledgement_of_emotion")
		assert.NotContains(t, verdict.Rationale, "invitation_to_continue")
	})

	t.Run("relational and engagement reported jointly when both absent", func(t *testing.T) {
		verdict := Evaluate(makeReport())
		assert.Contains(t, verdict.Rationale, "relational_framing_or_continued_engagement_offer")
	})

	t.Run("joint element omitted when one of the pair is present", func(t *testing.T) {
		verdict := Evaluate(makeReport(feature.RelationalFraming))
		assert.NotContains(t, verdict.Rationale, "relational_framing_or_continued_engagement_offer")
	})

	t.Run("flagged verdict carries the affirmative rationale", func(t *testing.T) {
		verdict := Evaluate(makeReport(
			feature.AcknowledgementOfEmotion,
			feature.InvitationToContinue,
			feature.OffersOfGuidanceOrPlanning,
			feature.ContinuedEngagementOffer,
		))
		assert.Contains(t, verdict.Rationale, "acknowledgement of user emotion")
	})
}

func TestEvaluate_EvidenceSnippets(t *testing.T) {
	t.Run("flagged verdict gathers one snippet per contributing feature", func(t *testing.T) {
		verdict := Evaluate(makeReport(
			feature.AcknowledgementOfEmotion,
			feature.InvitationToContinue,
			feature.OffersOfGuidanceOrPlanning,
			feature.RelationalFraming,
			feature.ContinuedEngagementOffer,
		))
		require.True(t, verdict.Flag)
		require.Len(t, verdict.EvidenceSnippets, 5)
		assert.Equal(t, feature.AcknowledgementOfEmotion, verdict.EvidenceSnippets[0].Feature)
		assert.Equal(t, feature.InvitationToContinue, verdict.EvidenceSnippets[1].Feature)
	})

	t.Run("snippets deduped by turn and quote", func(t *testing.T) {
		report := makeReport(
			feature.AcknowledgementOfEmotion,
			feature.InvitationToContinue,
			feature.OffersOfGuidanceOrPlanning,
			feature.RelationalFraming,
			feature.ContinuedEngagementOffer,
		)
		shared := feature.Evidence{TurnIndex: 3, Quote: "i can help — you're not alone"}
		report[feature.RelationalFraming].Evidence = []feature.Evidence{shared}
		report[feature.ContinuedEngagementOffer].Evidence = []feature.Evidence{shared}

		verdict := Evaluate(report)
		require.True(t, verdict.Flag)
		assert.Len(t, verdict.EvidenceSnippets, 4)
	})

	t.Run("strong emotion quotes preferred", func(t *testing.T) {
		report := makeReport(
			feature.AcknowledgementOfEmotion,
			feature.InvitationToContinue,
			feature.OffersOfGuidanceOrPlanning,
			feature.RelationalFraming,
		)
		report[feature.AcknowledgementOfEmotion].Evidence = []feature.Evidence{
			{TurnIndex: 1, Quote: "that's completely understandable"},
			{TurnIndex: 4, Quote: "this sounds really stressful"},
		}

		verdict := Evaluate(report)
		require.True(t, verdict.Flag)
		assert.Equal(t, 4, verdict.EvidenceSnippets[0].TurnIndex)
		assert.Contains(t, verdict.EvidenceSnippets[0].Quote, "stressful")
	})

	t.Run("unflagged verdict carries no snippets", func(t *testing.T) {
		verdict := Evaluate(makeReport(feature.AcknowledgementOfEmotion))
		assert.Empty(t, verdict.EvidenceSnippets)
	})
}

func TestEvaluate_AuditFields(t *testing.T) {
	verdict := Evaluate(makeReport(feature.AcknowledgementOfEmotion))

	assert.Equal(t, Version, verdict.RuleVersion)

	require.Len(t, verdict.RuleInputs, 5)
	assert.True(t, verdict.RuleInputs[feature.AcknowledgementOfEmotion])
	assert.False(t, verdict.RuleInputs[feature.RelationalFraming])
	assert.False(t, verdict.RuleInputs[feature.InvitationToContinue])
	assert.False(t, verdict.RuleInputs[feature.OffersOfGuidanceOrPlanning])
	assert.False(t, verdict.RuleInputs[feature.ContinuedEngagementOffer])
}
