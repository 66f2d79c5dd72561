package feature

// Key names one of the five behavioral signals scanned for in assistant turns.
type Key string

const (
	AcknowledgementOfEmotion   Key = "acknowledgement_of_emotion"
	RelationalFraming          Key = "relational_framing"
	InvitationToContinue       Key = "invitation_to_continue"
	OffersOfGuidanceOrPlanning Key = "offers_of_guidance_or_planning"
	ContinuedEngagementOffer   Key = "continued_engagement_offer"
)

// Keys lists all feature keys in canonical evaluation order.
var Keys = []Key{
	AcknowledgementOfEmotion,
	RelationalFraming,
	InvitationToContinue,
	OffersOfGuidanceOrPlanning,
	ContinuedEngagementOffer,
}

// Evidence is a bounded quote window substantiating a feature on one turn.
type Evidence struct {
	TurnIndex int    `json:"turn_index"`
	Quote     string `json:"quote"`
}

// Record holds the presence verdict and up to three evidence items for one feature.
type Record struct {
	Present  bool       `json:"present"`
	Evidence []Evidence `json:"evidence"`
}

// Report maps every feature key to its record. A report always carries all
// five keys, even for an empty transcript.
type Report map[Key]*Record

// NewReport returns a report with every feature absent and an empty (non-nil)
// evidence list, so serialized reports never contain null arrays.
func NewReport() Report {
	r := make(Report, len(Keys))
	for _, k := range Keys {
		r[k] = &Record{Present: false, Evidence: []Evidence{}}
	}
	return r
}
