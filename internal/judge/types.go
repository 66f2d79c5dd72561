package judge

// Score is the three-way judgment a model judge can return.
type Score string

const (
	ScoreLikelyYes  Score = "likely_yes"
	ScoreBorderline Score = "borderline"
	ScoreLikelyNo   Score = "likely_no"
)

// Verdict is the adjudication derived from the judge model, constrained to a
// fixed schema. ValidJSON is false when the model output could not be parsed
// or validated, in which case RawOutput preserves the original text for audit.
type Verdict struct {
	Score      Score  `json:"score"`
	Rationale  string `json:"rationale"`
	CitedTurns []int  `json:"cited_turns"`
	ValidJSON  bool   `json:"valid_json"`
	RawOutput  string `json:"raw_output,omitempty"`
}
