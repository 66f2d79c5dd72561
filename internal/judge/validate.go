package judge

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
)

var validScores = map[Score]bool{
	ScoreLikelyYes:  true,
	ScoreBorderline: true,
	ScoreLikelyNo:   true,
}

// ValidatePayload checks a decoded judge payload against the expected schema
// and returns a normalized verdict with the rationale trimmed. It rejects
// non-object payloads, unknown score values, missing/blank rationales, and
// cited_turns lists containing anything but integers.
func ValidatePayload(obj any) (Verdict, error) {
	m, ok := obj.(map[string]any)
	if !ok {
		return Verdict{}, errors.New("judge output is not a json object")
	}

	score, ok := m["score"].(string)
	if !ok || !validScores[Score(score)] {
		return Verdict{}, errors.New("invalid score")
	}

	rationale, ok := m["rationale"].(string)
	if !ok || strings.TrimSpace(rationale) == "" {
		return Verdict{}, errors.New("invalid rationale")
	}

	rawTurns, ok := m["cited_turns"].([]any)
	if !ok {
		return Verdict{}, errors.New("invalid cited_turns")
	}
	citedTurns := make([]int, 0, len(rawTurns))
	for _, v := range rawTurns {
		n, ok := intValue(v)
		if !ok {
			return Verdict{}, errors.New("invalid cited_turns")
		}
		citedTurns = append(citedTurns, n)
	}

	return Verdict{
		Score:      Score(score),
		Rationale:  strings.TrimSpace(rationale),
		CitedTurns: citedTurns,
		ValidJSON:  true,
	}, nil
}

// intValue accepts the integer representations a decoded payload can carry:
// json.Number from a UseNumber decode, float64 from a plain decode (integral
// values only), and native ints from hand-built payloads in tests.
func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}
