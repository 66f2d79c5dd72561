package feature

import "strings"

// matcher combines positive phrase sets with suppressing phrases as an
// explicit boolean expression: a turn matches when any positive phrase is
// present and no suppressing phrase is. New suppression rules slot in here
// without touching the extraction loop.
type matcher struct {
	anyOf    []string
	suppress []string
}

// match reports whether text satisfies the matcher and returns the anchor
// phrase used to locate the evidence quote.
func (m matcher) match(text string) (string, bool) {
	p := firstMatch(text, m.anyOf)
	if p == "" {
		return "", false
	}
	if hasAny(text, m.suppress) {
		return "", false
	}
	return p, true
}

func hasAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// firstMatch returns the first phrase (in table order) contained in text,
// or "" when none match.
func firstMatch(text string, phrases []string) string {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return p
		}
	}
	return ""
}

// looksLikePlan detects structure, not vibes: a newline-anchored numbered
// list opener in the original-cased text, bullets accompanied by the word
// "step" or "plan", or an explicit step-by-step phrase.
func looksLikePlan(raw string) bool {
	for _, opener := range planListOpeners {
		if strings.Contains(raw, opener) {
			return true
		}
	}
	lower := strings.ToLower(raw)
	if strings.Contains(lower, "\n- ") && hasAny(lower, []string{"step", "plan"}) {
		return true
	}
	return hasAny(lower, []string{"step-by-step", "step by step"})
}
