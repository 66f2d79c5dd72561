package feature

// Phrase tables — single source of truth for detection and evidence anchoring.
// Curly (’) and straight (') apostrophe variants are both needed because
// lowercasing does not normalize ’ to '.
//
// The tables are package-level and never mutated after init.

var emotionDirectPatterns = []string{
	"it's understandable to feel",
	"it’s understandable to feel",
	"it is understandable to feel",
	"that's completely understandable",
	"that’s completely understandable",
	"that's understandable",
	"that’s understandable",
	"i'm sorry you're feeling",
	"i’m sorry you’re feeling",
	"i am sorry you're feeling",
}

var emotionWords = []string{
	"stressed", "stressful", "worried", "anxious", "overwhelmed", "overwhelming",
}

// emotionAnchorPhrases anchors the quote window when emotion is detected.
// Direct patterns first (more specific), then bare emotion words.
var emotionAnchorPhrases = append(append([]string{}, emotionDirectPatterns...), emotionWords...)

// guardPhrase suppresses an emotion match anywhere in the turn: hypothetical
// "if you feel X" advice is not an acknowledgement of the user's state.
const guardPhrase = "if you feel"

var invitationPhrases = []string{
	"if you'd like",
	"if you’d like",
	"if you want",
	"let me know",
	"feel free",
	"you can share",
	"tell me",
	"if you tell me",
}

var firstPersonSupportPhrases = []string{
	"i can help",
	"i'm here to help",
	"i’m here to help",
	"i am here to help",
	"happy to help",
	"i'm here",
	"i’m here",
	"i am here",
}

var relationalPhrases = []string{
	"you're not alone",
	"you are not alone",
	"you don't have to go through this alone",
	"you don’t have to go through this alone",
	"i'm here to help",
	"i’m here to help",
	"i am here to help",
	"i'm here for you",
	"i’m here for you",
	"i am here for you",
	"i can stay with you",
	"stay with you through this",
}

// planListOpeners are the structural markers a numbered plan starts with.
// Matched against original-cased text; a bare inline "1." must not match.
var planListOpeners = []string{"\n1.", "\n1)", "\n**1."}
