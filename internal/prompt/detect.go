package prompt

import "strings"

// intentRules map user-message keywords to a more specific prompt type
// when the caller asked for "general". Rules are evaluated in order and
// the first match wins; this is a best-effort heuristic, not a
// guarantee, and the keyword lists may be revisited.
var intentRules = []struct {
	keywords []string
	ptype    Type
}{
	{[]string{"fix", "error", "bug", "debug", "problem", "broken", "fail"}, TypeProblemSolving},
	{[]string{"implement", "create", "build", "add", "code"}, TypeTaskFocused},
	{[]string{"explain", "how does", "how do", "what is", "why"}, TypeExplanation},
	{[]string{"review", "check", "examine"}, TypeCodeReview},
}

// DetectIntent inspects the user message for intent keywords. No match
// falls back to the neutral general type.
func DetectIntent(userMessage string) Type {
	msg := strings.ToLower(userMessage)
	if msg == "" {
		return TypeGeneral
	}
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(msg, kw) {
				return rule.ptype
			}
		}
	}
	return TypeGeneral
}
