// Package prompt turns a context digest plus a user message and a
// declared intent into an instruction block for an AI assistant.
package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/contextmem/contextmem/internal/summary"
)

// Type is a prompt intent.
type Type string

// Recognized prompt types. Anything else degrades to TypeGeneral; an
// unrecognized value is a documented policy, not an error.
const (
	TypeContinuation   Type = "continuation"
	TypeTaskFocused    Type = "task_focused"
	TypeProblemSolving Type = "problem_solving"
	TypeDebugging      Type = "debugging"
	TypeExplanation    Type = "explanation"
	TypeCodeReview     Type = "code_review"
	TypeGeneral        Type = "general"
)

// ParseType maps a raw prompt type string to a known Type.
func ParseType(s string) Type {
	switch Type(s) {
	case TypeContinuation, TypeTaskFocused, TypeProblemSolving, TypeDebugging,
		TypeExplanation, TypeCodeReview, TypeGeneral:
		return Type(s)
	default:
		return TypeGeneral
	}
}

// Params holds parameters for crafting a prompt.
type Params struct {
	ProjectID   string
	UserMessage string
	PromptType  string
	FocusAreas  []string
	AgentID     string
}

// Crafter composes assistant-facing prompts from context digests.
type Crafter struct {
	summarizer  *summary.Summarizer
	maxMemories int
}

// New returns a Crafter backed by the given summarizer. maxMemories
// bounds the digest embedded in each prompt; values below one fall
// back to 10.
func New(s *summary.Summarizer, maxMemories int) *Crafter {
	if maxMemories < 1 {
		maxMemories = 10
	}
	return &Crafter{summarizer: s, maxMemories: maxMemories}
}

// Craft builds the final prompt text. The digest is fetched with a
// fixed memory budget and recency bias; when the project has no
// context, the result states so and carries the user message without a
// guideline section. Output is always non-empty.
func (c *Crafter) Craft(ctx context.Context, p Params) (string, error) {
	digest, err := c.summarizer.Summarize(ctx, summary.Params{
		ProjectID:     p.ProjectID,
		MaxMemories:   c.maxMemories,
		IncludeRecent: true,
		FocusAreas:    p.FocusAreas,
		AgentID:       p.AgentID,
	})
	if err != nil {
		return "", err
	}

	if digest.Empty() {
		return noContextPrompt(p.ProjectID, p.UserMessage), nil
	}

	ptype := ParseType(p.PromptType)
	if ptype == TypeGeneral {
		ptype = DetectIntent(p.UserMessage)
	}

	tpl, ok := templates[ptype]
	if !ok {
		// Falling back to the neutral template rather than failing
		// keeps digest data from being dropped on the floor.
		tpl = templates[TypeGeneral]
	}

	msg := p.UserMessage
	if msg == "" {
		msg = "General assistance needed"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", tpl.header)
	fmt.Fprintf(&b, "📋 **Project Context:**\n%s\n\n", digest.Text)
	fmt.Fprintf(&b, "🎯 **Project:** %s\n", p.ProjectID)
	if len(p.FocusAreas) > 0 {
		fmt.Fprintf(&b, "**Focus Areas:** %s\n", strings.Join(p.FocusAreas, ", "))
	}
	fmt.Fprintf(&b, "\n💬 **User Message:** %s\n\n", msg)
	fmt.Fprintf(&b, "**Instructions:** %s\n\n", tpl.instructions)
	b.WriteString("**Response Guidelines:**\n")
	for _, g := range tpl.guidelines {
		fmt.Fprintf(&b, "- %s\n", g)
	}
	fmt.Fprintf(&b, "\n%s", tpl.closing)

	return b.String(), nil
}

func noContextPrompt(projectID, userMessage string) string {
	msg := userMessage
	if msg == "" {
		msg = "General assistance needed"
	}
	return fmt.Sprintf(`🤖 **AI Assistant**

📋 **Project:** %s

No prior context exists for this project.

💬 **User Message:** %s

Proceed with the request directly; ask clarifying questions if needed.`,
		projectID, msg)
}
