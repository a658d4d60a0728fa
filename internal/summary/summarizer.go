// Package summary derives bounded, ranked digests of a project's
// memories for injection into a conversation.
package summary

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/contextmem/contextmem/internal/model"
	"github.com/contextmem/contextmem/internal/store"
)

// NoContextSentinel is the exact digest text for a project with no
// matching memories. Other components key off this string; it must be
// preserved verbatim.
const NoContextSentinel = "No previous context found"

const (
	entryExcerptLen    = 200
	priorityExcerptLen = 150
	keyPriorityCount   = 3
)

// Params holds parameters for building a context digest.
type Params struct {
	ProjectID     string
	MaxMemories   int
	IncludeRecent bool     // bias ordering toward recency within a priority band
	FocusAreas    []string // tag filter; a candidate must carry every focus area
	AgentID       string   // optional; attributes the read to a registered agent
}

// Digest is the derived, bounded view of a project's memories. It is
// never persisted.
type Digest struct {
	ProjectID string
	Records   []model.MemoryRecord
	Text      string
}

// Empty reports whether the digest found no memories.
func (d *Digest) Empty() bool {
	return len(d.Records) == 0
}

// Summarizer ranks and renders a project's memories.
type Summarizer struct {
	store store.Store
}

// New returns a Summarizer backed by the given store.
func New(s store.Store) *Summarizer {
	return &Summarizer{store: s}
}

// Summarize builds a digest of at most MaxMemories records. Ranking is
// deterministic: priority first (high > medium > low), then recency
// when IncludeRecent is set, ties broken by id ascending.
func (s *Summarizer) Summarize(ctx context.Context, p Params) (*Digest, error) {
	if p.ProjectID == "" {
		return nil, fmt.Errorf("%w: project_id is required", model.ErrValidation)
	}
	if p.MaxMemories <= 0 {
		return nil, fmt.Errorf("%w: max_memories must be positive", model.ErrValidation)
	}

	candidates, err := s.store.Query(ctx, store.QueryParams{
		ProjectID: p.ProjectID,
		Tags:      p.FocusAreas,
		Limit:     store.NoLimit,
		AgentID:   p.AgentID,
	})
	if err != nil {
		return nil, err
	}

	d := &Digest{ProjectID: p.ProjectID}
	if len(candidates) == 0 {
		d.Text = NoContextSentinel
		return d, nil
	}

	// The store returns newest-first with id tie-breaks; a stable sort
	// on priority alone preserves that order when recency bias is off.
	sort.SliceStable(candidates, func(i, j int) bool {
		ri, rj := model.PriorityRank(candidates[i].Priority), model.PriorityRank(candidates[j].Priority)
		if ri != rj {
			return ri > rj
		}
		if !p.IncludeRecent {
			return false
		}
		if !candidates[i].CreatedAt.Equal(candidates[j].CreatedAt) {
			return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
		}
		return candidates[i].ID < candidates[j].ID
	})

	if len(candidates) > p.MaxMemories {
		candidates = candidates[:p.MaxMemories]
	}
	d.Records = candidates
	d.Text = render(p.ProjectID, candidates)
	return d, nil
}

// render produces the digest block: entries grouped by memory type in
// canonical order, then a short section of high-priority highlights.
func render(projectID string, records []model.MemoryRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 **Context Summary for Project: %s**\n", projectID)
	fmt.Fprintf(&b, "Found %d relevant memories:\n\n", len(records))

	byType := map[string][]model.MemoryRecord{}
	for _, m := range records {
		byType[m.MemoryType] = append(byType[m.MemoryType], m)
	}

	for _, memType := range model.TypeOrder {
		group := byType[memType]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "**%ss:**\n", titleCase(memType))
		for _, m := range group {
			fmt.Fprintf(&b, "• [%s] %s\n", strings.ToUpper(m.Priority), excerpt(m.Content, entryExcerptLen))
			if len(m.Tags) > 0 {
				fmt.Fprintf(&b, "  Tags: %s\n", strings.Join(m.Tags, ", "))
			}
		}
		b.WriteString("\n")
	}

	var high []model.MemoryRecord
	for _, m := range records {
		if m.Priority == model.PriorityHigh {
			high = append(high, m)
		}
	}
	if len(high) > 0 {
		b.WriteString("**🎯 Key Priorities:**\n")
		if len(high) > keyPriorityCount {
			high = high[:keyPriorityCount]
		}
		for _, m := range high {
			fmt.Fprintf(&b, "• %s\n", excerpt(m.Content, priorityExcerptLen))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func excerpt(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
