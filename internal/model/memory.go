// Package model defines the core memory data types.
package model

import "time"

// MemoryRecord is a single stored memory entry scoped to a project.
// Records are immutable after insertion.
type MemoryRecord struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	Content    string    `json:"content"`
	MemoryType string    `json:"memory_type"`
	Priority   string    `json:"priority"`
	Tags       []string  `json:"tags,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Agent is a registered caller identity scoped to a project.
type Agent struct {
	ID        string    `json:"agent_id"`
	Name      string    `json:"name"`
	AgentType string    `json:"agent_type"`
	ProjectID string    `json:"project_id"`
	CreatedAt time.Time `json:"created_at"`
}

// AgentStats holds per-agent usage counters plus the project's memory
// type histogram.
type AgentStats struct {
	Agent       Agent          `json:"agent"`
	Pushes      int            `json:"pushes"`
	Queries     int            `json:"queries"`
	MemoryTypes map[string]int `json:"memory_types"`
}

// Memory types. Unknown values are accepted and stored as TypeOther
// rather than rejected.
const (
	TypeFact       = "fact"
	TypePreference = "preference"
	TypeTask       = "task"
	TypeOther      = "other"
)

// Priorities, lowest to highest.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// TypeOrder is the canonical rendering order for memory types.
var TypeOrder = []string{TypeFact, TypePreference, TypeTask, TypeOther}

// ValidPriorities are the allowed priority levels.
var ValidPriorities = map[string]bool{
	PriorityLow:    true,
	PriorityMedium: true,
	PriorityHigh:   true,
}

// NormalizeType maps any memory type string to a known type. Empty
// defaults to fact, unknown values collapse to other.
func NormalizeType(t string) string {
	switch t {
	case TypeFact, TypePreference, TypeTask, TypeOther:
		return t
	case "":
		return TypeFact
	default:
		return TypeOther
	}
}

// PriorityRank orders priorities for ranking: high > medium > low.
func PriorityRank(p string) int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 0
	default:
		return 1
	}
}
