// Package store provides the memory storage interface and SQLite implementation.
package store

import (
	"context"
	"math"

	"github.com/contextmem/contextmem/internal/model"
)

// DefaultQueryLimit caps Query results when no limit is supplied.
const DefaultQueryLimit = 20

// NoLimit disables the Query result cap. Internal callers (the
// summarizer) use it to rank over the full candidate set.
const NoLimit = math.MaxInt32

// PushParams holds parameters for storing a memory record.
type PushParams struct {
	ProjectID  string
	Content    string
	MemoryType string
	Priority   string
	Tags       []string
	AgentID    string // optional; attributes the push to a registered agent
}

// QueryParams holds parameters for querying memory records. All
// supplied filters apply conjunctively.
type QueryParams struct {
	ProjectID  string
	Text       string // case-insensitive substring match against content
	Tags       []string
	MemoryType string
	Limit      int    // 0 means DefaultQueryLimit, NoLimit disables the cap
	AgentID    string // optional; attributes the query to a registered agent
}

// RegisterParams holds parameters for registering an agent.
type RegisterParams struct {
	Name      string
	AgentType string
	ProjectID string
}

// Store defines the project-scoped memory storage interface.
type Store interface {
	// Push persists a new record, assigning its id and created_at.
	Push(ctx context.Context, p PushParams) (*model.MemoryRecord, error)

	// Query returns records matching all supplied filters, newest
	// first, ties broken by id ascending. An empty result is not an
	// error.
	Query(ctx context.Context, p QueryParams) ([]model.MemoryRecord, error)

	// RegisterAgent registers an agent, idempotent on (project, name).
	RegisterAgent(ctx context.Context, p RegisterParams) (*model.Agent, error)

	// AgentStats returns usage counters for a registered agent.
	AgentStats(ctx context.Context, agentID, projectID string) (*model.AgentStats, error)

	// Close closes the store.
	Close() error
}
