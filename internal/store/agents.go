package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/contextmem/contextmem/internal/model"
)

// RegisterAgent creates an agent row, or returns the existing one when
// the (project, name) pair was registered before. Registration is
// idempotent so repeated registrations never double-count stats.
func (s *SQLiteStore) RegisterAgent(ctx context.Context, p RegisterParams) (*model.Agent, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("%w: name is required", model.ErrValidation)
	}
	if p.ProjectID == "" {
		return nil, fmt.Errorf("%w: project_id is required", model.ErrValidation)
	}
	agentType := p.AgentType
	if agentType == "" {
		agentType = "other"
	}

	if existing, err := s.findAgentByName(ctx, p.ProjectID, p.Name); err == nil {
		return existing, nil
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	agent := &model.Agent{
		ID:        uuid.NewString(),
		Name:      p.Name,
		AgentType: agentType,
		ProjectID: p.ProjectID,
		CreatedAt: now,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO agents (id, project_id, name, agent_type, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (project_id, name) DO NOTHING`,
		agent.ID, agent.ProjectID, agent.Name, agent.AgentType, now.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("%w: insert agent: %v", model.ErrInternal, err)
	}

	// A concurrent registration may have won the insert; re-read so
	// both callers observe the same id.
	return s.findAgentByName(ctx, p.ProjectID, p.Name)
}

// AgentStats returns push/query counters for a registered agent along
// with the project's memory type histogram.
func (s *SQLiteStore) AgentStats(ctx context.Context, agentID, projectID string) (*model.AgentStats, error) {
	if agentID == "" {
		return nil, fmt.Errorf("%w: agent_id is required", model.ErrValidation)
	}
	if projectID == "" {
		return nil, fmt.Errorf("%w: project_id is required", model.ErrValidation)
	}

	st := &model.AgentStats{MemoryTypes: map[string]int{}}
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, project_id, name, agent_type, push_count, query_count, created_at
		 FROM agents WHERE id = ? AND project_id = ?`,
		agentID, projectID).Scan(
		&st.Agent.ID, &st.Agent.ProjectID, &st.Agent.Name, &st.Agent.AgentType,
		&st.Pushes, &st.Queries, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: agent %s in project %s", model.ErrNotFound, agentID, projectID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read agent: %v", model.ErrInternal, err)
	}
	st.Agent.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)

	rows, err := s.db.QueryContext(ctx,
		`SELECT memory_type, COUNT(*) FROM memories WHERE project_id = ? GROUP BY memory_type`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: count memory types: %v", model.ErrInternal, err)
	}
	defer rows.Close()
	for rows.Next() {
		var memType string
		var count int
		if err := rows.Scan(&memType, &count); err != nil {
			return nil, fmt.Errorf("%w: scan type count: %v", model.ErrInternal, err)
		}
		st.MemoryTypes[memType] = count
	}

	return st, rows.Err()
}

func (s *SQLiteStore) findAgentByName(ctx context.Context, projectID, name string) (*model.Agent, error) {
	var a model.Agent
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, project_id, name, agent_type, created_at
		 FROM agents WHERE project_id = ? AND name = ?`,
		projectID, name).Scan(&a.ID, &a.ProjectID, &a.Name, &a.AgentType, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: agent %q in project %s", model.ErrNotFound, name, projectID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read agent: %v", model.ErrInternal, err)
	}
	a.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &a, nil
}
