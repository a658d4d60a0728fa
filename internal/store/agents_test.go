package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contextmem/contextmem/internal/model"
)

func TestRegisterAgentIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a1, err := s.RegisterAgent(ctx, RegisterParams{Name: "cursor", AgentType: "cli", ProjectID: "p1"})
	require.NoError(t, err)
	require.NotEmpty(t, a1.ID)

	a2, err := s.RegisterAgent(ctx, RegisterParams{Name: "cursor", AgentType: "cli", ProjectID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, a1.ID, a2.ID)

	// Same name in another project is a distinct agent.
	a3, err := s.RegisterAgent(ctx, RegisterParams{Name: "cursor", AgentType: "cli", ProjectID: "p2"})
	require.NoError(t, err)
	assert.NotEqual(t, a1.ID, a3.ID)
}

func TestRegisterAgentValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.RegisterAgent(ctx, RegisterParams{ProjectID: "p1"})
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = s.RegisterAgent(ctx, RegisterParams{Name: "x"})
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestAgentStatsUnknownAgent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.AgentStats(ctx, "missing", "p1")
	require.ErrorIs(t, err, model.ErrNotFound)

	// Known agent id under the wrong project is still not found.
	a, err := s.RegisterAgent(ctx, RegisterParams{Name: "bot", ProjectID: "p1"})
	require.NoError(t, err)
	_, err = s.AgentStats(ctx, a.ID, "p2")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestAgentCountersAccumulate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a, err := s.RegisterAgent(ctx, RegisterParams{Name: "bot", AgentType: "cli", ProjectID: "p1"})
	require.NoError(t, err)

	_, err = s.Push(ctx, PushParams{ProjectID: "p1", Content: "one", AgentID: a.ID})
	require.NoError(t, err)
	_, err = s.Push(ctx, PushParams{ProjectID: "p1", Content: "two", MemoryType: "task", AgentID: a.ID})
	require.NoError(t, err)

	_, err = s.Query(ctx, QueryParams{ProjectID: "p1", AgentID: a.ID})
	require.NoError(t, err)

	st, err := s.AgentStats(ctx, a.ID, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, st.Pushes)
	assert.Equal(t, 1, st.Queries)
	assert.Equal(t, map[string]int{"fact": 1, "task": 1}, st.MemoryTypes)

	// Re-registering must not reset or double-count anything.
	_, err = s.RegisterAgent(ctx, RegisterParams{Name: "bot", AgentType: "cli", ProjectID: "p1"})
	require.NoError(t, err)
	st, err = s.AgentStats(ctx, a.ID, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, st.Pushes)
	assert.Equal(t, 1, st.Queries)
}

func TestPushWithUnknownAgentStillSucceeds(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	rec, err := s.Push(ctx, PushParams{ProjectID: "p1", Content: "orphan push", AgentID: "nobody"})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
}
