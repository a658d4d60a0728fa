package summary

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contextmem/contextmem/internal/model"
	"github.com/contextmem/contextmem/internal/store"
)

func newTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSummarizeEmptyProjectReturnsSentinel(t *testing.T) {
	ctx := context.Background()
	sum := New(newTestStore(t))

	d, err := sum.Summarize(ctx, Params{ProjectID: "fresh", MaxMemories: 10, IncludeRecent: true})
	require.NoError(t, err)
	assert.True(t, d.Empty())
	assert.Equal(t, NoContextSentinel, d.Text)
}

func TestSummarizeRanksPriorityThenRecency(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	sum := New(s)

	s.Push(ctx, store.PushParams{ProjectID: "p1", Content: "pref A", MemoryType: "preference", Priority: "high", Tags: []string{"ui"}})
	s.Push(ctx, store.PushParams{ProjectID: "p1", Content: "fact B", MemoryType: "fact", Priority: "medium", Tags: []string{"python"}})
	s.Push(ctx, store.PushParams{ProjectID: "p1", Content: "task C", MemoryType: "task", Priority: "high", Tags: []string{"feature"}})

	d, err := sum.Summarize(ctx, Params{ProjectID: "p1", MaxMemories: 2, IncludeRecent: true})
	require.NoError(t, err)
	require.Len(t, d.Records, 2)

	// Both high-priority entries win over the medium one; within the
	// high band the most recent comes first.
	assert.Equal(t, "task C", d.Records[0].Content)
	assert.Equal(t, "pref A", d.Records[1].Content)
	assert.NotContains(t, d.Text, "fact B")
}

func TestSummarizeRespectsMaxMemories(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	sum := New(s)

	for i := 0; i < 8; i++ {
		s.Push(ctx, store.PushParams{ProjectID: "p1", Content: "entry"})
	}

	d, err := sum.Summarize(ctx, Params{ProjectID: "p1", MaxMemories: 3, IncludeRecent: true})
	require.NoError(t, err)
	assert.Len(t, d.Records, 3)
}

func TestSummarizeFocusAreas(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	sum := New(s)

	s.Push(ctx, store.PushParams{ProjectID: "p1", Content: "ui pref", Tags: []string{"ui"}})
	s.Push(ctx, store.PushParams{ProjectID: "p1", Content: "backend fact", Tags: []string{"go"}})

	d, err := sum.Summarize(ctx, Params{ProjectID: "p1", MaxMemories: 10, FocusAreas: []string{"ui"}})
	require.NoError(t, err)
	require.Len(t, d.Records, 1)
	assert.Equal(t, "ui pref", d.Records[0].Content)

	// Focus areas matching nothing behave like an empty project.
	d, err = sum.Summarize(ctx, Params{ProjectID: "p1", MaxMemories: 10, FocusAreas: []string{"rust"}})
	require.NoError(t, err)
	assert.Equal(t, NoContextSentinel, d.Text)
}

func TestSummarizeRenderGroupsByType(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	sum := New(s)

	s.Push(ctx, store.PushParams{ProjectID: "p1", Content: "pref A", MemoryType: "preference", Priority: "high", Tags: []string{"ui"}})
	s.Push(ctx, store.PushParams{ProjectID: "p1", Content: "fact B", MemoryType: "fact"})

	d, err := sum.Summarize(ctx, Params{ProjectID: "p1", MaxMemories: 10, IncludeRecent: true})
	require.NoError(t, err)

	assert.Contains(t, d.Text, "Context Summary for Project: p1")
	assert.Contains(t, d.Text, "**Facts:**")
	assert.Contains(t, d.Text, "**Preferences:**")
	assert.Contains(t, d.Text, "• [HIGH] pref A")
	assert.Contains(t, d.Text, "Tags: ui")
	assert.Contains(t, d.Text, "Key Priorities")

	// Canonical group order: facts before preferences.
	assert.Less(t, strings.Index(d.Text, "**Facts:**"), strings.Index(d.Text, "**Preferences:**"))
}

func TestSummarizeDeterministic(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	sum := New(s)

	s.Push(ctx, store.PushParams{ProjectID: "p1", Content: "one", Priority: "high"})
	s.Push(ctx, store.PushParams{ProjectID: "p1", Content: "two", Priority: "low"})
	s.Push(ctx, store.PushParams{ProjectID: "p1", Content: "three", Priority: "high"})

	first, err := sum.Summarize(ctx, Params{ProjectID: "p1", MaxMemories: 10, IncludeRecent: true})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := sum.Summarize(ctx, Params{ProjectID: "p1", MaxMemories: 10, IncludeRecent: true})
		require.NoError(t, err)
		assert.Equal(t, first.Text, again.Text)
	}
}

func TestSummarizeValidation(t *testing.T) {
	ctx := context.Background()
	sum := New(newTestStore(t))

	_, err := sum.Summarize(ctx, Params{MaxMemories: 10})
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = sum.Summarize(ctx, Params{ProjectID: "p1", MaxMemories: 0})
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestSummarizeTruncatesLongContent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	sum := New(s)

	long := strings.Repeat("x", 500)
	s.Push(ctx, store.PushParams{ProjectID: "p1", Content: long})

	d, err := sum.Summarize(ctx, Params{ProjectID: "p1", MaxMemories: 5})
	require.NoError(t, err)
	assert.Contains(t, d.Text, strings.Repeat("x", 200)+"...")
	assert.NotContains(t, d.Text, strings.Repeat("x", 201))
}
