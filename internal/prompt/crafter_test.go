package prompt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contextmem/contextmem/internal/model"
	"github.com/contextmem/contextmem/internal/store"
	"github.com/contextmem/contextmem/internal/summary"
)

func newTestCrafter(t *testing.T) (*Crafter, *store.SQLiteStore) {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return New(summary.New(s), 10), s
}

func TestCraftNoContext(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCrafter(t)

	out, err := c.Craft(ctx, Params{ProjectID: "fresh", UserMessage: "hello", PromptType: "general"})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Contains(t, out, "No prior context exists")
	assert.Contains(t, out, "hello")
	assert.NotContains(t, out, "Response Guidelines")
}

func TestCraftWithContextIncludesDigestAndMessage(t *testing.T) {
	ctx := context.Background()
	c, s := newTestCrafter(t)

	s.Push(ctx, store.PushParams{ProjectID: "p1", Content: "uses sqlite", MemoryType: "fact", Priority: "high"})

	out, err := c.Craft(ctx, Params{ProjectID: "p1", UserMessage: "continue the migration", PromptType: "continuation"})
	require.NoError(t, err)
	assert.Contains(t, out, "Context Awareness")
	assert.Contains(t, out, "uses sqlite")
	assert.Contains(t, out, "continue the migration")
	assert.Contains(t, out, "Response Guidelines")
}

func TestCraftAutoDetectsDebugIntent(t *testing.T) {
	ctx := context.Background()
	c, s := newTestCrafter(t)

	s.Push(ctx, store.PushParams{ProjectID: "p1", Content: "service crashes on boot", MemoryType: "task"})

	out, err := c.Craft(ctx, Params{ProjectID: "p1", UserMessage: "help me debug", PromptType: "general"})
	require.NoError(t, err)
	assert.Contains(t, out, "Problem-Solving")
}

func TestCraftUnrecognizedTypeFallsBackToGeneral(t *testing.T) {
	ctx := context.Background()
	c, s := newTestCrafter(t)

	s.Push(ctx, store.PushParams{ProjectID: "p1", Content: "a fact"})

	out, err := c.Craft(ctx, Params{ProjectID: "p1", UserMessage: "just chatting", PromptType: "extreme_vibes"})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Contains(t, out, "AI Assistant with Context")
}

func TestCraftAlwaysNonEmpty(t *testing.T) {
	ctx := context.Background()
	c, s := newTestCrafter(t)

	types := []string{"continuation", "task_focused", "problem_solving", "debugging",
		"explanation", "code_review", "general", "", "???"}

	// Both with and without stored context.
	for _, pt := range types {
		out, err := c.Craft(ctx, Params{ProjectID: "empty", UserMessage: "", PromptType: pt})
		require.NoError(t, err)
		assert.NotEmpty(t, out)
	}

	s.Push(ctx, store.PushParams{ProjectID: "p1", Content: "known fact"})
	for _, pt := range types {
		out, err := c.Craft(ctx, Params{ProjectID: "p1", UserMessage: "", PromptType: pt})
		require.NoError(t, err)
		assert.NotEmpty(t, out)
	}
}

func TestCraftFocusAreasFilterDigest(t *testing.T) {
	ctx := context.Background()
	c, s := newTestCrafter(t)

	s.Push(ctx, store.PushParams{ProjectID: "p1", Content: "ui detail", Tags: []string{"ui"}})
	s.Push(ctx, store.PushParams{ProjectID: "p1", Content: "db detail", Tags: []string{"db"}})

	out, err := c.Craft(ctx, Params{ProjectID: "p1", UserMessage: "work on the frontend", PromptType: "continuation", FocusAreas: []string{"ui"}})
	require.NoError(t, err)
	assert.Contains(t, out, "ui detail")
	assert.NotContains(t, out, "db detail")
	assert.Contains(t, out, "Focus Areas: ui")
}

func TestCraftMissingProject(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCrafter(t)

	_, err := c.Craft(ctx, Params{UserMessage: "hi"})
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestDetectIntent(t *testing.T) {
	cases := map[string]Type{
		"help me debug":             TypeProblemSolving,
		"there is an error in prod": TypeProblemSolving,
		"implement the parser":      TypeTaskFocused,
		"explain this function":     TypeExplanation,
		"how does the cache work":   TypeExplanation,
		"review my changes":         TypeCodeReview,
		"good morning":              TypeGeneral,
		"":                          TypeGeneral,
	}
	for msg, want := range cases {
		assert.Equal(t, want, DetectIntent(msg), "message %q", msg)
	}
}

func TestParseType(t *testing.T) {
	assert.Equal(t, TypeDebugging, ParseType("debugging"))
	assert.Equal(t, TypeGeneral, ParseType("general"))
	assert.Equal(t, TypeGeneral, ParseType("nonsense"))
	assert.Equal(t, TypeGeneral, ParseType(""))
}
