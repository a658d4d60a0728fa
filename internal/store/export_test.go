package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImportRoundtrip(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t)

	src.Push(ctx, PushParams{ProjectID: "p1", Content: "pref A", MemoryType: "preference", Priority: "high", Tags: []string{"ui"}})
	src.Push(ctx, PushParams{ProjectID: "p1", Content: "fact B", MemoryType: "fact"})
	src.Push(ctx, PushParams{ProjectID: "p2", Content: "elsewhere"})

	records, err := src.ExportAll(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, records, 2)

	dst := newTestStore(t)
	n, err := dst.Import(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := dst.Query(ctx, QueryParams{ProjectID: "p1", Tags: []string{"ui"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "pref A", got[0].Content)
	assert.Equal(t, "high", got[0].Priority)
}

func TestPurge(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Push(ctx, PushParams{ProjectID: "p1", Content: "gone soon"})
	s.Push(ctx, PushParams{ProjectID: "p1", Content: "also gone"})
	s.Push(ctx, PushParams{ProjectID: "p2", Content: "survivor"})
	s.RegisterAgent(ctx, RegisterParams{Name: "bot", ProjectID: "p1"})

	n, err := s.Purge(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := s.Query(ctx, QueryParams{ProjectID: "p1"})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = s.Query(ctx, QueryParams{ProjectID: "p2"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
