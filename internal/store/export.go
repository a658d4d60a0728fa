package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/contextmem/contextmem/internal/model"
)

// ExportAll returns all memories, optionally filtered by project.
// Intended for administrative backup via the CLI.
func (s *SQLiteStore) ExportAll(ctx context.Context, projectID string) ([]model.MemoryRecord, error) {
	where := []string{"1=1"}
	args := []interface{}{}

	if projectID != "" {
		where = append(where, "project_id = ?")
		args = append(args, projectID)
	}

	query := `SELECT id, project_id, content, memory_type, priority, tags, created_at
	          FROM memories WHERE ` + strings.Join(where, " AND ") + ` ORDER BY project_id, created_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: export: %v", model.ErrInternal, err)
	}
	defer rows.Close()

	var records []model.MemoryRecord
	for rows.Next() {
		m, err := scanMemory(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan memory: %v", model.ErrInternal, err)
		}
		records = append(records, m)
	}
	return records, rows.Err()
}

// Import stores records from an export. Ids and timestamps are
// reassigned; imported records count as fresh pushes.
func (s *SQLiteStore) Import(ctx context.Context, records []model.MemoryRecord) (int, error) {
	imported := 0
	for _, m := range records {
		_, err := s.Push(ctx, PushParams{
			ProjectID:  m.ProjectID,
			Content:    m.Content,
			MemoryType: m.MemoryType,
			Priority:   m.Priority,
			Tags:       m.Tags,
		})
		if err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

// Purge hard-deletes every memory and agent belonging to a project.
// This is the administrative escape hatch; the tool surface exposes no
// delete operation.
func (s *SQLiteStore) Purge(ctx context.Context, projectID string) (int, error) {
	if projectID == "" {
		return 0, fmt.Errorf("%w: project_id is required", model.ErrValidation)
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM memories WHERE project_id = ?`, projectID)
	if err != nil {
		return 0, fmt.Errorf("%w: purge memories: %v", model.ErrInternal, err)
	}
	n, _ := res.RowsAffected()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM agents WHERE project_id = ?`, projectID); err != nil {
		return int(n), fmt.Errorf("%w: purge agents: %v", model.ErrInternal, err)
	}
	return int(n), nil
}
