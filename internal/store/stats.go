package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath        string         `json:"db_path"`
	DBSizeBytes   int64          `json:"db_size_bytes"`
	TotalMemories int            `json:"total_memories"`
	TotalAgents   int            `json:"total_agents"`
	Projects      []ProjectStats `json:"projects"`
}

// ProjectStats holds per-project counts.
type ProjectStats struct {
	ProjectID string `json:"project_id"`
	Memories  int    `json:"memories"`
	Agents    int    `json:"agents"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM memories`).Scan(&st.TotalMemories)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM agents`).Scan(&st.TotalAgents)

	rows, err := s.db.QueryContext(ctx, `
		SELECT m.project_id, COUNT(*) AS memories,
		       (SELECT COUNT(*) FROM agents a WHERE a.project_id = m.project_id) AS agents
		FROM memories m
		GROUP BY m.project_id ORDER BY memories DESC`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var ps ProjectStats
		rows.Scan(&ps.ProjectID, &ps.Memories, &ps.Agents)
		st.Projects = append(st.Projects, ps)
	}

	return st, rows.Err()
}
