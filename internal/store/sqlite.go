package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/contextmem/contextmem/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
// WAL mode keeps writers serialized while readers proceed concurrently,
// so a query never observes a partially written record; busy_timeout
// queues a second writer instead of failing it with SQLITE_BUSY.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{db: db}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// newID returns a ULID. ulid.Make uses a locked entropy source, so
// overlapping pushes are safe.
func (s *SQLiteStore) newID() string {
	return ulid.Make().String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS memories (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL,
		content     TEXT NOT NULL,
		memory_type TEXT NOT NULL DEFAULT 'fact',
		priority    TEXT NOT NULL DEFAULT 'medium',
		tags        TEXT,
		created_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_memories_project ON memories(project_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_memories_project_type ON memories(project_id, memory_type);
	CREATE INDEX IF NOT EXISTS idx_memories_project_priority ON memories(project_id, priority);

	CREATE TABLE IF NOT EXISTS agents (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL,
		name        TEXT NOT NULL,
		agent_type  TEXT NOT NULL DEFAULT 'other',
		push_count  INTEGER NOT NULL DEFAULT 0,
		query_count INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		UNIQUE (project_id, name)
	);
	CREATE INDEX IF NOT EXISTS idx_agents_project ON agents(project_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Push persists a new record. The record id and created_at are assigned
// here; callers never supply them.
func (s *SQLiteStore) Push(ctx context.Context, p PushParams) (*model.MemoryRecord, error) {
	content := strings.TrimSpace(p.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", model.ErrValidation)
	}
	if p.ProjectID == "" {
		return nil, fmt.Errorf("%w: project_id is required", model.ErrValidation)
	}

	priority := p.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidPriorities[priority] {
		return nil, fmt.Errorf("%w: unknown priority %q", model.ErrValidation, priority)
	}
	memType := model.NormalizeType(p.MemoryType)

	now := time.Now().UTC()
	id := s.newID()

	var tagsJSON *string
	if len(p.Tags) > 0 {
		b, _ := json.Marshal(p.Tags)
		js := string(b)
		tagsJSON = &js
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %v", model.ErrInternal, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO memories (id, project_id, content, memory_type, priority, tags, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, p.ProjectID, content, memType, priority, tagsJSON, now.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("%w: insert memory: %v", model.ErrInternal, err)
	}

	// Attribute the push to the owning agent when resolvable. An
	// unknown agent id is not an error.
	if p.AgentID != "" {
		_, err = tx.ExecContext(ctx,
			`UPDATE agents SET push_count = push_count + 1 WHERE id = ? AND project_id = ?`,
			p.AgentID, p.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("%w: update agent counter: %v", model.ErrInternal, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", model.ErrInternal, err)
	}

	return &model.MemoryRecord{
		ID:         id,
		ProjectID:  p.ProjectID,
		Content:    content,
		MemoryType: memType,
		Priority:   priority,
		Tags:       p.Tags,
		CreatedAt:  now,
	}, nil
}

// Query returns records matching all supplied filters, scoped to
// exactly one project. Text matches as a case-insensitive substring of
// content; tag filters require every supplied tag to be present.
func (s *SQLiteStore) Query(ctx context.Context, p QueryParams) ([]model.MemoryRecord, error) {
	if p.ProjectID == "" {
		return nil, fmt.Errorf("%w: project_id is required", model.ErrValidation)
	}
	limit := p.Limit
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", model.ErrValidation)
	}
	if limit == 0 {
		limit = DefaultQueryLimit
	}

	where := []string{"project_id = ?"}
	args := []interface{}{p.ProjectID}

	if p.MemoryType != "" {
		where = append(where, "memory_type = ?")
		args = append(args, p.MemoryType)
	}
	for _, tag := range p.Tags {
		// Exact element match against the JSON tags array; a LIKE
		// pattern would let % or _ in a tag over-match.
		where = append(where, "(tags IS NOT NULL AND EXISTS (SELECT 1 FROM json_each(tags) WHERE json_each.value = ?))")
		args = append(args, tag)
	}
	if p.Text != "" {
		where = append(where, "instr(lower(content), lower(?)) > 0")
		args = append(args, p.Text)
	}

	query := fmt.Sprintf(`
		SELECT id, project_id, content, memory_type, priority, tags, created_at
		FROM memories
		WHERE %s
		ORDER BY created_at DESC, id ASC`, strings.Join(where, " AND "))
	if limit != NoLimit {
		query += "\n\t\tLIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query memories: %v", model.ErrInternal, err)
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate memories: %v", model.ErrInternal, err)
	}

	if p.AgentID != "" {
		s.db.ExecContext(ctx,
			`UPDATE agents SET query_count = query_count + 1 WHERE id = ? AND project_id = ?`,
			p.AgentID, p.ProjectID)
	}

	return records, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanMemory(row scanner) (model.MemoryRecord, error) {
	var m model.MemoryRecord
	var tagsJSON sql.NullString
	var createdAt string

	err := row.Scan(&m.ID, &m.ProjectID, &m.Content, &m.MemoryType, &m.Priority, &tagsJSON, &createdAt)
	if err != nil {
		return m, err
	}

	m.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	if tagsJSON.Valid {
		json.Unmarshal([]byte(tagsJSON.String), &m.Tags)
	}

	return m, nil
}
