package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const renderColumns = `id, dialect, input, output, columns, hash, source, created_at`

// SaveRender inserts a render. ID, Hash and CreatedAt are filled in when empty.
func (s *SQLiteStore) SaveRender(ctx context.Context, r *Render) error {
	if s.db == nil {
		return errNotOpened
	}

	if r.ID == "" {
		r.ID = generateID()
	}
	if r.Hash == "" {
		r.Hash = RenderHash(r.Dialect, r.Input)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if r.Columns == nil {
		r.Columns = []string{}
	}

	columns, err := json.Marshal(r.Columns)
	if err != nil {
		return fmt.Errorf("failed to encode columns: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO renders (`+renderColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Dialect, r.Input, r.Output, string(columns), r.Hash, r.Source, r.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to save render: %w", err)
	}

	s.logger.Debug("render saved",
		slog.String("id", r.ID),
		slog.String("dialect", r.Dialect),
		slog.Int("columns", len(r.Columns)))
	return nil
}

// GetRender retrieves a render by ID.
func (s *SQLiteStore) GetRender(ctx context.Context, id string) (*Render, error) {
	if s.db == nil {
		return nil, errNotOpened
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+renderColumns+` FROM renders WHERE id = ?`, id)
	r, err := scanRender(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get render: %w", err)
	}
	return r, nil
}

// FindRender returns the most recent render of input in dialect.
func (s *SQLiteStore) FindRender(ctx context.Context, dialect, input string) (*Render, error) {
	if s.db == nil {
		return nil, errNotOpened
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+renderColumns+` FROM renders WHERE hash = ? ORDER BY created_at DESC LIMIT 1`,
		RenderHash(dialect, input),
	)
	r, err := scanRender(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find render: %w", err)
	}
	return r, nil
}

// ListRenders returns the most recent renders, newest first.
// A limit of zero or less returns everything.
func (s *SQLiteStore) ListRenders(ctx context.Context, limit int) ([]*Render, error) {
	if s.db == nil {
		return nil, errNotOpened
	}
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+renderColumns+` FROM renders ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list renders: %w", err)
	}
	defer rows.Close()

	var renders []*Render
	for rows.Next() {
		r, err := scanRender(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan render: %w", err)
		}
		renders = append(renders, r)
	}
	return renders, rows.Err()
}

// DeleteRender removes a render by ID.
func (s *SQLiteStore) DeleteRender(ctx context.Context, id string) error {
	if s.db == nil {
		return errNotOpened
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM renders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete render: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Stats summarizes the render history.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	if s.db == nil {
		return nil, errNotOpened
	}

	stats := &Stats{Dialects: make(map[string]int)}

	var first, last sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), MIN(created_at), MAX(created_at) FROM renders`,
	).Scan(&stats.Renders, &first, &last)
	if err != nil {
		return nil, fmt.Errorf("failed to count renders: %w", err)
	}
	if first.Valid {
		t := time.UnixMilli(first.Int64).UTC()
		stats.FirstSeen = &t
	}
	if last.Valid {
		t := time.UnixMilli(last.Int64).UTC()
		stats.LastSeen = &t
	}

	rows, err := s.db.QueryContext(ctx, `SELECT dialect, COUNT(*) FROM renders GROUP BY dialect`)
	if err != nil {
		return nil, fmt.Errorf("failed to count dialects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("failed to scan dialect count: %w", err)
		}
		stats.Dialects[name] = n
	}
	return stats, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRender(row rowScanner) (*Render, error) {
	r := &Render{}
	var columns string
	var createdAt int64

	if err := row.Scan(&r.ID, &r.Dialect, &r.Input, &r.Output, &columns, &r.Hash, &r.Source, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(columns), &r.Columns); err != nil {
		return nil, fmt.Errorf("failed to decode columns: %w", err)
	}
	r.CreatedAt = time.UnixMilli(createdAt).UTC()
	return r, nil
}
