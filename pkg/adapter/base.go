package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/leapfrag/pkg/core"
	"github.com/leapstack-labs/leapfrag/pkg/template"
)

// ErrNotConnected is returned by operations that need an open connection.
var ErrNotConnected = errors.New("database connection not established")

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get standard
// Close, Exec, Query and Verify implementations.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    core.AdapterConfig
	Logger *slog.Logger
}

func (b *BaseSQLAdapter) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		b.logger().Debug("closing database connection")
		return b.DB.Close()
	}
	return nil
}

// Exec executes a SQL statement that doesn't return rows.
func (b *BaseSQLAdapter) Exec(ctx context.Context, sqlStr string) error {
	if b.DB == nil {
		return ErrNotConnected
	}
	_, err := b.DB.ExecContext(ctx, sqlStr)
	if err != nil {
		return fmt.Errorf("failed to execute SQL: %w", err)
	}
	return nil
}

// Query executes a SQL statement that returns rows.
func (b *BaseSQLAdapter) Query(ctx context.Context, sqlStr string) (*core.Rows, error) {
	if b.DB == nil {
		return nil, ErrNotConnected
	}
	//nolint:rowserrcheck // rows.Err() must be checked by caller after iteration completes
	rows, err := b.DB.QueryContext(ctx, sqlStr)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return &core.Rows{Rows: rows}, nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}

// Explain asks the engine to plan stmt without running it.
func (b *BaseSQLAdapter) Explain(ctx context.Context, stmt string) error {
	if b.DB == nil {
		return ErrNotConnected
	}
	rows, err := b.DB.QueryContext(ctx, "EXPLAIN "+stmt)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		// drain the plan
	}
	return rows.Err()
}

// Verify embeds rendered in a statement over the configured table and plans it.
func (b *BaseSQLAdapter) Verify(ctx context.Context, rendered string, kind core.FragmentKind) error {
	return b.VerifyTable(ctx, b.Cfg.Table, rendered, kind)
}

// VerifyTable is Verify over table instead of the configured one.
func (b *BaseSQLAdapter) VerifyTable(ctx context.Context, table, rendered string, kind core.FragmentKind) error {
	stmt, err := BuildStatement(kind, rendered, table, b.Cfg.Alias)
	if err != nil {
		return err
	}

	b.logger().Debug("verifying fragment", slog.String("kind", string(kind)), slog.String("sql", stmt))
	if err := b.Explain(ctx, stmt); err != nil {
		return &VerifyError{Kind: kind, Statement: stmt, Err: err}
	}
	return nil
}

// VerifyError reports a fragment the engine rejected.
type VerifyError struct {
	Kind      core.FragmentKind
	Statement string
	Err       error
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("%s fragment rejected: %v\nstatement: %s", e.Kind, e.Err, e.Statement)
}

func (e *VerifyError) Unwrap() error {
	return e.Err
}

// MissingColumns returns the columns collected from rendered that the table
// does not have. Quoted names are compared without their quotes, and names are
// compared case-insensitively. Nil metadata reports nothing.
func MissingColumns(meta *core.TableMetadata, rendered string) []string {
	if meta == nil {
		return nil
	}
	have := make(map[string]struct{}, len(meta.Columns))
	for _, c := range meta.Columns {
		have[strings.ToLower(c.Name)] = struct{}{}
	}

	var missing []string
	seen := make(map[string]struct{})
	for _, name := range template.CollectColumnNames(rendered) {
		key := strings.ToLower(unquote(name))
		if _, ok := have[key]; ok {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		missing = append(missing, name)
	}
	return missing
}

func unquote(name string) string {
	if len(name) >= 2 {
		switch name[0] {
		case '"', '`':
			if name[len(name)-1] == name[0] {
				return name[1 : len(name)-1]
			}
		case '[':
			if name[len(name)-1] == ']' {
				return name[1 : len(name)-1]
			}
		}
	}
	return name
}

// ParseQualifiedName splits a table reference into schema and name.
// Uses defaultSchema if not specified.
func ParseQualifiedName(table, defaultSchema string) (schema, name string) {
	if parts := strings.Split(table, "."); len(parts) == 2 {
		return parts[0], parts[1]
	}
	return defaultSchema, table
}

// GetTableMetadataCommon provides a shared implementation of GetTableMetadata.
// Uses information_schema.columns; placeholder formats the n-th bind parameter.
func (b *BaseSQLAdapter) GetTableMetadataCommon(ctx context.Context, table, defaultSchema string, placeholder func(n int) string) (*core.TableMetadata, error) {
	if b.DB == nil {
		return nil, ErrNotConnected
	}

	schema, tableName := ParseQualifiedName(table, defaultSchema)

	//nolint:gosec // placeholders are ? or $N
	query := fmt.Sprintf(`
		SELECT
			column_name,
			data_type,
			is_nullable,
			ordinal_position
		FROM information_schema.columns
		WHERE table_schema = %s AND table_name = %s
		ORDER BY ordinal_position
	`, placeholder(1), placeholder(2))

	rows, err := b.DB.QueryContext(ctx, query, schema, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []core.Column
	for rows.Next() {
		var col core.Column
		var nullable string
		if err := rows.Scan(&col.Name, &col.Type, &nullable, &col.Position); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		col.Nullable = nullable == "YES"
		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s not found", table)
	}

	// Get row count
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s.%s", schema, tableName) //nolint:gosec // Table names are from metadata
	var rowCount int64
	if err := b.DB.QueryRowContext(ctx, countQuery).Scan(&rowCount); err != nil {
		// Non-fatal error, just set to 0
		rowCount = 0
	}

	return &core.TableMetadata{
		Schema:   schema,
		Name:     tableName,
		Columns:  columns,
		RowCount: rowCount,
	}, nil
}
