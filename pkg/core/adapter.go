package core

import (
	"context"
	"database/sql"
)

// FragmentKind says where a rendered fragment is used in a statement.
type FragmentKind string

// Fragment kinds.
const (
	KindWhere   FragmentKind = "where"
	KindFormula FragmentKind = "formula"
	KindOrderBy FragmentKind = "order_by"
	KindRead    FragmentKind = "read"
)

// Valid reports whether k is one of the known fragment kinds.
func (k FragmentKind) Valid() bool {
	switch k {
	case KindWhere, KindFormula, KindOrderBy, KindRead:
		return true
	}
	return false
}

// Verifier checks a rendered fragment against a live database engine.
type Verifier interface {
	// Verify expands the placeholder and asks the engine to plan the statement.
	Verify(ctx context.Context, rendered string, kind FragmentKind) error

	// Close closes the underlying connection.
	Close() error
}

// AdapterConfig holds configuration for connecting to a database.
type AdapterConfig struct {
	Type     string            `koanf:"type"` // duckdb, postgres
	Path     string            `koanf:"path"` // duckdb file, ":memory:" when empty
	DSN      string            `koanf:"dsn"`  // overrides Host/Port/Database/Username/Password
	Host     string            `koanf:"host"`
	Port     int               `koanf:"port"`
	Database string            `koanf:"database"`
	Username string            `koanf:"username"`
	Password string            `koanf:"password"`
	Schema   string            `koanf:"schema"`
	Options  map[string]string `koanf:"options"`

	// Params holds adapter-specific configuration (e.g. DuckDB extensions, settings)
	Params map[string]any `koanf:"params"`

	// Table and Alias describe the table fragments are verified against.
	Table string `koanf:"table"`
	Alias string `koanf:"alias"`
}

// Column represents a column in a database table.
type Column struct {
	Name     string
	Type     string
	Nullable bool
	Position int
}

// TableMetadata holds metadata about a database table.
type TableMetadata struct {
	Schema   string
	Name     string
	Columns  []Column
	RowCount int64
}

// Rows wraps sql.Rows for query results.
type Rows struct {
	*sql.Rows
}
