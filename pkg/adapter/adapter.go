// Package adapter connects rendered fragments to real database engines.
//
// An Adapter expands the {@} placeholder with a table alias, embeds the
// fragment in a statement against a configured table and asks the engine to
// plan it with EXPLAIN. This catches fragments that render but do not parse,
// and columns that do not exist.
//
// Concrete adapter implementations are in pkg/adapters/ subdirectories.
//
// Core types (Config, Column, Metadata, Rows) are defined in pkg/core.
// This package re-exports them via type aliases.
package adapter

import (
	"context"

	"github.com/leapstack-labs/leapfrag/pkg/core"
)

type (
	// Config is an alias for core.AdapterConfig.
	Config = core.AdapterConfig

	// Column is an alias for core.Column.
	Column = core.Column

	// Metadata is an alias for core.TableMetadata.
	Metadata = core.TableMetadata

	// Rows is an alias for core.Rows.
	Rows = core.Rows
)

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	core.Verifier

	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Exec executes a SQL statement that doesn't return rows.
	Exec(ctx context.Context, sql string) error

	// Query executes a SQL statement that returns rows.
	Query(ctx context.Context, sql string) (*Rows, error)

	// VerifyTable verifies rendered against table instead of the configured one.
	VerifyTable(ctx context.Context, table, rendered string, kind core.FragmentKind) error

	// GetTableMetadata retrieves metadata for a specified table.
	GetTableMetadata(ctx context.Context, table string) (*Metadata, error)

	// LoadCSV loads data from a CSV file into a table, replacing it.
	// Used to stage a scratch table for verification.
	LoadCSV(ctx context.Context, tableName string, filePath string) error

	// DialectName returns the name of the SQL dialect this engine speaks.
	DialectName() string
}
