package duckdb

import (
	"log/slog"

	"github.com/leapstack-labs/leapfrag/pkg/adapter"

	// Verified fragments are rendered with the duckdb dialect.
	_ "github.com/leapstack-labs/leapfrag/pkg/dialects/duckdb"
)

func init() {
	adapter.Register("duckdb", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
