package duckdb

//go:generate go run ../../../scripts/gendialect -out=words_gen.go

import "github.com/leapstack-labs/leapfrag/pkg/dialect"

func init() {
	dialect.Register(DuckDB)
}

// DuckDB is the DuckDB dialect.
var DuckDB = dialect.New(Config).Build()
