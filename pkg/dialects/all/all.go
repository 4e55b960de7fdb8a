// Package all registers every bundled SQL dialect with pkg/dialect.
package all

import (
	_ "github.com/leapstack-labs/leapfrag/pkg/dialects/ansi"       // ANSI SQL
	_ "github.com/leapstack-labs/leapfrag/pkg/dialects/databricks" // Databricks
	_ "github.com/leapstack-labs/leapfrag/pkg/dialects/duckdb"     // DuckDB
	_ "github.com/leapstack-labs/leapfrag/pkg/dialects/mysql"      // MySQL
	_ "github.com/leapstack-labs/leapfrag/pkg/dialects/oracle"     // Oracle
	_ "github.com/leapstack-labs/leapfrag/pkg/dialects/postgres"   // PostgreSQL
	_ "github.com/leapstack-labs/leapfrag/pkg/dialects/snowflake"  // Snowflake
	_ "github.com/leapstack-labs/leapfrag/pkg/dialects/sqlserver"  // SQL Server
)
