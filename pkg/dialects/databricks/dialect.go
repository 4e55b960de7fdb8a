package databricks

import "github.com/leapstack-labs/leapfrag/pkg/dialect"

func init() {
	dialect.Register(Databricks)
}

// Databricks is the Databricks SQL dialect.
// Identifiers are quoted with backticks, so backtick-quoted input is already
// in dialect form.
var Databricks = dialect.New(Config).Build()
