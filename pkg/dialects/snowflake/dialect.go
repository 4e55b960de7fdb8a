package snowflake

import "github.com/leapstack-labs/leapfrag/pkg/dialect"

func init() {
	dialect.Register(Snowflake)
}

// Snowflake is the Snowflake SQL dialect.
var Snowflake = dialect.New(Config).Build()
