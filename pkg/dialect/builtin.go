package dialect

import "github.com/leapstack-labs/leapfrag/pkg/core"

// Generic is the dialect used when no dialect is configured.
// It quotes with double quotes, spells booleans as keywords, and reserves no
// words beyond the rewriter's own SQL keyword set.
var Generic = NewDialect("generic").
	Identifiers(`"`, `"`, `""`, NormCaseSensitive).
	Booleans(core.BooleanKeywords).
	Build()

func init() {
	// Register the generic dialect and set it as default
	Register(Generic)
	SetDefault(Generic)
}
