package adapter

import (
	"fmt"

	"github.com/leapstack-labs/leapfrag/pkg/core"
	"github.com/leapstack-labs/leapfrag/pkg/template"
)

// DefaultAlias is used when no alias is configured.
const DefaultAlias = "t"

// BuildStatement embeds a rendered fragment in a statement over table.
// The placeholder is expanded to alias.
func BuildStatement(kind core.FragmentKind, rendered, table, alias string) (string, error) {
	if table == "" {
		return "", fmt.Errorf("verify: table is required")
	}
	if alias == "" {
		alias = DefaultAlias
	}
	fragment := template.Expand(rendered, alias)

	switch kind {
	case core.KindWhere:
		return fmt.Sprintf("SELECT 1 FROM %s %s WHERE %s", table, alias, fragment), nil
	case core.KindFormula, core.KindRead:
		return fmt.Sprintf("SELECT %s FROM %s %s", fragment, table, alias), nil
	case core.KindOrderBy:
		return fmt.Sprintf("SELECT 1 FROM %s %s ORDER BY %s", table, alias, fragment), nil
	}
	return "", fmt.Errorf("verify: unknown fragment kind %q", kind)
}
