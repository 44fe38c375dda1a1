package postgres

import (
	"fmt"
	"sort"
	"strings"
)

// buildPatch renders a partial UPDATE from a column map. Columns are
// sorted so the generated SQL is deterministic. updated_at is always
// touched. The id occupies the final placeholder.
func buildPatch(table, idCol string, id interface{}, fields map[string]interface{}) (string, []interface{}) {
	cols := make([]string, 0, len(fields))
	for col := range fields {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	sets := make([]string, 0, len(cols)+1)
	args := make([]interface{}, 0, len(cols)+1)
	for i, col := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+1))
		args = append(args, fields[col])
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = $%d",
		table, strings.Join(sets, ", "), idCol, len(args),
	)
	return query, args
}
