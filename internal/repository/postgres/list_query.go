package postgres

import (
	"fmt"
	"strings"

	"github.com/taskhive/taskhive-backend/internal/pagination"
)

// filterConds renders the descriptor's filters into WHERE conditions and
// positional args, appended after any fixed conditions. Filter fields were
// allow-listed during normalization, so the predicate maps defined next to
// each repository are the only identifiers that ever reach the SQL text;
// values always travel as placeholders.
//
// predicates maps an API filter field to a predicate template with a single
// %s for the placeholder, e.g. "due_date < %s".
func filterConds(fixed []string, fixedArgs []any, d pagination.QueryDescriptor,
	predicates map[string]string) ([]string, []any) {

	conds := append([]string(nil), fixed...)
	args := append([]any(nil), fixedArgs...)

	for _, f := range d.Filters {
		tmpl, ok := predicates[f.Field]
		if !ok {
			// Normalization guarantees membership; a miss means the service
			// constraints and this map drifted apart.
			panic(fmt.Sprintf("postgres: no predicate for filter field %q", f.Field))
		}
		args = append(args, f.Value)
		conds = append(conds, fmt.Sprintf(tmpl, fmt.Sprintf("$%d", len(args))))
	}
	return conds, args
}

func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

// listQuery renders a pagination descriptor into the tail of a SELECT:
// WHERE/ORDER BY/LIMIT/OFFSET plus the positional args. sortCols maps an API
// sort field to its column.
func listQuery(fixed []string, fixedArgs []any, d pagination.QueryDescriptor,
	predicates map[string]string, sortCols map[string]string) (string, []any) {

	conds, args := filterConds(fixed, fixedArgs, d, predicates)

	var b strings.Builder
	b.WriteString(whereClause(conds))

	b.WriteString(" ORDER BY ")
	if d.Sort != nil {
		col, ok := sortCols[d.Sort.Field]
		if !ok {
			panic(fmt.Sprintf("postgres: no column for sort field %q", d.Sort.Field))
		}
		b.WriteString(col)
		b.WriteString(" ")
		b.WriteString(string(d.Sort.Direction))
		if col != "id" {
			b.WriteString(", id") // stable tiebreak across pages
		}
	} else {
		b.WriteString("id")
	}

	args = append(args, d.Limit)
	b.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	args = append(args, d.Offset)
	b.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))

	return b.String(), args
}

// countQuery renders just the WHERE tail for the same descriptor, used when a
// window lands past the last row and the COUNT(*) OVER() total never arrives.
func countQuery(fixed []string, fixedArgs []any, d pagination.QueryDescriptor,
	predicates map[string]string) (string, []any) {

	conds, args := filterConds(fixed, fixedArgs, d, predicates)
	return whereClause(conds), args
}
