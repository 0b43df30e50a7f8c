package repo

import "strings"

// sortClause builds an ORDER BY fragment from user-supplied sort_by/order
// values. sort_by must be one of the allowed columns for the entity (the
// fallback column is used otherwise) and order is normalized to asc/desc.
// Restricting to a fixed enum keeps ordering deterministic and rules out
// injection through the sort parameters.
func sortClause(sortBy, order, fallback string, allowed ...string) string {
	col := fallback
	for _, a := range allowed {
		if sortBy == a {
			col = a
			break
		}
	}
	if strings.EqualFold(order, "desc") {
		return col + " desc"
	}
	return col + " asc"
}
