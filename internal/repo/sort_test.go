package repo

import "testing"

func TestSortClause_RestrictsToAllowedColumns(t *testing.T) {
	cases := []struct {
		name    string
		sortBy  string
		order   string
		want    string
		allowed []string
	}{
		{"default_when_empty", "", "", "created_at asc", []string{"name", "created_at"}},
		{"allowed_column", "name", "asc", "name asc", []string{"name", "created_at"}},
		{"desc_normalized", "name", "DESC", "name desc", []string{"name", "created_at"}},
		{"unknown_column_falls_back", "deleted_at; DROP TABLE clients", "asc", "created_at asc", []string{"name", "created_at"}},
		{"unknown_order_falls_back_to_asc", "name", "sideways", "name asc", []string{"name", "created_at"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sortClause(tc.sortBy, tc.order, "created_at", tc.allowed...)
			if got != tc.want {
				t.Fatalf("sortClause(%q, %q) = %q, want %q", tc.sortBy, tc.order, got, tc.want)
			}
		})
	}
}
