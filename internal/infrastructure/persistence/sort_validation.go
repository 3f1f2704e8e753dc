package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes a sort direction to ASC or DESC, defaulting
// to DESC
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "ASC") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField when it is whitelisted in allowed and
// defaultField otherwise. Columns are matched case-sensitively.
func ValidateSortField(sortField string, allowed map[string]bool, defaultField string) string {
	if field := strings.TrimSpace(sortField); allowed[field] {
		return field
	}
	return defaultField
}

// sortable whitelists columns on top of the ones every table has
func sortable(columns ...string) map[string]bool {
	m := map[string]bool{"id": true, "created_at": true, "updated_at": true}
	for _, c := range columns {
		m[c] = true
	}
	return m
}

var (
	ClientSortFields   = sortable("name", "slug")
	ContractSortFields = sortable("number", "name", "start_date", "end_date")
	BudgetSortFields   = sortable("name", "value")
	ProjectSortFields  = sortable("name", "slug")
	EmployeeSortFields = sortable("first_name", "last_name", "email")
)
