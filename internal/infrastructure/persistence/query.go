package persistence

import (
	"errors"
	"strings"

	"github.com/workify/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// findError maps a lookup error, turning a missing row into a NOT_FOUND
// domain error naming resource
func findError(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NotFound(resource)
	}
	return err
}

// writeError maps a write error, turning unique violations into
// ALREADY_EXISTS and broken references into INVALID_INPUT
func writeError(err error, resource string) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewDomainErrorf("ALREADY_EXISTS", "%s already exists.", resource)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewDomainErrorf("INVALID_INPUT", "%s refers to a record that does not exist.", resource)
	}
	return err
}

// likePattern builds a case-insensitive substring pattern with LIKE
// wildcards in term escaped
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + strings.ToLower(r.Replace(strings.TrimSpace(term))) + "%"
}

// searchScope filters rows whose columns contain the filter's search term
func searchScope(term string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if strings.TrimSpace(term) == "" || len(columns) == 0 {
			return db
		}
		pattern := likePattern(term)
		conds := make([]string, len(columns))
		args := make([]any, len(columns))
		for i, col := range columns {
			conds[i] = "LOWER(" + col + `) LIKE ? ESCAPE '\'`
			args[i] = pattern
		}
		return db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}

// activeScope hides deactivated rows unless the filter asks for them
func activeScope(filter shared.Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.IncludeInactive {
			return db
		}
		return db.Where("is_active = ?", true)
	}
}

// orderClause returns the ORDER BY of a list query. Without an explicit
// sort field the list keeps its natural order.
func orderClause(filter shared.Filter, allowed map[string]bool, natural string) string {
	field := ValidateSortField(filter.OrderBy, allowed, "")
	if field == "" {
		return natural
	}
	return field + " " + ValidateSortOrder(filter.OrderDir) + ", id ASC"
}

// paginate applies the filter's page window
func paginate(filter shared.Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.PageSize <= 0 {
			return db
		}
		return db.Offset(filter.Offset()).Limit(filter.PageSize)
	}
}

// autocompleteLimit bounds a caller supplied limit
func autocompleteLimit(limit int) int {
	if limit <= 0 || limit > 50 {
		return 10
	}
	return limit
}
