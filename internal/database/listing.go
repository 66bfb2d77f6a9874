package database

import (
	"strings"

	"gorm.io/gorm"
)

// DefaultLimit caps list responses when the caller does not choose one.
const DefaultLimit = 10

// ListOptions carries the shared list query parameters. SearchKey/SearchValue
// come from the search dispatch middleware and narrow the query to a single
// column; Search is the free-text substring match across the entity's
// whitelisted text columns.
type ListOptions struct {
	Limit       int
	Offset      int
	Search      string
	SearchKey   string
	SearchValue string
	SortBy      string
	Order       string
}

// Normalize applies defaults: limit 10, offset 0, ascending order.
func (o ListOptions) Normalize() ListOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	if !strings.EqualFold(o.Order, "DESC") {
		o.Order = "ASC"
	} else {
		o.Order = "DESC"
	}
	return o
}

// ApplySearch adds the OR-combined case-insensitive substring filter over the
// given columns, plus the single-column narrowing filter when the dispatch
// middleware supplied one. Columns must come from a fixed whitelist; values
// are always bound as parameters.
func ApplySearch(query *gorm.DB, opts ListOptions, columns []string) *gorm.DB {
	if opts.Search != "" && len(columns) > 0 {
		pattern := "%" + opts.Search + "%"
		var clauses []string
		var args []any
		for _, col := range columns {
			clauses = append(clauses, "LOWER("+col+") LIKE LOWER(?)")
			args = append(args, pattern)
		}
		query = query.Where(strings.Join(clauses, " OR "), args...)
	}
	if opts.SearchKey != "" && opts.SearchValue != "" {
		query = query.Where("LOWER("+opts.SearchKey+") LIKE LOWER(?)", "%"+opts.SearchValue+"%")
	}
	return query
}

// OrderClause builds the ORDER BY expression. A sort column outside the
// whitelist falls back to created_at rather than erroring the statement.
func OrderClause(opts ListOptions, sortable map[string]bool) string {
	column := opts.SortBy
	if !sortable[column] {
		column = "created_at"
	}
	return column + " " + opts.Order
}
