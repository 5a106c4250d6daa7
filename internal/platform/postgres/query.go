package postgres

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/1wzhdxtx/task-management-system/internal/store"
)

// defaultListLimit caps list queries that arrive without an explicit limit.
const defaultListLimit = 100

// buildWhere renders a conjunction of filters into a WHERE clause with
// numbered placeholders starting at argOffset+1, returning the clause and
// the argument values. Column names come from store-layer constants, never
// from request input, so interpolating them is safe.
func buildWhere(filters []store.Filter, argOffset int) (string, []any) {
	if len(filters) == 0 {
		return "", nil
	}

	var sb strings.Builder
	args := make([]any, 0, len(filters))
	sb.WriteString(" WHERE ")
	for i, f := range filters {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		argOffset++
		fmt.Fprintf(&sb, "%s %s $%d", f.Column, f.Op, argOffset)
		args = append(args, f.Value)
	}
	return sb.String(), args
}

// buildOrderBy renders sort keys into an ORDER BY clause. An empty key set
// renders nothing, leaving the backend's natural order.
func buildOrderBy(orders []store.Order) string {
	if len(orders) == 0 {
		return ""
	}

	parts := make([]string, 0, len(orders))
	for _, o := range orders {
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		parts = append(parts, o.Column+" "+dir)
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

// buildListClauses renders the WHERE, ORDER BY, LIMIT, and OFFSET portions
// of a list query. All stores share this so filter and paging semantics
// stay identical across entities.
func buildListClauses(q store.ListQuery) (string, []any) {
	where, args := buildWhere(q.Filters, 0)

	limit := q.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	clause := where + buildOrderBy(q.OrderBy)
	clause += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return clause, args
}

// joinSet joins rendered SET clauses for an UPDATE statement.
func joinSet(set []string) string {
	return strings.Join(set, ", ")
}

// prefixColumns qualifies each column in a comma-separated list with a
// table alias, for use in joined selects.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, c := range parts {
		parts[i] = alias + "." + c
	}
	return strings.Join(parts, ", ")
}

// closeRows closes a result set, logging rather than losing a close error.
func closeRows(rows *sql.Rows, log *slog.Logger) {
	if err := rows.Close(); err != nil {
		log.Error("failed to close rows", slog.String("error", err.Error()))
	}
}
