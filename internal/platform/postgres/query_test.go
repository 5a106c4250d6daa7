package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/1wzhdxtx/task-management-system/internal/store"
)

func TestBuildWhere(t *testing.T) {
	clause, args := buildWhere(nil, 0)
	assert.Empty(t, clause)
	assert.Empty(t, args)

	clause, args = buildWhere([]store.Filter{store.Eq("user_id", int64(7))}, 0)
	assert.Equal(t, " WHERE user_id = $1", clause)
	assert.Equal(t, []any{int64(7)}, args)

	clause, args = buildWhere([]store.Filter{
		store.Eq("user_id", int64(7)),
		store.Eq("status", "pending"),
	}, 0)
	assert.Equal(t, " WHERE user_id = $1 AND status = $2", clause)
	assert.Equal(t, []any{int64(7), "pending"}, args)
}

func TestBuildWhere_ArgOffset(t *testing.T) {
	clause, args := buildWhere([]store.Filter{store.Eq("user_id", int64(7))}, 2)
	assert.Equal(t, " WHERE user_id = $3", clause)
	assert.Equal(t, []any{int64(7)}, args)
}

func TestBuildOrderBy(t *testing.T) {
	assert.Empty(t, buildOrderBy(nil))
	assert.Equal(t, " ORDER BY created_at DESC", buildOrderBy([]store.Order{store.Desc("created_at")}))
	assert.Equal(t, " ORDER BY name ASC, id DESC",
		buildOrderBy([]store.Order{store.Asc("name"), store.Desc("id")}))
}

func TestBuildListClauses(t *testing.T) {
	clause, args := buildListClauses(store.ListQuery{
		Filters: []store.Filter{store.Eq("user_id", int64(7))},
		OrderBy: []store.Order{store.Desc("created_at")},
		Limit:   20,
		Offset:  40,
	})
	assert.Equal(t, " WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3", clause)
	assert.Equal(t, []any{int64(7), 20, 40}, args)
}

func TestBuildListClauses_Defaults(t *testing.T) {
	clause, args := buildListClauses(store.ListQuery{Offset: -5})
	assert.Equal(t, " LIMIT $1 OFFSET $2", clause)
	assert.Equal(t, []any{defaultListLimit, 0}, args)
}

func TestPrefixColumns(t *testing.T) {
	assert.Equal(t, "t.id, t.name, t.color", prefixColumns("t", "id, name, color"))
	assert.Equal(t, "t.id", prefixColumns("t", "id"))
}
