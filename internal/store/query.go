package store

// FilterOp enumerates the comparison operators a Filter may use.
type FilterOp string

// Supported filter operators.
const (
	OpEq FilterOp = "="
	OpNe FilterOp = "<>"
	OpLt FilterOp = "<"
	OpLe FilterOp = "<="
	OpGt FilterOp = ">"
	OpGe FilterOp = ">="
)

// Filter is a single column predicate. A query's filters are combined as a
// conjunction. Keeping filters as small value objects (rather than raw SQL
// fragments) keeps the store contracts backend-agnostic.
type Filter struct {
	Column string
	Op     FilterOp
	Value  any
}

// Eq builds an equality filter, the overwhelmingly common case.
func Eq(column string, value any) Filter {
	return Filter{Column: column, Op: OpEq, Value: value}
}

// Order is a single sort key.
type Order struct {
	Column string
	Desc   bool
}

// Asc builds an ascending sort key.
func Asc(column string) Order {
	return Order{Column: column}
}

// Desc builds a descending sort key.
func Desc(column string) Order {
	return Order{Column: column, Desc: true}
}

// ListQuery bundles pagination, filtering, and ordering for list operations.
// A zero Limit means "no explicit limit"; implementations apply their own cap.
type ListQuery struct {
	Offset  int
	Limit   int
	Filters []Filter
	OrderBy []Order
}
