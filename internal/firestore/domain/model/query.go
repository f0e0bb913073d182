package model

// Query describes a filtered, ordered and limited read over one collection.
type Query struct {
	CollectionPath string
	Filters        []Filter
	Orders         []Order
	Limit          int    // 0 means no limit
	StartAfter     string // document ID to start after in the current ordering
}

// Filter is a single where clause.
type Filter struct {
	FieldPath string
	Operator  string
	Value     interface{}
}

// Order is a single order-by clause.
type Order struct {
	FieldPath string
	Direction string
}

const (
	// Ascending sorts from smallest to largest.
	Ascending = "asc"
	// Descending sorts from largest to smallest.
	Descending = "desc"
)

// Supported filter operators. Comparison operators run before membership
// operators in the query pipeline.
const (
	OperatorEqual              = "=="
	OperatorLessThan           = "<"
	OperatorLessThanOrEqual    = "<="
	OperatorGreaterThan        = ">"
	OperatorGreaterThanOrEqual = ">="
	OperatorArrayContains      = "array-contains"
	OperatorArrayContainsAny   = "array-contains-any"
	OperatorIn                 = "in"
)

// IsComparisonOperator reports whether op belongs to the first pipeline
// stage.
func IsComparisonOperator(op string) bool {
	switch op {
	case OperatorEqual, OperatorLessThan, OperatorLessThanOrEqual,
		OperatorGreaterThan, OperatorGreaterThanOrEqual:
		return true
	}
	return false
}

// IsMembershipOperator reports whether op belongs to the second pipeline
// stage.
func IsMembershipOperator(op string) bool {
	switch op {
	case OperatorArrayContains, OperatorArrayContainsAny, OperatorIn:
		return true
	}
	return false
}
