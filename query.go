package firestorefake

import (
	"context"

	"firestore-fake/internal/firestore/domain/model"
)

// Direction is the sort direction for result ordering.
type Direction string

const (
	// Asc sorts from smallest to largest.
	Asc Direction = model.Ascending
	// Desc sorts from largest to smallest.
	Desc Direction = model.Descending
)

// Query is an immutable query description. Builder methods return derived
// queries and never mutate the receiver, so queries can be shared and
// extended freely.
type Query struct {
	client *Client
	q      model.Query
}

// Where adds a filter condition.
func (q *Query) Where(fieldPath, op string, value interface{}) *Query {
	next := q.clone()
	next.q.Filters = append(next.q.Filters, model.Filter{
		FieldPath: fieldPath,
		Operator:  op,
		Value:     value,
	})
	return next
}

// OrderBy adds an ordering clause. Ties between equal values keep document
// ID ascending order.
func (q *Query) OrderBy(fieldPath string, direction Direction) *Query {
	next := q.clone()
	next.q.Orders = append(next.q.Orders, model.Order{
		FieldPath: fieldPath,
		Direction: string(direction),
	})
	return next
}

// Limit truncates results to the first n documents.
func (q *Query) Limit(n int) *Query {
	next := q.clone()
	next.q.Limit = n
	return next
}

// StartAfterDocument drops all results up to and including the given
// document in the query's ordering.
func (q *Query) StartAfterDocument(snapshot *DocumentSnapshot) *Query {
	next := q.clone()
	next.q.StartAfter = snapshot.ID
	return next
}

// Documents executes the query and returns the matching snapshots in order.
func (q *Query) Documents(ctx context.Context) ([]*DocumentSnapshot, error) {
	return q.client.uc.QueryDocuments(ctx, q.q)
}

func (q *Query) clone() *Query {
	next := &Query{client: q.client, q: q.q}
	next.q.Filters = append([]model.Filter(nil), q.q.Filters...)
	next.q.Orders = append([]model.Order(nil), q.q.Orders...)
	return next
}
