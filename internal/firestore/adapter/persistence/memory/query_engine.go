package memory

import (
	"context"
	"sort"

	"firestore-fake/internal/firestore/domain/model"
	"firestore-fake/internal/firestore/domain/repository"
	"firestore-fake/internal/shared/errors"
	"firestore-fake/internal/shared/logger"
	"firestore-fake/internal/shared/paths"
)

// QueryEngine filters, sorts and limits the documents of one collection.
// It only reads; all rows come out of the store as deep copies already.
type QueryEngine struct {
	store repository.DocumentStore
	log   logger.Logger
}

// NewQueryEngine creates a query engine over a document store.
func NewQueryEngine(store repository.DocumentStore, log logger.Logger) *QueryEngine {
	if log == nil {
		log = logger.NoopLogger{}
	}
	return &QueryEngine{store: store, log: log.WithComponent("query_engine")}
}

var _ repository.QueryEngine = (*QueryEngine)(nil)

// ExecuteQuery runs the fixed pipeline: comparison filters, membership
// filters, ordering (ties broken by document ID ascending), start-after
// cursor, then limit. Only existent documents participate.
func (e *QueryEngine) ExecuteQuery(ctx context.Context, query model.Query) ([]*model.DocumentSnapshot, error) {
	if err := paths.ValidateCollectionPath(query.CollectionPath); err != nil {
		return nil, err
	}

	rows := e.store.ListDocuments(ctx, query.CollectionPath)
	e.log.Debugf("query %s: %d candidate documents", query.CollectionPath, len(rows))

	for _, filter := range query.Filters {
		if !model.IsComparisonOperator(filter.Operator) && !model.IsMembershipOperator(filter.Operator) {
			return nil, errors.NewValidationError("unsupported query operator").
				WithCause(errors.ErrInvalidQuery).
				WithDetail("operator", filter.Operator)
		}
	}

	rows = e.applyFilters(rows, query.Filters, model.IsComparisonOperator)
	rows = e.applyFilters(rows, query.Filters, model.IsMembershipOperator)
	rows = e.applyOrdering(rows, query.Orders)
	rows = applyStartAfter(rows, query.StartAfter)
	if query.Limit > 0 && len(rows) > query.Limit {
		rows = rows[:query.Limit]
	}

	snapshots := make([]*model.DocumentSnapshot, len(rows))
	for i, row := range rows {
		snapshots[i] = model.NewDocumentSnapshot(row.Path, row.Fields, row.Exists)
	}
	return snapshots, nil
}

func (e *QueryEngine) applyFilters(rows []repository.StoredDocument, filters []model.Filter, stage func(string) bool) []repository.StoredDocument {
	for _, filter := range filters {
		if !stage(filter.Operator) {
			continue
		}
		kept := rows[:0]
		for _, row := range rows {
			if matchesFilter(row, filter) {
				kept = append(kept, row)
			}
		}
		rows = kept
	}
	return rows
}

func matchesFilter(row repository.StoredDocument, filter model.Filter) bool {
	fieldValue, present := model.ResolveFieldPath(row.Fields, filter.FieldPath)
	if !present {
		return false
	}
	want := model.NormalizeValue(filter.Value)

	switch filter.Operator {
	case model.OperatorEqual:
		return model.ValuesEqual(fieldValue, want)
	case model.OperatorLessThan:
		cmp, ok := model.CompareValues(fieldValue, want)
		return ok && cmp < 0
	case model.OperatorLessThanOrEqual:
		cmp, ok := model.CompareValues(fieldValue, want)
		return ok && cmp <= 0
	case model.OperatorGreaterThan:
		cmp, ok := model.CompareValues(fieldValue, want)
		return ok && cmp > 0
	case model.OperatorGreaterThanOrEqual:
		cmp, ok := model.CompareValues(fieldValue, want)
		return ok && cmp >= 0
	case model.OperatorArrayContains:
		arr, ok := fieldValue.([]interface{})
		if !ok {
			return false
		}
		for _, elem := range arr {
			if model.ValuesEqual(elem, want) {
				return true
			}
		}
		return false
	case model.OperatorArrayContainsAny:
		arr, ok := fieldValue.([]interface{})
		if !ok {
			return false
		}
		candidates, ok := want.([]interface{})
		if !ok {
			return false
		}
		for _, elem := range arr {
			for _, candidate := range candidates {
				if model.ValuesEqual(elem, candidate) {
					return true
				}
			}
		}
		return false
	case model.OperatorIn:
		candidates, ok := want.([]interface{})
		if !ok {
			return false
		}
		for _, candidate := range candidates {
			if model.ValuesEqual(fieldValue, candidate) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// applyOrdering sorts stably by the requested fields, documents missing an
// order-by field are excluded, and ties keep document ID ascending order
// (the incoming rows are already ID-ordered).
func (e *QueryEngine) applyOrdering(rows []repository.StoredDocument, orders []model.Order) []repository.StoredDocument {
	if len(orders) == 0 {
		return rows
	}

	kept := rows[:0]
	for _, row := range rows {
		include := true
		for _, order := range orders {
			if _, present := model.ResolveFieldPath(row.Fields, order.FieldPath); !present {
				include = false
				break
			}
		}
		if include {
			kept = append(kept, row)
		}
	}
	rows = kept

	sort.SliceStable(rows, func(i, j int) bool {
		for _, order := range orders {
			a, _ := model.ResolveFieldPath(rows[i].Fields, order.FieldPath)
			b, _ := model.ResolveFieldPath(rows[j].Fields, order.FieldPath)
			cmp, ok := model.CompareValues(a, b)
			if !ok || cmp == 0 {
				continue
			}
			if order.Direction == model.Descending {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
	return rows
}

// applyStartAfter drops everything up to and including the document with the
// given ID in the current ordering. An unmatched cursor drops nothing.
func applyStartAfter(rows []repository.StoredDocument, startAfter string) []repository.StoredDocument {
	if startAfter == "" {
		return rows
	}
	for i, row := range rows {
		if row.ID == startAfter {
			return rows[i+1:]
		}
	}
	return rows
}
