package firestorefake

import (
	"firestore-fake/internal/firestore/domain/model"
	"firestore-fake/internal/shared/errors"
)

// Value and snapshot types re-exported from the domain model so callers
// never import internal packages.

// DocumentSnapshot is an immutable point-in-time view of a document.
type DocumentSnapshot = model.DocumentSnapshot

// Timestamp is the stored representation of a point in time.
type Timestamp = model.Timestamp

// GeoPoint is a latitude/longitude pair.
type GeoPoint = model.GeoPoint

// Reference is a pointer to another document, stored by path.
type Reference = model.Reference

// FieldValue is a sentinel standing in for a store-computed mutation.
type FieldValue = model.FieldValue

// TimestampFromTime converts a time.Time, truncating to whole microseconds.
var TimestampFromTime = model.TimestampFromTime

// Delete removes the targeted field entirely. Deleting an absent field is a
// no-op.
func Delete() *FieldValue { return model.DeleteField() }

// ServerTimestamp sets the targeted field to the wall-clock instant at
// mutation time.
func ServerTimestamp() *FieldValue { return model.ServerTimestamp() }

// Increment adds n to the targeted numeric field. Integer plus integer stays
// an integer; any double makes the result a double.
func Increment(n interface{}) *FieldValue { return model.Increment(n) }

// ArrayUnion appends each element not already present, by value equality,
// preserving existing order.
func ArrayUnion(elements ...interface{}) *FieldValue { return model.ArrayUnion(elements...) }

// ArrayRemove removes every value-equal occurrence of each element.
func ArrayRemove(elements ...interface{}) *FieldValue { return model.ArrayRemove(elements...) }

// Error classification helpers re-exported from the shared errors package.

// IsPathError reports a malformed or inconsistent path error.
var IsPathError = errors.IsPathError

// IsValidationError reports an invalid write payload or transaction result.
var IsValidationError = errors.IsValidation

// IsTransactionOrderingError reports a read issued after a write within one
// transaction attempt.
var IsTransactionOrderingError = errors.IsTransactionOrdering

// IsTransactionCallbackError reports a failure propagated from a
// transaction callback.
var IsTransactionCallbackError = errors.IsTransactionCallback

// IsNotFoundError reports a missing resource, e.g. a snapshot field lookup.
var IsNotFoundError = errors.IsNotFound
