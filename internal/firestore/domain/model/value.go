package model

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"firestore-fake/internal/shared/errors"
)

// Timestamp is the stored representation of a point in time. Generic
// time.Time values are converted to Timestamp on write; precision below one
// microsecond is dropped during conversion.
type Timestamp struct {
	Seconds     int64
	Nanoseconds int32
}

// TimestampFromTime converts a time.Time, truncating to whole microseconds.
func TimestampFromTime(t time.Time) Timestamp {
	t = t.UTC()
	return Timestamp{
		Seconds:     t.Unix(),
		Nanoseconds: int32(t.Nanosecond() / 1000 * 1000),
	}
}

// TimestampNow returns the current wall-clock instant as a Timestamp.
func TimestampNow() Timestamp {
	return TimestampFromTime(time.Now())
}

// Time converts the Timestamp back into a time.Time in UTC.
func (ts Timestamp) Time() time.Time {
	return time.Unix(ts.Seconds, int64(ts.Nanoseconds)).UTC()
}

// Compare orders two Timestamps chronologically.
func (ts Timestamp) Compare(other Timestamp) int {
	switch {
	case ts.Seconds < other.Seconds:
		return -1
	case ts.Seconds > other.Seconds:
		return 1
	case ts.Nanoseconds < other.Nanoseconds:
		return -1
	case ts.Nanoseconds > other.Nanoseconds:
		return 1
	default:
		return 0
	}
}

func (ts Timestamp) String() string {
	return ts.Time().Format(time.RFC3339Nano)
}

// GeoPoint is a latitude/longitude pair.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Reference is a pointer to another document, identified by its full path.
// It is stored as a path, not as an embedded copy of the target.
type Reference string

// Path returns the referenced document path.
func (r Reference) Path() string { return string(r) }

// NormalizeValue converts an input value into its stored representation:
// signed and unsigned integers become int64, float32 becomes float64 and
// time.Time becomes Timestamp. Containers are normalized recursively into
// fresh slices and maps. Values of unknown kinds pass through untouched.
func NormalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case nil, bool, int64, float64, string, Timestamp, GeoPoint, Reference, *FieldValue:
		return val
	case int:
		return int64(val)
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case uint:
		return int64(val)
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case uint64:
		if val > math.MaxInt64 {
			// Out of int64 range; kept as-is and rejected later by result
			// validation.
			return val
		}
		return int64(val)
	case float32:
		return float64(val)
	case time.Time:
		return TimestampFromTime(val)
	case []byte:
		return val
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, elem := range val {
			out[i] = NormalizeValue(elem)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, elem := range val {
			out[k] = NormalizeValue(elem)
		}
		return out
	default:
		return val
	}
}

// NormalizeMap normalizes every value of a field map into a fresh map.
func NormalizeMap(fields map[string]interface{}) map[string]interface{} {
	if fields == nil {
		return map[string]interface{}{}
	}
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		out[k] = NormalizeValue(v)
	}
	return out
}

// DeepCopyValue clones a value structurally: containers clone their children
// recursively, scalars copy by value. Byte blobs are copied so the original
// slice cannot alias stored state.
func DeepCopyValue(v interface{}) interface{} {
	switch val := v.(type) {
	case []byte:
		out := make([]byte, len(val))
		copy(out, val)
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, elem := range val {
			out[i] = DeepCopyValue(elem)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, elem := range val {
			out[k] = DeepCopyValue(elem)
		}
		return out
	default:
		return val
	}
}

// DeepCopyMap clones a field map structurally. A nil input yields an empty
// map.
func DeepCopyMap(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		out[k] = DeepCopyValue(v)
	}
	return out
}

// numericValue extracts a float64 view of a stored numeric value.
func numericValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// CompareValues orders two stored values within the store's total ordering.
// Numbers compare numerically across int64 and float64, strings
// lexicographically, booleans false before true and Timestamps
// chronologically. Values of mismatched kinds are unordered and ok is false.
func CompareValues(a, b interface{}) (cmp int, ok bool) {
	if an, aok := numericValue(a); aok {
		bn, bok := numericValue(b)
		if !bok {
			return 0, false
		}
		switch {
		case an < bn:
			return -1, true
		case an > bn:
			return 1, true
		default:
			return 0, true
		}
	}

	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		default:
			return 0, true
		}
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case av == bv:
			return 0, true
		case !av:
			return -1, true
		default:
			return 1, true
		}
	case Timestamp:
		bv, ok := b.(Timestamp)
		if !ok {
			return 0, false
		}
		return av.Compare(bv), true
	default:
		return 0, false
	}
}

// ValuesEqual reports deep equality of two stored values. Numbers are equal
// across int64/float64 when numerically equal.
func ValuesEqual(a, b interface{}) bool {
	if an, aok := numericValue(a); aok {
		bn, bok := numericValue(b)
		return bok && an == bn
	}

	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case Timestamp:
		bv, ok := b.(Timestamp)
		return ok && av.Compare(bv) == 0
	case GeoPoint:
		bv, ok := b.(GeoPoint)
		return ok && av == bv
	case Reference:
		bv, ok := b.(Reference)
		return ok && av == bv
	case []byte:
		bv, ok := b.([]byte)
		return ok && bytes.Equal(av, bv)
	case []interface{}:
		bv, ok := b.([]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !ValuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]interface{}:
		bv, ok := b.(map[string]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, elem := range av {
			other, present := bv[k]
			if !present || !ValuesEqual(elem, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ValidateResultValue checks a transaction result value recursively against
// the safe value kinds: null, bool, bounded integer, double, string, blob,
// time, geo point, document reference, list and map. Anything else, at any
// nesting depth, fails with a validation error.
func ValidateResultValue(v interface{}) error {
	switch val := v.(type) {
	case nil, bool, string, float32, float64,
		int, int8, int16, int32, int64, uint8, uint16, uint32,
		[]byte, time.Time, Timestamp, GeoPoint, Reference:
		return nil
	case uint:
		if uint64(val) > math.MaxInt64 {
			return unsupportedResultValue(val)
		}
		return nil
	case uint64:
		if val > math.MaxInt64 {
			return unsupportedResultValue(val)
		}
		return nil
	case []interface{}:
		for _, elem := range val {
			if err := ValidateResultValue(elem); err != nil {
				return err
			}
		}
		return nil
	case map[string]interface{}:
		for _, elem := range val {
			if err := ValidateResultValue(elem); err != nil {
				return err
			}
		}
		return nil
	default:
		return unsupportedResultValue(val)
	}
}

func unsupportedResultValue(v interface{}) error {
	return errors.NewValidationError("transaction result contains an unsupported value").
		WithCause(errors.ErrInvalidResultValue).
		WithDetail("value_type", fmt.Sprintf("%T", v))
}
