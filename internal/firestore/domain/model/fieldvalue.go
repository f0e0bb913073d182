package model

import (
	"fmt"
	"time"

	"firestore-fake/internal/shared/errors"
)

// FieldValueKind enumerates the closed set of sentinel field operations.
type FieldValueKind uint8

const (
	FieldValueDelete FieldValueKind = iota
	FieldValueServerTimestamp
	FieldValueIncrement
	FieldValueArrayUnion
	FieldValueArrayRemove
)

func (k FieldValueKind) String() string {
	switch k {
	case FieldValueDelete:
		return "delete"
	case FieldValueServerTimestamp:
		return "serverTimestamp"
	case FieldValueIncrement:
		return "increment"
	case FieldValueArrayUnion:
		return "arrayUnion"
	case FieldValueArrayRemove:
		return "arrayRemove"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// FieldValue is a sentinel standing in for a store-computed mutation. It is
// resolved against the live document at mutation time and never stored
// literally.
type FieldValue struct {
	kind     FieldValueKind
	operand  interface{}   // increment amount, int64 or float64
	elements []interface{} // arrayUnion / arrayRemove elements
}

// DeleteField removes the targeted field entirely.
func DeleteField() *FieldValue {
	return &FieldValue{kind: FieldValueDelete}
}

// ServerTimestamp sets the targeted field to the wall-clock instant at
// resolution time.
func ServerTimestamp() *FieldValue {
	return &FieldValue{kind: FieldValueServerTimestamp}
}

// Increment adds n to the targeted numeric field, treating an absent or
// non-numeric field as 0. n must be a Go integer or floating point value.
func Increment(n interface{}) *FieldValue {
	return &FieldValue{kind: FieldValueIncrement, operand: NormalizeValue(n)}
}

// ArrayUnion appends each element not already present, by value equality, to
// the targeted array field, preserving existing order.
func ArrayUnion(elements ...interface{}) *FieldValue {
	return &FieldValue{kind: FieldValueArrayUnion, elements: NormalizeValue(elements).([]interface{})}
}

// ArrayRemove removes every value-equal occurrence of each element from the
// targeted array field.
func ArrayRemove(elements ...interface{}) *FieldValue {
	return &FieldValue{kind: FieldValueArrayRemove, elements: NormalizeValue(elements).([]interface{})}
}

// Kind returns the sentinel's operation tag.
func (fv *FieldValue) Kind() FieldValueKind { return fv.kind }

// Validate checks the sentinel's inputs. Callers run it before buffering or
// applying a mutation, so Resolve cannot fail after sibling writes already
// landed.
func (fv *FieldValue) Validate() error {
	switch fv.kind {
	case FieldValueIncrement:
		if _, numeric := numericValue(fv.operand); !numeric {
			return errors.NewValidationError("increment amount must be numeric").
				WithDetail("amount_type", fmt.Sprintf("%T", fv.operand))
		}
	case FieldValueArrayUnion, FieldValueArrayRemove:
		for _, elem := range fv.elements {
			if ContainsSentinel(elem) {
				return errors.NewValidationError("field value sentinels cannot be used as array elements")
			}
		}
	}
	return nil
}

func (fv *FieldValue) String() string {
	return fmt.Sprintf("FieldValue.%s", fv.kind)
}

// Resolve applies the sentinel against a target map in place. now is the
// resolution instant used for server timestamps. Dispatch is exhaustive over
// the closed kind set.
func (fv *FieldValue) Resolve(target map[string]interface{}, key string, now time.Time) error {
	switch fv.kind {
	case FieldValueDelete:
		resolveDelete(target, key)
		return nil
	case FieldValueServerTimestamp:
		resolveServerTimestamp(target, key, now)
		return nil
	case FieldValueIncrement:
		return resolveIncrement(target, key, fv.operand)
	case FieldValueArrayUnion:
		resolveArrayUnion(target, key, fv.elements)
		return nil
	case FieldValueArrayRemove:
		resolveArrayRemove(target, key, fv.elements)
		return nil
	default:
		return errors.NewInternalError(fmt.Sprintf("unknown field value kind %d", fv.kind))
	}
}

// resolveDelete removes the key. Deleting an absent key is a no-op.
func resolveDelete(target map[string]interface{}, key string) {
	delete(target, key)
}

func resolveServerTimestamp(target map[string]interface{}, key string, now time.Time) {
	target[key] = TimestampFromTime(now)
}

// resolveIncrement adds the operand to the existing numeric value, or to 0
// when the field is absent or not numeric. The result is an int64 only when
// both sides are integers.
func resolveIncrement(target map[string]interface{}, key string, operand interface{}) error {
	existing, hasExisting := target[key]
	if hasExisting {
		if _, numeric := numericValue(existing); !numeric {
			hasExisting = false
		}
	}

	switch amount := operand.(type) {
	case int64:
		if !hasExisting {
			target[key] = amount
			return nil
		}
		if base, ok := existing.(int64); ok {
			target[key] = base + amount
			return nil
		}
		target[key] = existing.(float64) + float64(amount)
		return nil
	case float64:
		base := 0.0
		if hasExisting {
			base, _ = numericValue(existing)
		}
		target[key] = base + amount
		return nil
	default:
		return errors.NewValidationError("increment amount must be numeric").
			WithDetail("amount_type", fmt.Sprintf("%T", operand))
	}
}

func resolveArrayUnion(target map[string]interface{}, key string, elements []interface{}) {
	existing, _ := target[key].([]interface{})
	merged := make([]interface{}, len(existing), len(existing)+len(elements))
	copy(merged, existing)
	for _, elem := range elements {
		present := false
		for _, have := range merged {
			if ValuesEqual(have, elem) {
				present = true
				break
			}
		}
		if !present {
			merged = append(merged, DeepCopyValue(elem))
		}
	}
	target[key] = merged
}

func resolveArrayRemove(target map[string]interface{}, key string, elements []interface{}) {
	existing, _ := target[key].([]interface{})
	kept := make([]interface{}, 0, len(existing))
	for _, have := range existing {
		remove := false
		for _, elem := range elements {
			if ValuesEqual(have, elem) {
				remove = true
				break
			}
		}
		if !remove {
			kept = append(kept, have)
		}
	}
	target[key] = kept
}

// ContainsSentinel reports whether a value embeds a FieldValue anywhere
// inside a nested map or list. Sentinels are only legal as terminal values
// of an update entry, never inside nested object literals.
func ContainsSentinel(v interface{}) bool {
	switch val := v.(type) {
	case *FieldValue:
		return true
	case []interface{}:
		for _, elem := range val {
			if ContainsSentinel(elem) {
				return true
			}
		}
		return false
	case map[string]interface{}:
		for _, elem := range val {
			if ContainsSentinel(elem) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
