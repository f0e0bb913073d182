package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firestore-fake/internal/shared/errors"
)

func TestTimestampFromTime_TruncatesBelowMicroseconds(t *testing.T) {
	instant := time.Date(2024, 5, 1, 12, 30, 45, 123456789, time.UTC)
	ts := TimestampFromTime(instant)

	assert.Equal(t, instant.Unix(), ts.Seconds)
	assert.Equal(t, int32(123456000), ts.Nanoseconds)
	assert.Equal(t, instant.Truncate(time.Microsecond), ts.Time())
}

func TestTimestamp_Compare(t *testing.T) {
	early := TimestampFromTime(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	late := TimestampFromTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, -1, early.Compare(late))
	assert.Equal(t, 1, late.Compare(early))
	assert.Equal(t, 0, early.Compare(early))
}

func TestNormalizeValue(t *testing.T) {
	when := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)

	testCases := []struct {
		name     string
		input    interface{}
		expected interface{}
	}{
		{name: "int", input: 42, expected: int64(42)},
		{name: "int32", input: int32(-7), expected: int64(-7)},
		{name: "uint16", input: uint16(9), expected: int64(9)},
		{name: "float32", input: float32(1.5), expected: float64(1.5)},
		{name: "string", input: "hello", expected: "hello"},
		{name: "bool", input: true, expected: true},
		{name: "nil", input: nil, expected: nil},
		{name: "time becomes timestamp", input: when, expected: TimestampFromTime(when)},
		{name: "nested list", input: []interface{}{1, 2.0}, expected: []interface{}{int64(1), 2.0}},
		{
			name:     "nested map",
			input:    map[string]interface{}{"n": 3, "when": when},
			expected: map[string]interface{}{"n": int64(3), "when": TimestampFromTime(when)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeValue(tc.input))
		})
	}
}

func TestDeepCopyMap_Isolation(t *testing.T) {
	original := map[string]interface{}{
		"name": "alice",
		"tags": []interface{}{"a", "b"},
		"nested": map[string]interface{}{
			"score": int64(10),
		},
		"blob": []byte{1, 2, 3},
	}

	copied := DeepCopyMap(original)
	require.Equal(t, original, copied)

	original["name"] = "mallory"
	original["tags"].([]interface{})[0] = "z"
	original["nested"].(map[string]interface{})["score"] = int64(99)
	original["blob"].([]byte)[0] = 9

	assert.Equal(t, "alice", copied["name"])
	assert.Equal(t, "a", copied["tags"].([]interface{})[0])
	assert.Equal(t, int64(10), copied["nested"].(map[string]interface{})["score"])
	assert.Equal(t, byte(1), copied["blob"].([]byte)[0])
}

func TestCompareValues(t *testing.T) {
	ts1 := TimestampFromTime(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	ts2 := TimestampFromTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	testCases := []struct {
		name    string
		a, b    interface{}
		cmp     int
		ordered bool
	}{
		{name: "int less", a: int64(1), b: int64(2), cmp: -1, ordered: true},
		{name: "int vs float", a: int64(2), b: 1.5, cmp: 1, ordered: true},
		{name: "float equal int", a: 5.0, b: int64(5), cmp: 0, ordered: true},
		{name: "strings", a: "apple", b: "banana", cmp: -1, ordered: true},
		{name: "bools", a: false, b: true, cmp: -1, ordered: true},
		{name: "timestamps", a: ts1, b: ts2, cmp: -1, ordered: true},
		{name: "string vs int unordered", a: "1", b: int64(1), ordered: false},
		{name: "nil unordered", a: nil, b: int64(1), ordered: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmp, ok := CompareValues(tc.a, tc.b)
			assert.Equal(t, tc.ordered, ok)
			if tc.ordered {
				assert.Equal(t, tc.cmp, cmp)
			}
		})
	}
}

func TestValuesEqual(t *testing.T) {
	testCases := []struct {
		name  string
		a, b  interface{}
		equal bool
	}{
		{name: "cross numeric", a: int64(5), b: 5.0, equal: true},
		{name: "strings", a: "x", b: "x", equal: true},
		{name: "blobs", a: []byte{1, 2}, b: []byte{1, 2}, equal: true},
		{name: "lists", a: []interface{}{int64(1), "a"}, b: []interface{}{int64(1), "a"}, equal: true},
		{
			name:  "maps",
			a:     map[string]interface{}{"k": int64(1)},
			b:     map[string]interface{}{"k": 1.0},
			equal: true,
		},
		{name: "geo points", a: GeoPoint{1, 2}, b: GeoPoint{1, 2}, equal: true},
		{name: "references", a: Reference("users/alice"), b: Reference("users/alice"), equal: true},
		{name: "nils", a: nil, b: nil, equal: true},
		{name: "mismatched kinds", a: "1", b: int64(1), equal: false},
		{name: "different lists", a: []interface{}{int64(1)}, b: []interface{}{int64(2)}, equal: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.equal, ValuesEqual(tc.a, tc.b))
		})
	}
}

func TestValidateResultValue(t *testing.T) {
	valid := map[string]interface{}{
		"n":    int64(1),
		"f":    2.5,
		"s":    "x",
		"b":    true,
		"blob": []byte{1},
		"when": time.Now(),
		"geo":  GeoPoint{Latitude: 1, Longitude: 2},
		"ref":  Reference("users/alice"),
		"list": []interface{}{int64(1), "two", nil},
		"map":  map[string]interface{}{"inner": 3.0},
	}
	require.NoError(t, ValidateResultValue(valid))
}

func TestValidateResultValue_RejectsUnsupportedKinds(t *testing.T) {
	type custom struct{ X int }

	testCases := []struct {
		name  string
		value interface{}
	}{
		{name: "struct", value: custom{X: 1}},
		{name: "channel", value: make(chan int)},
		{name: "uint64 out of range", value: uint64(1) << 63},
		{name: "nested in list", value: []interface{}{int64(1), custom{}}},
		{name: "nested in map", value: map[string]interface{}{"ok": int64(1), "bad": custom{}}},
		{name: "deeply nested", value: map[string]interface{}{"l": []interface{}{map[string]interface{}{"bad": make(chan int)}}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateResultValue(tc.value)
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))
		})
	}
}
