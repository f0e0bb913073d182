package model

import (
	"strings"

	"firestore-fake/internal/shared/errors"
	"firestore-fake/internal/shared/paths"
)

// DocumentSnapshot is an immutable point-in-time view of a document: its
// existence flag plus a deep copy of its fields. Mutating the live document
// after the snapshot is taken is never observable through it.
type DocumentSnapshot struct {
	// Path is the full document path, e.g. "users/alice".
	Path string
	// ID is the final path segment.
	ID string
	// ReadTime is the instant the snapshot was captured.
	ReadTime Timestamp

	fields map[string]interface{}
	exists bool
}

// NewDocumentSnapshot captures a snapshot. It takes ownership of fields,
// which must already be an independent copy of the stored state.
func NewDocumentSnapshot(path string, fields map[string]interface{}, exists bool) *DocumentSnapshot {
	segments := paths.Split(path)
	id := ""
	if len(segments) > 0 {
		id = segments[len(segments)-1]
	}
	return &DocumentSnapshot{
		Path:     path,
		ID:       id,
		ReadTime: TimestampNow(),
		fields:   fields,
		exists:   exists,
	}
}

// Exists reports whether the document existed when the snapshot was taken.
func (s *DocumentSnapshot) Exists() bool { return s.exists }

// Data returns a deep copy of the captured fields, or nil for a
// non-existent document.
func (s *DocumentSnapshot) Data() map[string]interface{} {
	if !s.exists {
		return nil
	}
	return DeepCopyMap(s.fields)
}

// Get resolves a dot-separated field path within the captured fields.
func (s *DocumentSnapshot) Get(fieldPath string) (interface{}, error) {
	v, ok := ResolveFieldPath(s.fields, fieldPath)
	if !ok {
		return nil, errors.NewNotFoundError("field").
			WithDetail("field_path", fieldPath).
			WithDetail("document", s.Path)
	}
	return DeepCopyValue(v), nil
}

// ResolveFieldPath walks a dot-separated field path through nested maps.
func ResolveFieldPath(fields map[string]interface{}, fieldPath string) (interface{}, bool) {
	if fieldPath == "" {
		return nil, false
	}
	segments := strings.Split(fieldPath, ".")
	var current interface{} = fields
	for _, segment := range segments {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = m[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
