// Package paths resolves slash-delimited store paths into alternating
// collection/document segments. Paths with an odd number of segments address
// collections, even ones address documents.
package paths

import (
	"strings"

	"firestore-fake/internal/shared/errors"
)

// Split parses a path into its non-empty segments. Leading, trailing and
// repeated slashes are ignored.
func Split(path string) []string {
	if path == "" {
		return nil
	}
	parts := strings.Split(strings.Trim(path, "/"), "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// Join builds a path from segments, skipping empty ones.
func Join(segments ...string) string {
	valid := make([]string, 0, len(segments))
	for _, s := range segments {
		if s != "" {
			valid = append(valid, strings.Trim(s, "/"))
		}
	}
	return strings.Join(valid, "/")
}

// Append appends a single segment to a base path.
func Append(basePath, segment string) string {
	if basePath == "" {
		return segment
	}
	return basePath + "/" + segment
}

// IsDocumentPath reports whether the path addresses a document.
func IsDocumentPath(path string) bool {
	segments := Split(path)
	return len(segments) > 0 && len(segments)%2 == 0
}

// IsCollectionPath reports whether the path addresses a collection.
func IsCollectionPath(path string) bool {
	segments := Split(path)
	return len(segments)%2 == 1
}

// ValidateDocumentPath checks that a path addresses a document: non-empty
// segments in even count. The parent prefix of a valid document path is
// always a valid collection path.
func ValidateDocumentPath(path string) error {
	segments := Split(path)
	if len(segments) == 0 {
		return errors.NewPathError("document path cannot be empty").
			WithCause(errors.ErrInvalidDocumentPath)
	}
	if len(segments)%2 != 0 {
		return errors.NewPathError("document path must have an even number of segments").
			WithCause(errors.ErrInvalidDocumentPath).
			WithDetail("path", path).
			WithDetail("segments", len(segments))
	}
	return nil
}

// ValidateCollectionPath checks that a path addresses a collection:
// non-empty segments in odd count.
func ValidateCollectionPath(path string) error {
	segments := Split(path)
	if len(segments) == 0 {
		return errors.NewPathError("collection path cannot be empty").
			WithCause(errors.ErrInvalidCollectionPath)
	}
	if len(segments)%2 != 1 {
		return errors.NewPathError("collection path must have an odd number of segments").
			WithCause(errors.ErrInvalidCollectionPath).
			WithDetail("path", path).
			WithDetail("segments", len(segments))
	}
	return nil
}

// Parent returns the path with its last segment removed. For a document
// path this is the owning collection; for a subcollection it is the parent
// document.
func Parent(path string) (string, error) {
	segments := Split(path)
	if len(segments) <= 1 {
		return "", errors.NewPathError("path has no parent").WithDetail("path", path)
	}
	return Join(segments[:len(segments)-1]...), nil
}

// DocumentID returns the final segment of a document path.
func DocumentID(path string) (string, error) {
	if err := ValidateDocumentPath(path); err != nil {
		return "", err
	}
	segments := Split(path)
	return segments[len(segments)-1], nil
}

// CollectionID returns the collection segment a path belongs to: the last
// segment of a collection path, or the second to last of a document path.
func CollectionID(path string) (string, error) {
	segments := Split(path)
	if len(segments) == 0 {
		return "", errors.NewPathError("path cannot be empty")
	}
	if len(segments)%2 == 0 {
		return segments[len(segments)-2], nil
	}
	return segments[len(segments)-1], nil
}

// CollectionOf returns the collection path owning a document path.
func CollectionOf(documentPath string) (string, error) {
	if err := ValidateDocumentPath(documentPath); err != nil {
		return "", err
	}
	segments := Split(documentPath)
	return Join(segments[:len(segments)-1]...), nil
}

// IsImmediateChild reports whether child is a document or collection directly
// under parentPath (one extra segment). An empty parentPath matches root
// collections.
func IsImmediateChild(parentPath, child string) bool {
	parentSegs := Split(parentPath)
	childSegs := Split(child)
	if len(childSegs) != len(parentSegs)+1 {
		return false
	}
	for i := range parentSegs {
		if parentSegs[i] != childSegs[i] {
			return false
		}
	}
	return true
}
