package paths

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firestore-fake/internal/shared/errors"
)

func TestSplit(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "single collection", input: "users", expected: []string{"users"}},
		{name: "document", input: "users/alice", expected: []string{"users", "alice"}},
		{name: "subcollection document", input: "users/alice/posts/p1", expected: []string{"users", "alice", "posts", "p1"}},
		{name: "surrounding slashes", input: "/users/alice/", expected: []string{"users", "alice"}},
		{name: "repeated slashes", input: "users//alice", expected: []string{"users", "alice"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Split(tc.input))
		})
	}
}

func TestPathKind(t *testing.T) {
	assert.True(t, IsCollectionPath("users"))
	assert.True(t, IsCollectionPath("users/alice/posts"))
	assert.False(t, IsCollectionPath("users/alice"))

	assert.True(t, IsDocumentPath("users/alice"))
	assert.True(t, IsDocumentPath("users/alice/posts/p1"))
	assert.False(t, IsDocumentPath("users"))
	assert.False(t, IsDocumentPath(""))
}

func TestValidateDocumentPath(t *testing.T) {
	require.NoError(t, ValidateDocumentPath("users/alice"))
	require.NoError(t, ValidateDocumentPath("users/alice/posts/p1"))

	err := ValidateDocumentPath("users")
	require.Error(t, err)
	assert.True(t, errors.IsPathError(err))

	err = ValidateDocumentPath("")
	require.Error(t, err)
	assert.True(t, errors.IsPathError(err))
}

func TestValidateCollectionPath(t *testing.T) {
	require.NoError(t, ValidateCollectionPath("users"))
	require.NoError(t, ValidateCollectionPath("users/alice/posts"))

	err := ValidateCollectionPath("users/alice")
	require.Error(t, err)
	assert.True(t, errors.IsPathError(err))
}

func TestDocumentAndCollectionIDs(t *testing.T) {
	id, err := DocumentID("users/alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", id)

	_, err = DocumentID("users")
	require.Error(t, err)

	colID, err := CollectionID("users/alice")
	require.NoError(t, err)
	assert.Equal(t, "users", colID)

	colID, err = CollectionID("users/alice/posts")
	require.NoError(t, err)
	assert.Equal(t, "posts", colID)
}

func TestParentAndCollectionOf(t *testing.T) {
	parent, err := Parent("users/alice/posts/p1")
	require.NoError(t, err)
	assert.Equal(t, "users/alice/posts", parent)

	_, err = Parent("users")
	require.Error(t, err)

	col, err := CollectionOf("users/alice")
	require.NoError(t, err)
	assert.Equal(t, "users", col)
}

func TestIsImmediateChild(t *testing.T) {
	assert.True(t, IsImmediateChild("users", "users/alice"))
	assert.True(t, IsImmediateChild("", "users"))
	assert.False(t, IsImmediateChild("users", "users/alice/posts"))
	assert.False(t, IsImmediateChild("users", "teams/alice"))
	assert.False(t, IsImmediateChild("users/alice", "users"))
}

func TestJoinAndAppend(t *testing.T) {
	assert.Equal(t, "users/alice", Join("users", "alice"))
	assert.Equal(t, "users/alice", Join("", "users", "", "alice"))
	assert.Equal(t, "users/alice", Append("users", "alice"))
	assert.Equal(t, "users", Append("", "users"))
}
