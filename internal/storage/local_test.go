package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)
	return s
}

func TestSaveKeepsExtensionAndWritesContent(t *testing.T) {
	s := newTestStore(t)

	objPath, err := s.Save("logos", "My Logo.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(objPath, "logos/"))
	assert.True(t, strings.HasSuffix(objPath, ".png"), "extension must be kept lower-cased, got %q", objPath)
	assert.NotContains(t, objPath, "My Logo", "client file names must not reach the disk")

	data, err := os.ReadFile(filepath.Join(s.Root(), filepath.FromSlash(objPath)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestSaveGeneratesUniqueKeys(t *testing.T) {
	s := newTestStore(t)

	a, err := s.Save("logos", "same.png", strings.NewReader("a"))
	require.NoError(t, err)
	b, err := s.Save("logos", "same.png", strings.NewReader("b"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestPublicURL(t *testing.T) {
	s, err := NewLocalStore(t.TempDir(), "/uploads/")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/logos/key.png", s.PublicURL("logos/key.png"))
	assert.Equal(t, "/uploads/logos/key.png", s.PublicURL("/logos/key.png"))
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	objPath, err := s.Save("logos", "x.png", strings.NewReader("x"))
	require.NoError(t, err)
	require.NoError(t, s.Delete(objPath))

	// Deleting again is fine; the object is already gone.
	assert.NoError(t, s.Delete(objPath))
	_, err = os.Stat(filepath.Join(s.Root(), filepath.FromSlash(objPath)))
	assert.True(t, os.IsNotExist(err))
}

func TestResolveRejectsTraversal(t *testing.T) {
	s := newTestStore(t)

	for _, bad := range []string{"", "../secret", "logos/../../etc/passwd"} {
		err := s.Delete(bad)
		assert.ErrorIs(t, err, ErrInvalidPath, "path %q must be rejected", bad)
	}
}
