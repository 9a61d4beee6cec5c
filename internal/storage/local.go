// Package storage implements the object store behind image uploads (entity
// logos, event banners, company logos).  Objects live on the local
// filesystem under a configured root and are addressed by a relative path;
// public URLs are the base URL joined with that path.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidPath is returned when an object path escapes the store root or
// is empty.
var ErrInvalidPath = errors.New("invalid object path")

// LocalStore is a filesystem-backed object store.
type LocalStore struct {
	root    string // directory that holds all objects
	baseURL string // public prefix under which objects are served
}

// NewLocalStore creates the root directory if needed and returns the store.
func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &LocalStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save writes the object under a generated key inside the given folder
// (e.g. "logos", "events") keeping the original file extension, and
// returns the object path.  Keys are uuids so concurrent uploads never
// collide and file names from clients never reach the disk.
func (s *LocalStore) Save(folder, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	key := uuid.NewString() + ext
	objPath := path.Join(folder, key)

	full, err := s.resolve(objPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create object folder: %w", err)
	}
	f, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create object: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		// Remove the partial object; the path is about to be reported as
		// failed and must not resolve later.
		_ = os.Remove(full)
		return "", fmt.Errorf("write object: %w", err)
	}
	return objPath, nil
}

// PublicURL maps an object path to the URL clients fetch it from.
func (s *LocalStore) PublicURL(objPath string) string {
	return s.baseURL + "/" + strings.TrimLeft(objPath, "/")
}

// Delete removes an object by path.  Deleting a missing object is not an
// error; the caller's intent is already satisfied.
func (s *LocalStore) Delete(objPath string) error {
	full, err := s.resolve(objPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Root returns the directory objects are stored under, for static serving.
func (s *LocalStore) Root() string { return s.root }

// resolve joins an object path onto the root and rejects traversal.
func (s *LocalStore) resolve(objPath string) (string, error) {
	objPath = strings.TrimLeft(objPath, "/")
	if objPath == "" {
		return "", ErrInvalidPath
	}
	clean := filepath.Clean(filepath.Join(s.root, filepath.FromSlash(objPath)))
	rootAbs, err := filepath.Abs(s.root)
	if err != nil {
		return "", err
	}
	fullAbs, err := filepath.Abs(clean)
	if err != nil {
		return "", err
	}
	if fullAbs != rootAbs && !strings.HasPrefix(fullAbs, rootAbs+string(os.PathSeparator)) {
		return "", ErrInvalidPath
	}
	return fullAbs, nil
}
