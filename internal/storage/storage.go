// Package storage stores uploaded images on disk under generated keys and
// exposes them through public URLs served by the HTTP layer.
package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store writes objects below Root and maps keys to URLs below BaseURL.
type Store struct {
	root    string
	baseURL string
}

// New creates the storage root if needed.
func New(root, baseURL string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &Store{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Save writes the object under a generated key "<folder>/<uuid><ext>" and
// returns the key. The extension is taken from the original filename.
func (s *Store) Save(folder, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	key := path.Join(sanitizeFolder(folder), uuid.New().String()+ext)

	dst := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("failed to create object dir: %w", err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create object: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	return key, nil
}

// Delete removes an object; a missing object is not an error.
func (s *Store) Delete(key string) error {
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// PublicURL maps a key to the URL it is served under.
func (s *Store) PublicURL(key string) string {
	return s.baseURL + "/media/" + key
}

// Root exposes the storage directory for the static file handler.
func (s *Store) Root() string { return s.root }

// sanitizeFolder keeps keys flat and predictable: one path segment, no
// traversal.
func sanitizeFolder(folder string) string {
	folder = strings.Trim(path.Clean("/"+folder), "/")
	if folder == "" || strings.Contains(folder, "/") {
		return "misc"
	}
	return folder
}
