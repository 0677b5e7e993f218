// Package filestore implements the attachment store collaborator on local
// disk. Every stored payload lives in its own bucket directory named by a
// random UUID, which doubles as the opaque reference recorded on the
// event. Keeping one file per bucket preserves the original filename for
// downloads.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a reference does not resolve to a stored
// payload.
var ErrNotFound = errors.New("filestore: not found")

// Store writes attachment payloads under a base directory.
type Store struct {
	baseDir string
}

// New returns a Store rooted at baseDir, creating it if needed.
func New(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create attachment dir: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Store saves a new payload and returns its bucket reference.
func (s *Store) Store(_ context.Context, filename string, content io.Reader) (string, error) {
	ref := uuid.NewString()
	if err := s.write(ref, filename, content); err != nil {
		_ = os.RemoveAll(s.bucketPath(ref))
		return "", err
	}
	return ref, nil
}

// Replace overwrites the payload of an existing bucket in place, so the
// reference recorded on the event stays valid throughout.
func (s *Store) Replace(_ context.Context, ref, filename string, content io.Reader) error {
	dir := s.bucketPath(ref)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return s.write(ref, filename, content)
}

// Delete removes a bucket and its payload. Deleting an unknown reference
// is a no-op so cleanup paths stay idempotent.
func (s *Store) Delete(_ context.Context, ref string) error {
	return os.RemoveAll(s.bucketPath(ref))
}

// Fetch resolves a reference to the stored file's path and original
// filename. The caller streams the file itself.
func (s *Store) Fetch(ref string) (path, filename string, err error) {
	dir := s.bucketPath(ref)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", ErrNotFound
		}
		return "", "", err
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			return filepath.Join(dir, entry.Name()), entry.Name(), nil
		}
	}
	return "", "", ErrNotFound
}

func (s *Store) bucketPath(ref string) string {
	return filepath.Join(s.baseDir, ref)
}

func (s *Store) write(ref, filename string, content io.Reader) error {
	dir := s.bucketPath(ref)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	// Strip any client-supplied path components.
	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = "attachment"
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := io.Copy(f, content); err != nil {
		return err
	}
	return f.Sync()
}
