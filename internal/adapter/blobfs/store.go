// Package blobfs stores a named blob on a filesystem with optimistic
// concurrency: each blob's revision token is the hash of its content, and
// writes are conditional on the revision the writer last read.
package blobfs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/shorecast/swellboard/internal/domain"
)

// Store persists one blob at a fixed path. The mutex makes the
// read-compare-write sequence a critical section within this process;
// concurrent processes still converge because a losing writer observes
// ErrWriteConflict and re-reads.
type Store struct {
	fs   afero.Fs
	path string
	mu   sync.Mutex
}

// New creates a Store on the given filesystem. Use afero.NewOsFs() in
// production and afero.NewMemMapFs() in tests.
func New(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Get returns the blob content and its revision token, or ErrNotFound when
// the blob has never been written.
func (s *Store) Get(_ context.Context) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := afero.ReadFile(s.fs, s.path)
	if os.IsNotExist(err) {
		return nil, "", domain.ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("read blob %s: %w", s.path, err)
	}
	return data, revision(data), nil
}

// Put writes the blob when its current revision still matches expectRev.
// An empty expectRev asserts the blob does not exist yet. Returns the new
// revision, or ErrWriteConflict when another writer got there first.
func (s *Store) Put(_ context.Context, data []byte, expectRev string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := afero.ReadFile(s.fs, s.path)
	switch {
	case os.IsNotExist(err):
		if expectRev != "" {
			return "", fmt.Errorf("blob %s gone: %w", s.path, domain.ErrWriteConflict)
		}
	case err != nil:
		return "", fmt.Errorf("read blob %s: %w", s.path, err)
	default:
		if revision(current) != expectRev {
			return "", fmt.Errorf("blob %s: %w", s.path, domain.ErrWriteConflict)
		}
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create blob dir: %w", err)
		}
	}
	if err := afero.WriteFile(s.fs, s.path, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob %s: %w", s.path, err)
	}
	return revision(data), nil
}

// revision derives the optimistic-concurrency token from blob content.
func revision(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
