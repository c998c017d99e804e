package changelog

import (
	"fmt"

	"github.com/ariel-frischer/debcatalog/internal/fsutil"
	"github.com/go-git/go-billy/v5"
)

// Store reads and writes a single changelog file. It performs no locking;
// callers serialize writers with AcquireLease.
type Store struct {
	fs   billy.Filesystem
	path string
}

// NewStore returns a Store for the changelog at path on fs.
func NewStore(fs billy.Filesystem, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Path returns the changelog path relative to the filesystem root.
func (s *Store) Path() string {
	return s.path
}

// Read returns the raw changelog text. A missing file reads as empty.
func (s *Store) Read() (string, error) {
	exists, err := fsutil.Exists(s.fs, s.path)
	if err != nil {
		return "", fmt.Errorf("checking %s: %w", s.path, err)
	}
	if !exists {
		return "", nil
	}
	data, err := fsutil.ReadFile(s.fs, s.path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Load reads the changelog and parses its head.
func (s *Store) Load() (*Document, error) {
	raw, err := s.Read()
	if err != nil {
		return nil, err
	}
	doc, err := Load(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return doc, nil
}

// Write atomically replaces the changelog content.
func (s *Store) Write(content string) error {
	return fsutil.WriteFileAtomic(s.fs, s.path, []byte(content))
}
