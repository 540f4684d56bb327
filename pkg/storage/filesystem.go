package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileStore persists gateway artifacts (report exports, punch photos) on disk
// under a base directory.
type FileStore struct {
	baseDir string
}

// NewFileStore ensures the base directory exists and returns a handle.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		baseDir = "./exports"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Save writes the given bytes to the provided relative path under the base dir.
func (s *FileStore) Save(filename string, data []byte) (string, error) {
	path := s.resolve(filename)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("prepare storage directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write stored file: %w", err)
	}
	return filename, nil
}

// Open returns a read-only handle for the stored file.
func (s *FileStore) Open(filename string) (*os.File, error) {
	file, err := os.Open(s.resolve(filename))
	if err != nil {
		return nil, fmt.Errorf("open stored file: %w", err)
	}
	return file, nil
}

// Delete removes a stored file if present.
func (s *FileStore) Delete(filename string) error {
	if err := os.Remove(s.resolve(filename)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete stored file: %w", err)
	}
	return nil
}

// CleanupOlderThan removes files older than the provided TTL and returns
// their relative names.
func (s *FileStore) CleanupOlderThan(ttl time.Duration) ([]string, error) {
	cutoff := time.Now().Add(-ttl)
	deleted := make([]string, 0)
	err := filepath.WalkDir(s.baseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(cutoff) {
			return nil
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		rel, err := filepath.Rel(s.baseDir, path)
		if err != nil {
			rel = path
		}
		deleted = append(deleted, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cleanup stored files: %w", err)
	}
	return deleted, nil
}

// Path exposes the underlying absolute path.
func (s *FileStore) Path(filename string) string {
	return s.resolve(filename)
}

// resolve maps a stored-file name onto the base directory. Names are always
// treated as relative: rooting them before cleaning strips any ".." prefix,
// so absolute or traversal-laden input cannot escape the base dir.
func (s *FileStore) resolve(filename string) string {
	return filepath.Join(s.baseDir, filepath.Clean("/"+filename))
}
