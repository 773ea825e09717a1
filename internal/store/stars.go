package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// StarStore reads and writes per-user starred-repository JSON files.
type StarStore struct {
	dataDir string
}

// NewStarStore creates a star store rooted at dataDir.
// The directory is created on first write, not here.
func NewStarStore(dataDir string) *StarStore {
	return &StarStore{dataDir: dataDir}
}

// Path returns the stars file path for a username.
func (s *StarStore) Path(username string) string {
	return filepath.Join(s.dataDir, username+"_stars.json")
}

// Exists reports whether star data has been fetched for the username.
func (s *StarStore) Exists(username string) bool {
	info, err := os.Stat(s.Path(username))
	return err == nil && !info.IsDir()
}

// Load returns the stored repositories for a username.
// A missing file yields an empty corpus, not an error: a session over a
// user with no fetched data simply returns no results.
func (s *StarStore) Load(username string) ([]Repo, error) {
	data, err := os.ReadFile(s.Path(username))
	if err != nil {
		if os.IsNotExist(err) {
			return []Repo{}, nil
		}
		return nil, fmt.Errorf("failed to read stars for %s: %w", username, err)
	}

	var repos []Repo
	if err := json.Unmarshal(data, &repos); err != nil {
		return nil, fmt.Errorf("corrupt stars file for %s: %w", username, err)
	}
	return repos, nil
}

// Save atomically replaces the stored repositories for a username.
// Written via a temp file + rename so readers never observe a torn file.
func (s *StarStore) Save(username string, repos []Repo) error {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(repos, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal stars: %w", err)
	}

	return atomicWrite(s.Path(username), data)
}

// atomicWrite writes data to path via a temp file in the same directory.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
