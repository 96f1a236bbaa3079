package cache

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// FileName is the cache file name inside the metadata directory.
const FileName = ".blame-cache"

// Key identifies a cached blame result.
type Key struct {
	Path  string
	Start uint32
	End   uint32
	OID   string
}

// Entry is a persisted blame result.
type Entry struct {
	Path  string `json:"path"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
	OID   string `json:"oid"`
	Email string `json:"email"`
}

// Key returns the cache key of e.
func (e Entry) Key() Key {
	return Key{Path: e.Path, Start: e.Start, End: e.End, OID: e.OID}
}

// Store is an in-memory copy of the cache file.
type Store struct {
	Entries []Entry `json:"entries"`
}

// Path returns the cache file location for a repository root.
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, ".codereports", FileName)
}

// Load reads the cache file. A missing or unparsable file yields an empty store.
func Load(path string) *Store {
	s, _ := Read(path)
	return s
}

// Read is Load that also reports why the store came back empty. The returned
// store is never nil.
func Read(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Store{}, err
	}
	var s Store
	if err := json.Unmarshal(data, &s); err != nil {
		return &Store{}, errors.Wrap(err, "parsing blame cache")
	}
	return &s, nil
}

// Lookup returns the identity stored under k.
func (s *Store) Lookup(k Key) (string, bool) {
	for _, e := range s.Entries {
		if e.Key() == k {
			return e.Email, true
		}
	}
	return "", false
}

// Upsert replaces any entry stored under k with identity.
func (s *Store) Upsert(k Key, identity string) {
	kept := s.Entries[:0]
	for _, e := range s.Entries {
		if e.Key() != k {
			kept = append(kept, e)
		}
	}
	s.Entries = append(kept, Entry{
		Path:  k.Path,
		Start: k.Start,
		End:   k.End,
		OID:   k.OID,
		Email: identity,
	})
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.Entries)
}

// Persist writes the whole store to path, creating parent directories.
func (s *Store) Persist(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating cache directory")
	}
	if s.Entries == nil {
		s.Entries = []Entry{}
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling blame cache")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "writing blame cache")
	}
	return nil
}

// Stats describes the cache file.
type Stats struct {
	Path       string `json:"path"`
	Exists     bool   `json:"exists"`
	Corrupt    bool   `json:"corrupt"`
	Entries    int    `json:"entries"`
	Paths      int    `json:"paths"`
	TotalBytes int64  `json:"totalBytes"`
}

// GetStats returns information about the cache file at path.
func GetStats(path string) (Stats, error) {
	stats := Stats{Path: path}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return stats, errors.Wrap(err, "reading cache file")
	}
	stats.Exists = true
	stats.TotalBytes = info.Size()

	s, err := Read(path)
	if err != nil {
		stats.Corrupt = true
		return stats, nil
	}
	stats.Entries = s.Len()
	seen := make(map[string]bool)
	for _, e := range s.Entries {
		seen[e.Path] = true
	}
	stats.Paths = len(seen)
	return stats, nil
}

// Clear removes the cache file. A missing file is not an error.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing blame cache")
	}
	return nil
}
