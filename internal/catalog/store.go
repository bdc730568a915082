package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"

	"github.com/desertthunder/songsite/internal/models"
	"github.com/desertthunder/songsite/internal/shared"
)

// Store owns the process-wide catalog and popularity counters.
//
// Every read and mutation goes through one lock, so a search-triggered [Store.Increment] and a [Store.Clear]
// never interleave mid-operation; their relative order is whatever the requests race to.
type Store struct {
	mu      sync.RWMutex
	dir     string
	opts    BuildOptions
	catalog *Catalog
	plays   map[string]int
}

// NewStore returns an empty store that rebuilds from dir.
func NewStore(dir string, opts BuildOptions) *Store {
	return &Store{
		dir:     dir,
		opts:    opts,
		catalog: New(),
		plays:   make(map[string]int),
	}
}

// Dir returns the directory scanned by [Store.Rebuild].
func (s *Store) Dir() string {
	return s.dir
}

// Rebuild rescans the songs directory and replaces the catalog. Popularity counters are kept.
//
// On error the current catalog is left untouched.
func (s *Store) Rebuild() error {
	c, err := Build(s.dir, s.opts)
	if err != nil {
		return err
	}
	s.Replace(c)
	return nil
}

// Replace installs c as the catalog (static assignment).
func (s *Store) Replace(c *Catalog) {
	if c == nil {
		c = New()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = c.Clone()
}

// Clear empties the catalog and the popularity counters.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = New()
	s.plays = make(map[string]int)
}

// Len returns the number of catalog entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Len()
}

// Lookup returns the song stored under key.
func (s *Store) Lookup(key string) (models.Song, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Get(key)
}

// Resolve maps a download key to its song, checking that the backing file still exists.
//
// Returns an error wrapping [shared.ErrNotFound] for unknown keys and for files removed since the catalog was built.
func (s *Store) Resolve(key string) (models.Song, error) {
	song, ok := s.Lookup(key)
	if !ok {
		return models.Song{}, fmt.Errorf("%w: no song for key %q", shared.ErrNotFound, key)
	}

	info, err := os.Stat(song.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Song{}, fmt.Errorf("%w: file for %q is gone", shared.ErrNotFound, key)
		}
		return models.Song{}, fmt.Errorf("%w: %v", shared.ErrNotFound, err)
	}
	if info.IsDir() {
		return models.Song{}, fmt.Errorf("%w: %s is a directory", shared.ErrNotFound, song.Path)
	}

	return song, nil
}

// Match returns the catalog entries whose key contains query case-insensitively, in catalog order.
func (s *Store) Match(query string) []models.Song {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Match(query)
}

// Snapshot returns a copy of the current catalog.
func (s *Store) Snapshot() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Clone()
}

// Increment adds one hit to key and returns the new count.
// Keys not in the catalog are not counted and return 0.
func (s *Store) Increment(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.catalog.Has(key) {
		return 0
	}
	s.plays[key]++
	return s.plays[key]
}

// Plays returns the hit count for key.
func (s *Store) Plays(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plays[key]
}

// Popular returns up to n catalog keys with a non-zero count, most hits first, ties broken by key.
// Counts for keys dropped by a rebuild are kept but not listed. A non-positive n returns all of them.
func (s *Store) Popular(n int) []models.Popularity {
	s.mu.RLock()
	out := make([]models.Popularity, 0, len(s.plays))
	for key, count := range s.plays {
		if count > 0 && s.catalog.Has(key) {
			out = append(out, models.Popularity{Key: key, Count: count})
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
