package catalog

import (
	"fmt"
	"sort"

	"github.com/desertthunder/songsite/internal/models"
	"github.com/desertthunder/songsite/internal/shared"
)

// Catalog is an insertion-ordered mapping from download key to [models.Song].
type Catalog struct {
	keys  []string
	songs map[string]models.Song
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{songs: make(map[string]models.Song)}
}

// FromSongs builds a catalog from songs in order, de-duplicating keys.
func FromSongs(songs ...models.Song) *Catalog {
	c := New()
	for _, song := range songs {
		c.Add(song)
	}
	return c
}

// Add inserts song, suffixing its key with _1, _2, ... until it is unique, and returns the key it was stored under.
func (c *Catalog) Add(song models.Song) string {
	key := UniqueKey(song.Key, c.Has)
	song.Key = key
	c.keys = append(c.keys, key)
	c.songs[key] = song
	return key
}

// UniqueKey returns key, or key_N for the smallest N >= 1 that taken reports as free.
func UniqueKey(key string, taken func(string) bool) string {
	if !taken(key) {
		return key
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d", key, i)
		if !taken(candidate) {
			return candidate
		}
	}
}

// Has reports whether key is in the catalog.
func (c *Catalog) Has(key string) bool {
	_, ok := c.songs[key]
	return ok
}

// Get returns the song stored under key.
func (c *Catalog) Get(key string) (models.Song, bool) {
	song, ok := c.songs[key]
	return song, ok
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.keys)
}

// Keys returns the keys in insertion order.
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Songs returns the entries in insertion order.
func (c *Catalog) Songs() []models.Song {
	songs := make([]models.Song, 0, len(c.keys))
	for _, key := range c.keys {
		songs = append(songs, c.songs[key])
	}
	return songs
}

// Sorted returns the entries ordered lexicographically by key, for display.
func (c *Catalog) Sorted() []models.Song {
	songs := c.Songs()
	sort.Slice(songs, func(i, j int) bool { return songs[i].Key < songs[j].Key })
	return songs
}

// Match returns, in insertion order, every entry whose key contains query case-insensitively.
// An empty query matches everything.
func (c *Catalog) Match(query string) []models.Song {
	var matches []models.Song
	for _, key := range c.keys {
		if shared.ContainsFold(key, query) {
			matches = append(matches, c.songs[key])
		}
	}
	return matches
}

// Clone returns an independent copy.
func (c *Catalog) Clone() *Catalog {
	clone := &Catalog{
		keys:  append([]string(nil), c.keys...),
		songs: make(map[string]models.Song, len(c.songs)),
	}
	for k, v := range c.songs {
		clone.songs[k] = v
	}
	return clone
}
