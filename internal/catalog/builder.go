package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songsite/internal/models"
	"github.com/desertthunder/songsite/internal/shared"
)

// AudioExtensions is the allow-list of file extensions considered by [Build].
var AudioExtensions = []string{".mp3", ".wav", ".m4a", ".ogg", ".flac", ".aac"}

// BuildOptions tunes a directory scan.
type BuildOptions struct {
	ReadTags bool        // Read title/artist/album tags from each file
	Logger   *log.Logger // Optional; receives per-file debug output
}

// IsAudioFile reports whether name has an allow-listed extension, compared case-insensitively.
func IsAudioFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range AudioExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// SongKey derives a catalog key from a file name: the name without its extension, trimmed of surrounding whitespace.
func SongKey(name string) string {
	return strings.TrimSpace(strings.TrimSuffix(name, filepath.Ext(name)))
}

// Build scans dir (non-recursively) and returns a catalog of its audio files in filename order.
//
// Returns an error wrapping [shared.ErrCatalogUnavailable] when dir does not exist or is not a directory.
func Build(dir string, opts BuildOptions) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: songs folder not found: %s", shared.ErrCatalogUnavailable, dir)
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrCatalogUnavailable, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", shared.ErrCatalogUnavailable, dir)
	}

	// os.ReadDir returns entries sorted by filename.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", shared.ErrCatalogUnavailable, dir, err)
	}

	c := New()
	for _, entry := range entries {
		name := entry.Name()
		if !IsAudioFile(name) {
			continue
		}

		full := filepath.Join(dir, name)
		fi, err := os.Stat(full)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}

		song := models.Song{
			Key:      SongKey(name),
			Path:     filepath.ToSlash(full),
			Filename: name,
			Ext:      strings.ToLower(filepath.Ext(name)),
			Size:     fi.Size(),
		}

		if opts.ReadTags {
			if meta, err := readTags(full); err == nil {
				song.Title, song.Artist, song.Album = meta.title, meta.artist, meta.album
			} else if opts.Logger != nil {
				opts.Logger.Debug("no tags", "file", name, "error", err)
			}
		}

		key := c.Add(song)
		if opts.Logger != nil {
			opts.Logger.Debug("catalogued", "key", key, "path", song.Path)
		}
	}

	return c, nil
}
