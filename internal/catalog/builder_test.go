package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/songsite/internal/shared"
	tu "github.com/desertthunder/songsite/internal/testing"
)

func TestBuild(t *testing.T) {
	t.Run("one entry per audio file keyed by stem", func(t *testing.T) {
		dir := tu.SongsDir(t, "kabira.mp3", "arijit_song.mp3", "tum hi ho.flac")

		c, err := Build(dir, BuildOptions{})
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}

		if c.Len() != 3 {
			t.Fatalf("expected 3 entries, got %d", c.Len())
		}

		want := []string{"arijit_song", "kabira", "tum hi ho"}
		for i, key := range c.Keys() {
			if key != want[i] {
				t.Errorf("key[%d] = %q, want %q", i, key, want[i])
			}
		}

		song, ok := c.Get("kabira")
		if !ok {
			t.Fatal("expected kabira in catalog")
		}
		if song.Path != filepath.ToSlash(filepath.Join(dir, "kabira.mp3")) {
			t.Errorf("unexpected path %q", song.Path)
		}
		if song.Ext != ".mp3" || song.Filename != "kabira.mp3" {
			t.Errorf("unexpected ext/filename %q/%q", song.Ext, song.Filename)
		}
		if song.Size != int64(len("audio:kabira.mp3")) {
			t.Errorf("unexpected size %d", song.Size)
		}
	})

	t.Run("ignores files outside the allow-list", func(t *testing.T) {
		dir := tu.SongsDir(t, "cover.jpg", "notes.txt", "song.MP3", "clip.Ogg", "noext")
		if err := os.Mkdir(filepath.Join(dir, "nested.mp3"), 0755); err != nil {
			t.Fatal(err)
		}

		c, err := Build(dir, BuildOptions{})
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}

		if c.Len() != 2 {
			t.Fatalf("expected 2 entries, got %d: %v", c.Len(), c.Keys())
		}
		if !c.Has("song") || !c.Has("clip") {
			t.Errorf("expected upper-case extensions to qualify, got %v", c.Keys())
		}
	})

	t.Run("collisions are suffixed in scan order", func(t *testing.T) {
		dir := tu.SongsDir(t, "track.flac", "track.mp3", "track.wav", "track_1.aac")

		c, err := Build(dir, BuildOptions{})
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}

		// "track_1.aac" sorts after "track.wav" and its own stem is already taken.
		want := map[string]string{
			"track":     "track.flac",
			"track_1":   "track.mp3",
			"track_2":   "track.wav",
			"track_1_1": "track_1.aac",
		}
		if c.Len() != len(want) {
			t.Fatalf("expected %d entries, got %v", len(want), c.Keys())
		}
		for key, file := range want {
			song, ok := c.Get(key)
			if !ok {
				t.Errorf("missing key %q", key)
				continue
			}
			if song.Filename != file {
				t.Errorf("key %q -> %q, want %q", key, song.Filename, file)
			}
		}
	})

	t.Run("keys are trimmed", func(t *testing.T) {
		dir := tu.SongsDir(t, "  spaced out .mp3")

		c, err := Build(dir, BuildOptions{})
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if !c.Has("spaced out") {
			t.Errorf("expected trimmed key, got %v", c.Keys())
		}
	})

	t.Run("missing directory is unavailable", func(t *testing.T) {
		_, err := Build(filepath.Join(t.TempDir(), "nope"), BuildOptions{})
		if !errors.Is(err, shared.ErrCatalogUnavailable) {
			t.Errorf("expected ErrCatalogUnavailable, got %v", err)
		}
	})

	t.Run("file instead of directory is unavailable", func(t *testing.T) {
		path := tu.MustWriteFile(t, t.TempDir(), "songs", "")
		_, err := Build(path, BuildOptions{})
		if !errors.Is(err, shared.ErrCatalogUnavailable) {
			t.Errorf("expected ErrCatalogUnavailable, got %v", err)
		}
	})

	t.Run("empty directory gives empty catalog", func(t *testing.T) {
		c, err := Build(tu.SongsDir(t), BuildOptions{})
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if c.Len() != 0 {
			t.Errorf("expected empty catalog, got %v", c.Keys())
		}
	})

	t.Run("untagged files keep empty metadata", func(t *testing.T) {
		dir := tu.SongsDir(t, "raw.mp3")

		c, err := Build(dir, BuildOptions{ReadTags: true, Logger: shared.NewLogger(&discard{})})
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		song, _ := c.Get("raw")
		if song.Artist != "" || song.Title != "" {
			t.Errorf("expected no tags, got %+v", song)
		}
		if song.DisplayTitle() != "raw" {
			t.Errorf("expected display title to fall back to key, got %q", song.DisplayTitle())
		}
	})
}

func TestIsAudioFile(t *testing.T) {
	tc := []struct {
		name string
		want bool
	}{
		{"a.mp3", true},
		{"a.WAV", true},
		{"a.m4a", true},
		{"a.ogg", true},
		{"a.flac", true},
		{"a.aac", true},
		{"a.mp4", false},
		{"mp3", false},
		{"a.mp3.txt", false},
	}

	for _, tt := range tc {
		if got := IsAudioFile(tt.name); got != tt.want {
			t.Errorf("IsAudioFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
