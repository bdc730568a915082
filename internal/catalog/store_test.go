package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/desertthunder/songsite/internal/models"
	"github.com/desertthunder/songsite/internal/shared"
	tu "github.com/desertthunder/songsite/internal/testing"
)

func TestStore(t *testing.T) {
	t.Run("starts empty", func(t *testing.T) {
		s := NewStore("songs", BuildOptions{})
		if s.Len() != 0 {
			t.Errorf("expected empty store, got %d", s.Len())
		}
		if s.Dir() != "songs" {
			t.Errorf("unexpected dir %q", s.Dir())
		}
	})

	t.Run("Rebuild", func(t *testing.T) {
		dir := tu.SongsDir(t, "a.mp3", "b.wav")
		s := NewStore(dir, BuildOptions{})

		if err := s.Rebuild(); err != nil {
			t.Fatalf("Rebuild() error = %v", err)
		}
		if s.Len() != 2 {
			t.Fatalf("expected 2 entries, got %d", s.Len())
		}

		tu.MustWriteFile(t, dir, "c.ogg", "c")
		if err := s.Rebuild(); err != nil {
			t.Fatalf("Rebuild() error = %v", err)
		}
		if _, ok := s.Lookup("c"); !ok {
			t.Error("expected rebuild to pick up new file")
		}
	})

	t.Run("Rebuild of missing dir keeps state", func(t *testing.T) {
		s := NewStore(filepath.Join(t.TempDir(), "missing"), BuildOptions{})
		s.Replace(exampleCatalog())

		err := s.Rebuild()
		if !errors.Is(err, shared.ErrCatalogUnavailable) {
			t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
		}
		if s.Len() != 2 {
			t.Errorf("expected catalog untouched, got %d entries", s.Len())
		}
	})

	t.Run("Resolve", func(t *testing.T) {
		dir := tu.SongsDir(t, "arijit_song.mp3", "kabira.mp3")
		s := NewStore(dir, BuildOptions{})
		if err := s.Rebuild(); err != nil {
			t.Fatal(err)
		}

		song, err := s.Resolve("arijit_song")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if filepath.Base(song.Path) != "arijit_song.mp3" {
			t.Errorf("unexpected path %q", song.Path)
		}

		if _, err := s.Resolve("missing"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound for unknown key, got %v", err)
		}

		if err := os.Remove(filepath.Join(dir, "kabira.mp3")); err != nil {
			t.Fatal(err)
		}
		if _, err := s.Resolve("kabira"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound for deleted file, got %v", err)
		}
	})

	t.Run("Resolve never accepts paths", func(t *testing.T) {
		dir := tu.SongsDir(t, "a.mp3")
		s := NewStore(dir, BuildOptions{})
		if err := s.Rebuild(); err != nil {
			t.Fatal(err)
		}

		for _, key := range []string{"../a", filepath.Join(dir, "a.mp3"), "a.mp3", "/etc/passwd"} {
			if _, err := s.Resolve(key); !errors.Is(err, shared.ErrNotFound) {
				t.Errorf("Resolve(%q) should be not found, got %v", key, err)
			}
		}
	})

	t.Run("Increment and Popular", func(t *testing.T) {
		s := NewStore("", BuildOptions{})
		s.Replace(FromSongs(models.Song{Key: "a"}, models.Song{Key: "b"}, models.Song{Key: "c"}))

		s.Increment("b")
		s.Increment("b")
		s.Increment("a")
		s.Increment("c")
		if got := s.Increment("b"); got != 3 {
			t.Errorf("expected count 3, got %d", got)
		}
		if got := s.Increment("unknown"); got != 0 {
			t.Errorf("unknown keys should not be counted, got %d", got)
		}

		popular := s.Popular(2)
		if len(popular) != 2 {
			t.Fatalf("expected 2 popular entries, got %d", len(popular))
		}
		if popular[0] != (models.Popularity{Key: "b", Count: 3}) {
			t.Errorf("unexpected first entry %+v", popular[0])
		}
		if popular[1] != (models.Popularity{Key: "a", Count: 1}) {
			t.Errorf("ties should break by key, got %+v", popular[1])
		}
		if len(s.Popular(0)) != 3 {
			t.Error("non-positive n should return every counted key")
		}
	})

	t.Run("Popular skips keys removed by a rebuild", func(t *testing.T) {
		dir := tu.SongsDir(t, "a.mp3", "b.mp3")
		s := NewStore(dir, BuildOptions{})
		if err := s.Rebuild(); err != nil {
			t.Fatalf("Rebuild() error = %v", err)
		}
		s.Increment("a")
		s.Increment("b")

		if err := os.Remove(filepath.Join(dir, "b.mp3")); err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		if err := s.Rebuild(); err != nil {
			t.Fatalf("Rebuild() error = %v", err)
		}

		popular := s.Popular(0)
		if len(popular) != 1 || popular[0].Key != "a" {
			t.Errorf("expected only a, got %+v", popular)
		}

		tu.MustWriteFile(t, dir, "b.mp3", "b")
		if err := s.Rebuild(); err != nil {
			t.Fatalf("Rebuild() error = %v", err)
		}
		if len(s.Popular(0)) != 2 {
			t.Error("expected b's count back once the file returns")
		}
	})

	t.Run("Clear empties catalog and counters", func(t *testing.T) {
		s := NewStore("", BuildOptions{})
		s.Replace(exampleCatalog())
		s.Increment("kabira")

		s.Clear()

		if s.Len() != 0 {
			t.Errorf("expected empty catalog, got %d", s.Len())
		}
		if s.Plays("kabira") != 0 || len(s.Popular(0)) != 0 {
			t.Error("expected counters cleared")
		}
	})

	t.Run("Snapshot is a copy", func(t *testing.T) {
		s := NewStore("", BuildOptions{})
		s.Replace(exampleCatalog())
		snap := s.Snapshot()
		s.Clear()
		if snap.Len() != 2 {
			t.Error("snapshot should survive Clear")
		}
	})

	t.Run("concurrent increments and clears", func(t *testing.T) {
		s := NewStore("", BuildOptions{})
		s.Replace(exampleCatalog())

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				s.Increment("kabira")
				s.Match("a")
			}()
			go func() {
				defer wg.Done()
				if i%10 == 0 {
					s.Clear()
					s.Replace(exampleCatalog())
				}
				s.Popular(1)
			}()
		}
		wg.Wait()

		if s.Plays("kabira") < 0 {
			t.Error("count must never be negative")
		}
	})
}
