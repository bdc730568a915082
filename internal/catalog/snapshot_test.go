package catalog

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/songsite/internal/models"
	tu "github.com/desertthunder/songsite/internal/testing"
)

func TestSnapshot(t *testing.T) {
	t.Run("MarshalSnapshot keeps order and unicode", func(t *testing.T) {
		c := FromSongs(
			models.Song{Key: "kabira", Path: "songs/kabira.mp3"},
			models.Song{Key: "दिल", Path: "songs/दिल.mp3"},
			models.Song{Key: "a&b", Path: "songs/a&b.mp3"},
		)

		data, err := MarshalSnapshot(c)
		if err != nil {
			t.Fatalf("MarshalSnapshot() error = %v", err)
		}

		want := "{\n" +
			"  \"kabira\": \"songs/kabira.mp3\",\n" +
			"  \"दिल\": \"songs/दिल.mp3\",\n" +
			"  \"a&b\": \"songs/a&b.mp3\"\n" +
			"}\n"
		if string(data) != want {
			t.Errorf("MarshalSnapshot() =\n%s\nwant\n%s", data, want)
		}
	})

	t.Run("empty catalog", func(t *testing.T) {
		data, err := MarshalSnapshot(New())
		if err != nil {
			t.Fatal(err)
		}
		if strings.TrimSpace(string(data)) != "{}" {
			t.Errorf("expected empty object, got %q", data)
		}
	})

	t.Run("WriteSnapshot and ReadSnapshot", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out", "download_map.json")

		if err := WriteSnapshot(path, exampleCatalog()); err != nil {
			t.Fatalf("WriteSnapshot() error = %v", err)
		}
		tu.AssertFileExists(t, path)

		mapping, err := ReadSnapshot(path)
		if err != nil {
			t.Fatalf("ReadSnapshot() error = %v", err)
		}
		if mapping["arijit_song"] != "songs/arijit_song.mp3" || mapping["kabira"] != "songs/kabira.mp3" {
			t.Errorf("unexpected mapping %v", mapping)
		}
	})

	t.Run("ReadSnapshot rejects malformed files", func(t *testing.T) {
		path := tu.MustWriteFile(t, t.TempDir(), "bad.json", "[1,2]")
		if _, err := ReadSnapshot(path); err == nil {
			t.Error("expected parse error")
		}
	})
}
