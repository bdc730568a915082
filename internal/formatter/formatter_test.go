package formatter

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/songsite/internal/models"
	"github.com/desertthunder/songsite/internal/shared"
	th "github.com/desertthunder/songsite/internal/testing"
)

func exampleListing() *Listing {
	return &Listing{
		SongsDir: "songs",
		Songs: []models.Song{
			{Key: "arijit_song", Path: "songs/arijit_song.mp3", Ext: ".mp3", Size: 2048, Title: "Tum Hi Ho", Artist: "Arijit Singh"},
			{Key: "kabira", Path: "songs/kabira.mp3", Ext: ".mp3", Size: 512},
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(exampleListing())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("CSV did not parse: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected header + 2 rows, got %d", len(records))
		}
		if strings.Join(records[0], ",") != "Key,Path,Ext,Size,Title,Artist,Album" {
			t.Errorf("unexpected headers %v", records[0])
		}
		if records[1][0] != "arijit_song" || records[1][4] != "Tum Hi Ho" || records[1][3] != "2048" {
			t.Errorf("unexpected first row %v", records[1])
		}
		if len(records[2]) != 7 || records[2][0] != "kabira" {
			t.Errorf("unexpected second row %v", records[2])
		}
	})

	t.Run("ExportToCSV quotes commas", func(t *testing.T) {
		listing := &Listing{Songs: []models.Song{{Key: "a, b", Path: "songs/a, b.mp3"}}}
		data, err := ExportToCSV(listing)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}
		if !strings.Contains(string(data), `"a, b"`) {
			t.Errorf("expected quoted key, got %s", data)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(exampleListing())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			"# Song Catalog",
			"**Directory**: `songs`",
			"**Songs**: 2",
			"| 1 | arijit_song | Tum Hi Ho | Arijit Singh | 2.0 KiB |",
			"| 2 | kabira |  |  | 512 B |",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("ExportToMarkdown escapes pipes", func(t *testing.T) {
		data, _ := ExportToMarkdown(&Listing{Songs: []models.Song{{Key: "a|b"}}})
		if !strings.Contains(string(data), `a\|b`) {
			t.Errorf("pipe not escaped: %s", data)
		}
	})

	t.Run("ExportToMarkdown empty", func(t *testing.T) {
		data, _ := ExportToMarkdown(&Listing{})
		if strings.Contains(string(data), "| # |") {
			t.Error("empty listing should not render a table")
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(exampleListing())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Songs: 2") {
			t.Errorf("Text missing count, got: %s", output)
		}
		if !strings.Contains(output, "1. arijit_song -> songs/arijit_song.mp3 (Arijit Singh - Tum Hi Ho)") {
			t.Errorf("Text missing first song, got: %s", output)
		}
		if !strings.Contains(output, "2. kabira -> songs/kabira.mp3\n") {
			t.Errorf("Text missing second song, got: %s", output)
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(exampleListing())
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		var decoded struct {
			Count int `json:"count"`
			Songs []struct {
				Key  string `json:"key"`
				Size int64  `json:"size"`
			} `json:"songs"`
		}
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.Count != 2 || decoded.Songs[1].Key != "kabira" || decoded.Songs[1].Size != 512 {
			t.Errorf("unexpected JSON %s", data)
		}
	})

	t.Run("ExportToJSON empty", func(t *testing.T) {
		data, _ := ExportToJSON(&Listing{})
		if !strings.Contains(string(data), `"songs": []`) {
			t.Errorf("expected empty array, got %s", data)
		}
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: FormatText},
		{in: "TXT", want: FormatText},
		{in: "csv", want: FormatCSV},
		{in: "md", want: FormatMarkdown},
		{in: " Markdown ", want: FormatMarkdown},
		{in: "json", want: FormatJSON},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, shared.ErrInvalidArgument) {
					t.Errorf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestWriteExport(t *testing.T) {
	t.Run("creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out", "catalog.csv")
		if err := WriteExport(path, FormatForPath(path), exampleListing()); err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}

		th.AssertFileExists(t, path)
		if content := th.MustReadFile(t, path); !strings.HasPrefix(content, "Key,Path") {
			t.Errorf("expected CSV content, got %s", content)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.xml")
		if err := WriteExport(path, "xml", exampleListing()); err == nil {
			t.Error("expected error")
		}
		th.AssertFileMissing(t, path)
	})
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]string{
		"a.csv":      FormatCSV,
		"a.MD":       FormatMarkdown,
		"a.markdown": FormatMarkdown,
		"a.json":     FormatJSON,
		"a.txt":      FormatText,
		"a":          FormatText,
	}
	for path, want := range tests {
		if got := FormatForPath(path); got != want {
			t.Errorf("FormatForPath(%q) = %q, want %q", path, got, want)
		}
	}
}
