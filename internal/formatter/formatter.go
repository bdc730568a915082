// package formatter renders catalog listings as CSV, Markdown, JSON or plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/songsite/internal/models"
	"github.com/desertthunder/songsite/internal/shared"
)

// Supported listing formats.
const (
	FormatText     = "text"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Formats lists every value accepted by [ParseFormat], in help-text order.
var Formats = []string{FormatText, FormatCSV, FormatMarkdown, FormatJSON}

// Listing is a catalog view ready for export.
type Listing struct {
	SongsDir string
	Query    string
	Songs    []models.Song
}

// ParseFormat normalises a user-supplied format name. "md" and "txt" are accepted aliases.
func ParseFormat(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FormatText, "txt":
		return FormatText, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (want one of %s)", shared.ErrInvalidArgument, name, strings.Join(Formats, ", "))
	}
}

// Format renders listing in the named format.
func Format(format string, listing *Listing) ([]byte, error) {
	format, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatCSV:
		return ExportToCSV(listing)
	case FormatMarkdown:
		return ExportToMarkdown(listing)
	case FormatJSON:
		return ExportToJSON(listing)
	default:
		return ExportToText(listing)
	}
}

// ExportToCSV converts a Listing to CSV format with columns: Key, Path, Ext, Size, Title, Artist, Album
func ExportToCSV(listing *Listing) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Key", "Path", "Ext", "Size", "Title", "Artist", "Album"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range listing.Songs {
		record := []string{
			song.Key,
			song.Path,
			song.Ext,
			strconv.FormatInt(song.Size, 10),
			song.Title,
			song.Artist,
			song.Album,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a Listing to a Markdown table
func ExportToMarkdown(listing *Listing) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Song Catalog\n\n")
	if listing.SongsDir != "" {
		buf.WriteString(fmt.Sprintf("**Directory**: `%s`\n", listing.SongsDir))
	}
	if listing.Query != "" {
		buf.WriteString(fmt.Sprintf("**Query**: %s\n", markdownEscape(listing.Query)))
	}
	buf.WriteString(fmt.Sprintf("**Songs**: %d\n\n", len(listing.Songs)))

	if len(listing.Songs) == 0 {
		return buf.Bytes(), nil
	}

	buf.WriteString("| # | Key | Title | Artist | Size |\n")
	buf.WriteString("|---|-----|-------|--------|------|\n")
	for i, song := range listing.Songs {
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n",
			i+1,
			markdownEscape(song.Key),
			markdownEscape(song.Title),
			markdownEscape(song.Artist),
			shared.FormatSize(song.Size),
		))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a Listing to plain text format
func ExportToText(listing *Listing) ([]byte, error) {
	var buf bytes.Buffer

	if listing.SongsDir != "" {
		buf.WriteString(fmt.Sprintf("Directory: %s\n", listing.SongsDir))
	}
	buf.WriteString(fmt.Sprintf("Songs: %d\n\n", len(listing.Songs)))

	for i, song := range listing.Songs {
		line := fmt.Sprintf("%d. %s -> %s", i+1, song.Key, song.Path)
		if song.Artist != "" || song.Title != "" {
			line += fmt.Sprintf(" (%s - %s)", song.Artist, song.DisplayTitle())
		}
		buf.WriteString(line + "\n")
	}

	return buf.Bytes(), nil
}

type jsonSong struct {
	Key    string `json:"key"`
	Path   string `json:"path"`
	Ext    string `json:"ext"`
	Size   int64  `json:"size"`
	Title  string `json:"title,omitempty"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
}

type jsonListing struct {
	SongsDir string     `json:"songs_dir,omitempty"`
	Query    string     `json:"query,omitempty"`
	Count    int        `json:"count"`
	Songs    []jsonSong `json:"songs"`
}

// ExportToJSON converts a Listing to indented JSON
func ExportToJSON(listing *Listing) ([]byte, error) {
	out := jsonListing{
		SongsDir: listing.SongsDir,
		Query:    listing.Query,
		Count:    len(listing.Songs),
		Songs:    make([]jsonSong, 0, len(listing.Songs)),
	}
	for _, s := range listing.Songs {
		out.Songs = append(out.Songs, jsonSong{
			Key:    s.Key,
			Path:   s.Path,
			Ext:    s.Ext,
			Size:   s.Size,
			Title:  s.Title,
			Artist: s.Artist,
			Album:  s.Album,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteExport renders listing and writes it to path, creating parent directories.
func WriteExport(path, format string, listing *Listing) error {
	data, err := Format(format, listing)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// FormatForPath guesses a format from a file extension, defaulting to text.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".md", ".markdown":
		return FormatMarkdown
	case ".json":
		return FormatJSON
	default:
		return FormatText
	}
}

var markdownReplacer = strings.NewReplacer("|", `\|`, "\n", " ", "\r", "")

func markdownEscape(s string) string {
	return markdownReplacer.Replace(s)
}
