package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// MarshalSnapshot encodes the catalog as a JSON object of key → path, preserving catalog order.
//
// Output is indented with two spaces and keeps non-ASCII characters unescaped.
func MarshalSnapshot(c *Catalog) ([]byte, error) {
	var buf bytes.Buffer
	songs := c.Songs()
	if len(songs) == 0 {
		return []byte("{}\n"), nil
	}

	buf.WriteString("{\n")
	for i, song := range songs {
		key, err := marshalString(song.Key)
		if err != nil {
			return nil, err
		}
		path, err := marshalString(song.Path)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "  %s: %s", key, path)
		if i < len(songs)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")

	return buf.Bytes(), nil
}

func marshalString(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("failed to encode %q: %w", s, err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// WriteSnapshot writes the download_map.json artifact for c to path, creating parent directories.
func WriteSnapshot(path string, c *Catalog) error {
	data, err := MarshalSnapshot(c)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot decodes a download_map.json file into key → path pairs. Used by tooling, not by the server.
func ReadSnapshot(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var mapping map[string]string
	if err := json.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return mapping, nil
}
