package catalog

import (
	"os"
	"strings"

	"github.com/dhowden/tag"
)

type tagMetadata struct {
	title  string
	artist string
	album  string
}

// readTags reads ID3/MP4/FLAC/OGG metadata from the file at path.
func readTags(path string) (tagMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return tagMetadata{}, err
	}
	defer f.Close()

	metadata, err := tag.ReadFrom(f)
	if err != nil {
		return tagMetadata{}, err
	}

	return tagMetadata{
		title:  strings.TrimSpace(metadata.Title()),
		artist: strings.TrimSpace(metadata.Artist()),
		album:  strings.TrimSpace(metadata.Album()),
	}, nil
}
