package models

import (
	"fmt"
	"time"
)

// Song is a catalog entry: a unique download key mapped to an audio file.
type Song struct {
	Key      string // Filename stem, trimmed and de-duplicated with a _N suffix
	Path     string // Songs dir joined with Filename, slash separated
	Filename string
	Ext      string // Lower-cased extension including the dot
	Size     int64
	Title    string // From tags; empty when the file has none
	Artist   string
	Album    string
}

// DisplayTitle prefers the tagged title and falls back to the key.
func (s Song) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return s.Key
}

// Video is a remote search hit.
type Video struct {
	ID        string
	Title     string
	Channel   string
	Thumbnail string
}

// WatchURL returns the public YouTube page for the video.
func (v Video) WatchURL() string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", v.ID)
}

// Result is one search result as shown to the user.
//
// Placeholder results carry neither a StreamURL nor a VideoID; they only drive an embedded search widget.
type Result struct {
	Title       string `json:"title"`
	Artist      string `json:"artist,omitempty"`
	StreamURL   string `json:"stream_url,omitempty"`
	DownloadKey string `json:"download_key,omitempty"`
	VideoID     string `json:"video_id,omitempty"`
	EmbedURL    string `json:"embed_url,omitempty"`
	WatchURL    string `json:"watch_url,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
	Plays       int    `json:"plays,omitempty"`
}

// Downloadable reports whether the result resolves to a local file.
func (r Result) Downloadable() bool {
	return r.DownloadKey != ""
}

// Popularity pairs a catalog key with its search hit count.
type Popularity struct {
	Key   string
	Count int
}

// PersistedSong is a [Song] stored in a catalog snapshot database.
type PersistedSong struct {
	id         string
	snapshotID string
	position   int
	song       Song
}

// NewPersistedSong creates a snapshot row for song at the given catalog position.
func NewPersistedSong(snapshotID string, position int, song Song) *PersistedSong {
	return &PersistedSong{
		snapshotID: snapshotID,
		position:   position,
		song:       song,
	}
}

// RestorePersistedSong rebuilds a row read back from the database.
func RestorePersistedSong(id, snapshotID string, position int, song Song) *PersistedSong {
	return &PersistedSong{id: id, snapshotID: snapshotID, position: position, song: song}
}

func (p *PersistedSong) ID() string         { return p.id }
func (p *PersistedSong) SetID(id string)    { p.id = id }
func (p *PersistedSong) SnapshotID() string { return p.snapshotID }
func (p *PersistedSong) Position() int      { return p.position }
func (p *PersistedSong) Song() Song         { return p.song }

// Validate checks that the row can be written.
func (p *PersistedSong) Validate() error {
	if p.snapshotID == "" {
		return fmt.Errorf("snapshot id is required")
	}
	if p.song.Key == "" {
		return fmt.Errorf("song key is required")
	}
	if p.song.Path == "" {
		return fmt.Errorf("song path is required")
	}
	if p.position < 0 {
		return fmt.Errorf("position must be non-negative")
	}
	return nil
}

// Snapshot describes one exported catalog.
type Snapshot struct {
	ID        string
	SongsDir  string
	SongCount int
	CreatedAt time.Time
}
