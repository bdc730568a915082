package repositories

import (
	"database/sql"
	"fmt"
	"path"

	"github.com/desertthunder/songsite/internal/models"
	"github.com/desertthunder/songsite/internal/shared"
)

// SongRepository reads the song rows written by [SnapshotRepository.Save].
type SongRepository struct {
	db *sql.DB
}

// NewSongRepository creates a new SongRepository with the given database connection
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

const songColumns = `id, snapshot_id, position, song_key, path, ext, size, title, artist, album`

func insertSong(db execer, song *models.PersistedSong) error {
	song.SetID(shared.GenerateID())

	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	s := song.Song()
	query := `
		INSERT INTO songs (` + songColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		song.ID(),
		song.SnapshotID(),
		song.Position(),
		s.Key,
		s.Path,
		s.Ext,
		s.Size,
		nullString(s.Title),
		nullString(s.Artist),
		nullString(s.Album),
	)
	if err != nil {
		return fmt.Errorf("failed to insert song %q: %w", s.Key, err)
	}

	return nil
}

// GetByKey retrieves the row for key within a snapshot
func (r *SongRepository) GetByKey(snapshotID, key string) (*models.PersistedSong, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE snapshot_id = ? AND song_key = ?`

	song, err := scanSong(r.db.QueryRow(query, snapshotID, key))
	if err != nil {
		return nil, notFound(err, "song", key)
	}
	return song, nil
}

// List retrieves song rows in catalog order.
//
// Supported criteria: "snapshot_id" (string) and "ext" (string, e.g. ".mp3").
func (r *SongRepository) List(criteria map[string]any) ([]*models.PersistedSong, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE 1 = 1`
	args := []any{}

	if snapshotID, ok := criteria["snapshot_id"].(string); ok && snapshotID != "" {
		query += " AND snapshot_id = ?"
		args = append(args, snapshotID)
	}

	if ext, ok := criteria["ext"].(string); ok && ext != "" {
		query += " AND ext = ?"
		args = append(args, ext)
	}

	query += " ORDER BY snapshot_id ASC, position ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	var songs []*models.PersistedSong
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return songs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanSong scans a single row from [sql.Row] or [sql.Rows] into a [models.PersistedSong]
func scanSong(row scanner) (*models.PersistedSong, error) {
	var (
		id, snapshotID, key, songPath, ext string
		position                       int
		size                           int64
		title, artist, album           sql.NullString
	)

	if err := row.Scan(&id, &snapshotID, &position, &key, &songPath, &ext, &size, &title, &artist, &album); err != nil {
		return nil, err
	}

	song := models.Song{
		Key:      key,
		Path:     songPath,
		Filename: path.Base(songPath),
		Ext:      ext,
		Size:     size,
		Title:    title.String,
		Artist:   artist.String,
		Album:    album.String,
	}

	return models.RestorePersistedSong(id, snapshotID, position, song), nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
