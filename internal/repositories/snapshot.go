package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/songsite/internal/models"
	"github.com/desertthunder/songsite/internal/shared"
)

// SnapshotRepository stores catalog snapshot headers and writes whole snapshots atomically.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the given database connection
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save writes a snapshot header and one row per song, in order, inside a single transaction.
func (r *SnapshotRepository) Save(songsDir string, songs []models.Song) (*models.Snapshot, error) {
	snapshot := &models.Snapshot{
		ID:        shared.GenerateID(),
		SongsDir:  songsDir,
		SongCount: len(songs),
		CreatedAt: time.Now().UTC(),
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO snapshots (id, songs_dir, song_count, created_at) VALUES (?, ?, ?, ?)`,
		snapshot.ID, snapshot.SongsDir, snapshot.SongCount, snapshot.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	for i, song := range songs {
		if err := insertSong(tx, models.NewPersistedSong(snapshot.ID, i, song)); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot: %w", err)
	}

	return snapshot, nil
}

// Get retrieves a snapshot header by ID
func (r *SnapshotRepository) Get(id string) (*models.Snapshot, error) {
	row := r.db.QueryRow(`SELECT id, songs_dir, song_count, created_at FROM snapshots WHERE id = ?`, id)

	snapshot, err := scanSnapshot(row)
	if err != nil {
		return nil, notFound(err, "snapshot", id)
	}
	return snapshot, nil
}

// Latest returns the most recently created snapshot
func (r *SnapshotRepository) Latest() (*models.Snapshot, error) {
	row := r.db.QueryRow(`SELECT id, songs_dir, song_count, created_at FROM snapshots ORDER BY created_at DESC, rowid DESC LIMIT 1`)

	snapshot, err := scanSnapshot(row)
	if err != nil {
		return nil, notFound(err, "snapshot", "latest")
	}
	return snapshot, nil
}

// List returns every snapshot header, newest first
func (r *SnapshotRepository) List() ([]*models.Snapshot, error) {
	rows, err := r.db.Query(`SELECT id, songs_dir, song_count, created_at FROM snapshots ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*models.Snapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return snapshots, nil
}

// Delete removes a snapshot; its songs go with it through the foreign key cascade
func (r *SnapshotRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return requireAffected(result, "snapshot", id)
}

// Prune keeps the newest keep snapshots and deletes the rest, returning how many were removed
func (r *SnapshotRepository) Prune(keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}

	result, err := r.db.Exec(`
		DELETE FROM snapshots
		WHERE id NOT IN (
			SELECT id FROM snapshots ORDER BY created_at DESC, rowid DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return int(n), nil
}

func scanSnapshot(row scanner) (*models.Snapshot, error) {
	var s models.Snapshot
	if err := row.Scan(&s.ID, &s.SongsDir, &s.SongCount, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
