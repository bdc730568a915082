// package repositories provides persistence layer implementations for catalog snapshots.
package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/songsite/internal/shared"
)

// execer is satisfied by both [sql.DB] and [sql.Tx].
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// notFound maps [sql.ErrNoRows] to [shared.ErrNotFound].
func notFound(err error, what, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s %s", shared.ErrNotFound, what, id)
	}
	return fmt.Errorf("failed to scan %s: %w", what, err)
}

// requireAffected returns an error when a write touched no rows.
func requireAffected(result sql.Result, what, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s %s", shared.ErrNotFound, what, id)
	}
	return nil
}
