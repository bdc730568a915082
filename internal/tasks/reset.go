package tasks

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songsite/internal/catalog"
	"github.com/desertthunder/songsite/internal/shared"
)

// ResetReport summarises one admin reset.
type ResetReport struct {
	Deleted int      // Files removed from the downloads directory
	Failed  []string // Files that could not be removed
	Cleared int      // Catalog entries dropped
}

// CheckAdminKey compares credential with secret in constant time.
//
// An empty secret disables admin operations: every credential is rejected.
func CheckAdminKey(secret, credential string) error {
	if secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(credential)) != 1 {
		return shared.ErrForbidden
	}
	return nil
}

// Reset deletes every regular file under downloadsDir and then clears the store.
//
// A wrong credential returns [shared.ErrForbidden] and changes nothing. A missing downloads directory is treated as
// already empty. Individual delete failures are logged and reported, never fatal.
func Reset(store *catalog.Store, downloadsDir, secret, credential string, logger *log.Logger) (*ResetReport, error) {
	if err := CheckAdminKey(secret, credential); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	report := &ResetReport{Cleared: store.Len()}

	if downloadsDir != "" {
		err := filepath.WalkDir(downloadsDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) && path == downloadsDir {
					return fs.SkipAll
				}
				logger.Warn("failed to read during reset", "path", path, "error", err)
				report.Failed = append(report.Failed, path)
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}

			if err := os.Remove(path); err != nil {
				logger.Warn("failed to delete file", "path", path, "error", err)
				report.Failed = append(report.Failed, path)
				return nil
			}
			report.Deleted++
			return nil
		})
		if err != nil {
			logger.Warn("downloads walk stopped early", "dir", downloadsDir, "error", err)
		}
	}

	store.Clear()
	logger.Info("admin reset", "deleted", report.Deleted, "failed", len(report.Failed), "cleared", report.Cleared)

	return report, nil
}

// Rebuild re-populates the store from its songs directory behind the same admin check as [Reset].
func Rebuild(store *catalog.Store, secret, credential string) (int, error) {
	if err := CheckAdminKey(secret, credential); err != nil {
		return 0, err
	}
	if err := store.Rebuild(); err != nil {
		return 0, fmt.Errorf("rebuild failed: %w", err)
	}
	return store.Len(), nil
}
