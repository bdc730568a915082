package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/desertthunder/songsite/internal/catalog"
	"github.com/desertthunder/songsite/internal/formatter"
	"github.com/desertthunder/songsite/internal/models"
	"github.com/desertthunder/songsite/internal/repositories"
	"github.com/desertthunder/songsite/internal/shared"
	"github.com/urfave/cli/v3"
)

const exampleEntries = 10

// CatalogBuild scans the songs directory and writes the download_map.json snapshot.
//
// An empty directory prints a notice and writes nothing.
func (r *Runner) CatalogBuild(ctx context.Context, cmd *cli.Command) error {
	out := r.config.Library.SnapshotPath
	if cmd.IsSet("output") {
		out = cmd.String("output")
	}
	if out == "" {
		return fmt.Errorf("%w: snapshot path", shared.ErrMissingArgument)
	}

	store := r.catalogStore()
	if err := store.Rebuild(); err != nil {
		return err
	}
	c := store.Snapshot()

	if c.Len() == 0 {
		r.writePlain("No song files found in %s with supported extensions.\n", store.Dir())
		return nil
	}

	previous, err := catalog.ReadSnapshot(out)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		r.logger.Warn("ignoring unreadable previous snapshot", "path", out, "error", err)
	}

	if err := catalog.WriteSnapshot(out, c); err != nil {
		return err
	}

	r.writePlain("Wrote %d entries to %s\n", c.Len(), out)
	if previous != nil {
		added, removed := diffSnapshot(previous, c)
		r.writePlain("Changes since last build: %d added, %d removed\n", added, removed)
	}
	r.writePlain("Example entries:\n")
	for i, song := range c.Songs() {
		if i == exampleEntries {
			break
		}
		r.writePlain("  %s -> %s\n", song.Key, song.Path)
	}

	return nil
}

func diffSnapshot(previous map[string]string, c *catalog.Catalog) (added, removed int) {
	for _, key := range c.Keys() {
		if _, ok := previous[key]; !ok {
			added++
		}
	}
	for key := range previous {
		if !c.Has(key) {
			removed++
		}
	}
	return added, removed
}

// CatalogList prints the catalog, optionally filtered, in the requested format.
func (r *Runner) CatalogList(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	output := cmd.String("output")
	if output != "" && !cmd.IsSet("format") {
		format = formatter.FormatForPath(output)
	}
	format, err := formatter.ParseFormat(format)
	if err != nil {
		return err
	}

	store := r.catalogStore()
	if err := store.Rebuild(); err != nil {
		return err
	}

	query := cmd.String("query")
	songs := store.Match(query)
	sort.SliceStable(songs, func(i, j int) bool { return songs[i].Key < songs[j].Key })

	listing := &formatter.Listing{
		SongsDir: store.Dir(),
		Query:    query,
		Songs:    songs,
	}

	if output != "" {
		if err := formatter.WriteExport(output, format, listing); err != nil {
			return err
		}
		r.logger.Info("catalog written", "path", output, "format", format, "songs", len(songs))
		return nil
	}

	data, err := formatter.Format(format, listing)
	if err != nil {
		return err
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// CatalogExport saves the current catalog as a snapshot in the SQLite database,
// reporting what changed since the previous snapshot.
func (r *Runner) CatalogExport(ctx context.Context, cmd *cli.Command) error {
	store := r.catalogStore()
	if err := store.Rebuild(); err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewSnapshotRepository(db)
	previous, err := repo.Latest()
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	songs := store.Snapshot().Songs()
	snapshot, err := repo.Save(store.Dir(), songs)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	r.writePlain("Saved snapshot %s with %d songs to %s\n", snapshot.ID, snapshot.SongCount, r.config.Database.Path)

	if previous != nil {
		added, err := newSince(repositories.NewSongRepository(db), previous.ID, songs)
		if err != nil {
			return err
		}
		removed := previous.SongCount - (len(songs) - added)
		r.writePlain("Changes since snapshot %s: %d added, %d removed\n", previous.ID, added, removed)
	}

	if keep := cmd.Int("keep"); keep > 0 {
		pruned, err := repo.Prune(keep)
		if err != nil {
			return err
		}
		if pruned > 0 {
			r.writePlain("Pruned %d older snapshots\n", pruned)
		}
	}
	return nil
}

// newSince counts the songs whose keys are absent from snapshotID.
func newSince(repo *repositories.SongRepository, snapshotID string, songs []models.Song) (int, error) {
	added := 0
	for _, song := range songs {
		_, err := repo.GetByKey(snapshotID, song.Key)
		switch {
		case errors.Is(err, shared.ErrNotFound):
			added++
		case err != nil:
			return 0, err
		}
	}
	return added, nil
}

// CatalogSnapshots lists the snapshots saved by [Runner.CatalogExport], newest first.
//
// --show prints one snapshot's songs and --delete removes one snapshot.
func (r *Runner) CatalogSnapshots(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewSnapshotRepository(db)

	if id := cmd.String("delete"); id != "" {
		if err := repo.Delete(id); err != nil {
			return err
		}
		r.writePlain("Deleted snapshot %s\n", id)
		return nil
	}

	if id := cmd.String("show"); id != "" {
		return r.showSnapshot(db, id, cmd.String("ext"))
	}

	snapshots, err := repo.List()
	if err != nil {
		return err
	}

	if len(snapshots) == 0 {
		r.writePlain("No snapshots in %s\n", r.config.Database.Path)
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Snapshots (%d)", len(snapshots)))
	for _, s := range snapshots {
		r.writePlain("%s  %s  %4d songs  %s\n", s.CreatedAt.Local().Format("2006-01-02 15:04:05"), s.ID, s.SongCount, s.SongsDir)
	}
	return nil
}

func (r *Runner) showSnapshot(db *sql.DB, id, ext string) error {
	repo := repositories.NewSnapshotRepository(db)

	var (
		snapshot *models.Snapshot
		err      error
	)
	if id == "latest" {
		snapshot, err = repo.Latest()
	} else {
		snapshot, err = repo.Get(id)
	}
	if err != nil {
		return err
	}

	rows, err := repositories.NewSongRepository(db).List(map[string]any{"snapshot_id": snapshot.ID, "ext": ext})
	if err != nil {
		return err
	}

	r.writePlainHeader(fmt.Sprintf("Snapshot %s (%d songs, %s)", snapshot.ID, snapshot.SongCount, snapshot.SongsDir))
	for _, row := range rows {
		song := row.Song()
		line := fmt.Sprintf("%3d. %s -> %s", row.Position()+1, song.Key, song.Path)
		switch {
		case song.Artist != "":
			line += fmt.Sprintf(" (%s - %s)", song.Artist, song.DisplayTitle())
		case song.Title != "":
			line += fmt.Sprintf(" (%s)", song.Title)
		}
		r.writePlain("%s\n", line)
	}
	return nil
}
