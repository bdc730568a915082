package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/songsite/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search runs the configured resolver against the catalog and prints the results.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))

	if cmd.IsSet("mode") {
		mode := strings.ToLower(cmd.String("mode"))
		if mode != shared.SearchModeLocal && mode != shared.SearchModeYouTube {
			return fmt.Errorf("%w: mode %q", shared.ErrInvalidArgument, mode)
		}
		r.config.Search.Mode = mode
	}

	store := r.catalogStore()
	if err := store.Rebuild(); err != nil {
		return err
	}

	resolver := r.resolver(ctx)
	results := resolver.Search(ctx, query)

	if cmd.Bool("json") {
		return r.writeJSON(results, cmd.Bool("pretty"))
	}

	if len(results) == 0 {
		if query == "" {
			return r.writePlain("No results\n")
		}
		return r.writePlain("No results for %q\n", query)
	}

	title := fmt.Sprintf("%d %s results", len(results), resolver.Mode())
	if query != "" {
		title += fmt.Sprintf(" for %q", query)
	}
	r.writePlainHeader(title)

	for i, res := range results {
		line := fmt.Sprintf("%d. %s", i+1, res.Title)
		if res.Artist != "" {
			line += " - " + res.Artist
		}
		switch {
		case res.Placeholder:
			line += " [placeholder]"
		case res.VideoID != "":
			line += " [youtube " + res.VideoID + "]"
		}
		if res.WatchURL != "" {
			line += " " + res.WatchURL
		}
		if res.Downloadable() {
			line += " (download: /download/" + res.DownloadKey + ")"
		}
		r.writePlain("%s\n", line)
	}
	return nil
}
