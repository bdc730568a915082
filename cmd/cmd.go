// submodule cmd contains command definitions
package main

import (
	"strings"

	"github.com/desertthunder/songsite/internal/formatter"
	"github.com/urfave/cli/v3"
)

// serveCommand starts the web server
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Build the catalog and serve the web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Bind host (overrides server.host and HOST)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Bind port (overrides server.port and PORT)",
			},
		},
		Action: r.Serve,
	}
}

// catalogCommand groups catalog maintenance
func catalogCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Scan and export the songs directory",
		Commands: []*cli.Command{
			{
				Name:  "build",
				Usage: "Write download_map.json from the songs directory",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Snapshot path (overrides library.snapshot_path)",
					},
				},
				Action: r.CatalogBuild,
			},
			{
				Name:  "list",
				Usage: "Print the catalog",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format (" + strings.Join(formatter.Formats, ", ") + ")",
						Value:   formatter.FormatText,
					},
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Only list keys containing this text",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write to a file instead of stdout; format defaults from the extension",
					},
				},
				Action: r.CatalogList,
			},
			{
				Name:  "export",
				Usage: "Save the catalog as a snapshot in the SQLite database",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "keep",
						Usage: "Keep only the newest N snapshots (0 keeps all)",
					},
				},
				Action: r.CatalogExport,
			},
			{
				Name:  "snapshots",
				Usage: "List, inspect or delete snapshots saved in the SQLite database",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "show",
						Usage: "Print the songs of a snapshot by id (or \"latest\")",
					},
					&cli.StringFlag{
						Name:  "ext",
						Usage: "With --show, only songs with this extension (e.g. .mp3)",
					},
					&cli.StringFlag{
						Name:  "delete",
						Usage: "Delete a snapshot and its songs by id",
					},
				},
				Action: r.CatalogSnapshots,
			},
		},
	}
}

// searchCommand runs the configured resolver from the terminal
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the catalog (or YouTube in youtube mode)",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "mode",
				Usage: "Resolver strategy (local, youtube); overrides search.mode",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
				Value: true,
			},
		},
		Action: r.Search,
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create config.toml and initialize the snapshot database",
		Action: r.Setup,
	}
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Browse the catalog interactively",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the TUI is running",
				Value: "./tmp/songsite-tui.log",
			},
		},
		Action: r.TUI,
	}
}
