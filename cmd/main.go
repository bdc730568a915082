package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/songsite/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	if err := shared.LoadDotEnv(".env"); err != nil {
		logger.Warn("ignoring .env", "error", err)
	}

	runner := NewRunner(RunnerOpts{Logger: logger})
	app := runner.App()

	if err := app.Run(context.Background(), os.Args); err != nil {
		switch {
		case errors.Is(err, shared.ErrNotImplemented):
			logger.Warn("not implemented")
			os.Exit(0)
		case errors.Is(err, shared.ErrCatalogUnavailable):
			logger.Fatal("songs folder unavailable; create it and add audio files (mp3, wav, m4a, ogg, flac, aac)", "error", err)
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}
