// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

// Command loader bulk-ingests the catalog CSV datasets.
//
// It runs out of band from the API server: point DATABASE_URL at the same
// PostgreSQL instance and feed it the Kaggle exports the catalog was built
// from. See `loader --help` for the per-dataset subcommands.
package main

import (
	"log/slog"
	"os"

	"github.com/amwozniak/entertainment-api/internal/loader"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := loader.NewRootCmd(logger).Execute(); err != nil {
		logger.Error("load_failed", slog.Any("error", err))
		os.Exit(1)
	}
}
