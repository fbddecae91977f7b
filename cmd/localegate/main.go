// Command localegate serves language negotiation, visitor language
// preferences and translation bundles for the portfolio web application.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrymomot/localegate/pkg/config"
	"github.com/dmitrymomot/localegate/pkg/logger"
)

func main() {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		slog.Error("Failed to load configuration", logger.Error(err))
		os.Exit(1)
	}

	if err := run(context.Background(), cfg); err != nil {
		slog.Error("Server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}
