package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/shelfline/backend/internal/analytics"
	"github.com/shelfline/backend/internal/api"
	"github.com/shelfline/backend/internal/config"
	"github.com/shelfline/backend/internal/library"
)

func main() {
	// Setup Logging
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	entry := logger.WithField("service", "review-api")

	entry.Info("Starting Shelfline API Service")

	// 1. Config
	cfg := config.Load()

	// 2. Analytics
	store, err := newAnalyticsStore(cfg)
	if err != nil {
		entry.Fatalf("Failed to initialize analytics store: %v", err)
	}
	if store != nil {
		defer store.Close()
	}

	// 3. Review Index
	lib := library.New(entry)
	if err := lib.Reload(cfg.Content.Dir); err != nil {
		entry.WithError(err).Warnf("Could not load %s; starting with an empty index", cfg.Content.Dir)
	}

	// 4. API Server
	server := api.NewServer(cfg, lib, store, entry)

	entry.Infof("Shelfline API ready on %s", cfg.Server.Addr)
	if err := server.Start(cfg.Server.Addr); err != nil {
		entry.Fatal(err)
	}
}

func newAnalyticsStore(cfg *config.Config) (analytics.Store, error) {
	if !cfg.Analytics.Enabled {
		return nil, nil
	}

	switch cfg.Analytics.Backend {
	case "sqlite":
		return analytics.OpenSQLite(cfg.Analytics.DBPath)
	case "memory":
		return analytics.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown analytics backend %q", cfg.Analytics.Backend)
	}
}
