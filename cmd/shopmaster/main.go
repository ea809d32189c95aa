// Package main provides the shop-master server binary: the JSON API
// backing the local browser UI.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/avulnerador/shop-master/internal/catalog"
	"github.com/avulnerador/shop-master/internal/config"
	"github.com/avulnerador/shop-master/internal/enrich"
	"github.com/avulnerador/shop-master/internal/generate"
	"github.com/avulnerador/shop-master/internal/observability"
	"github.com/avulnerador/shop-master/internal/rng"
	"github.com/avulnerador/shop-master/internal/seed"
	"github.com/avulnerador/shop-master/internal/server"
	"github.com/avulnerador/shop-master/internal/settings"
	"github.com/avulnerador/shop-master/internal/shop"
	"github.com/avulnerador/shop-master/internal/storage"
	"github.com/avulnerador/shop-master/internal/storage/filestore"
	"github.com/avulnerador/shop-master/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting shop-master",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("backend", cfg.Storage.Backend),
	)

	// Open the backing store.
	var (
		kv   storage.KV
		pool *postgres.Pool
	)
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		dbStart := time.Now()
		pool, err = postgres.NewPool(ctx, cfg.Storage.Database)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		kv = postgres.NewKVStore(pool)
		logger.Info("database connected",
			zap.String("host", cfg.Storage.Database.Host),
			zap.Duration("elapsed", time.Since(dbStart)),
		)
	default:
		kv, err = filestore.New(cfg.Storage.DataDir)
		if err != nil {
			logger.Fatal("opening file store", zap.Error(err))
		}
		logger.Info("file store opened", zap.String("dir", cfg.Storage.DataDir))
	}

	// Load the catalog, falling back to the embedded seed collection by
	// collection.
	seedData, err := seed.Dataset()
	if err != nil {
		logger.Fatal("loading embedded seed data", zap.Error(err))
	}
	catalogStore := catalog.NewStore(kv, logger)
	if err := catalogStore.Load(ctx, seedData); err != nil {
		logger.Fatal("loading catalog", zap.Error(err))
	}
	logger.Info("catalog loaded",
		zap.Int("items", len(catalogStore.Items())),
		zap.Int("npcs", len(catalogStore.NPCs())),
		zap.Int("cities", len(catalogStore.Cities())),
	)

	settingsStore := settings.NewStore(kv, logger)
	if err := settingsStore.Load(ctx); err != nil {
		logger.Fatal("loading app settings", zap.Error(err))
	}

	session := shop.NewSession()
	archive := shop.NewArchive(kv, logger, session)
	if err := archive.Load(ctx); err != nil {
		logger.Fatal("loading shop archive", zap.Error(err))
	}
	logger.Info("archive loaded", zap.Int("shops", len(archive.All())))

	engine := generate.NewEngine(rng.NewCryptoSource())

	describer, err := enrich.NewClient(cfg.Enrich, logger)
	if err != nil {
		logger.Fatal("configuring flavor enrichment", zap.Error(err))
	}

	deps := server.Deps{
		Catalog:  catalogStore,
		Settings: settingsStore,
		Engine:   engine,
		Session:  session,
		Archive:  archive,
	}
	if describer != nil {
		deps.Describer = describer
		logger.Info("flavor enrichment enabled", zap.String("model", cfg.Enrich.Model))
	}

	httpServer := server.NewHTTP(cfg.Server, logger, deps)

	lifecycle := server.NewLifecycle(logger, cfg.Server.ShutdownTimeout)
	lifecycle.Add("http", httpServer)
	if pool != nil {
		lifecycle.Add("db-health", postgres.NewHealthMonitor(pool, logger, 30*time.Second))
	}

	logger.Info("shop-master initialized", zap.Duration("startup", time.Since(start)))

	runErr := lifecycle.Run(ctx)

	if err := kv.Close(); err != nil {
		logger.Warn("closing backing store", zap.Error(err))
	}
	if runErr != nil {
		logger.Fatal("server error", zap.Error(runErr))
	}
}
