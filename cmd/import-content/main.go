// Package main provides a CLI bulk importer: it merges JSON collection
// files (items, NPCs, cities, rules) into the backing store without
// starting the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/avulnerador/shop-master/internal/catalog"
	"github.com/avulnerador/shop-master/internal/config"
	"github.com/avulnerador/shop-master/internal/export"
	"github.com/avulnerador/shop-master/internal/observability"
	"github.com/avulnerador/shop-master/internal/seed"
	"github.com/avulnerador/shop-master/internal/storage"
	"github.com/avulnerador/shop-master/internal/storage/filestore"
	"github.com/avulnerador/shop-master/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	itemsFile := flag.String("items", "", "path to an items JSON collection")
	npcsFile := flag.String("npcs", "", "path to an NPCs JSON collection")
	citiesFile := flag.String("cities", "", "path to a cities JSON collection")
	rulesFile := flag.String("rules", "", "path to a rules JSON payload")
	flag.Parse()

	if *itemsFile == "" && *npcsFile == "" && *citiesFile == "" && *rulesFile == "" {
		fmt.Fprintln(os.Stderr, "usage: import-content [-config <file>] [-items <file>] [-npcs <file>] [-cities <file>] [-rules <file>]")
		os.Exit(1)
	}

	start := time.Now()
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

	var kv storage.KV
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Storage.Database)
		if err != nil {
			log.Fatalf("connecting to database: %v", err)
		}
		kv = postgres.NewKVStore(pool)
	default:
		kv, err = filestore.New(cfg.Storage.DataDir)
		if err != nil {
			log.Fatalf("opening file store: %v", err)
		}
	}
	defer kv.Close()

	seedData, err := seed.Dataset()
	if err != nil {
		log.Fatalf("loading embedded seed data: %v", err)
	}
	store := catalog.NewStore(kv, logger)
	if err := store.Load(ctx, seedData); err != nil {
		log.Fatalf("loading catalog: %v", err)
	}

	if *itemsFile != "" {
		items, err := export.DecodeItems(mustRead(*itemsFile))
		if err != nil {
			log.Fatalf("decoding %s: %v", *itemsFile, err)
		}
		if err := store.ImportItems(ctx, items); err != nil {
			log.Fatalf("importing items: %v", err)
		}
		fmt.Printf("imported %d items (catalog now %d)\n", len(items), len(store.Items()))
	}
	if *npcsFile != "" {
		npcs, err := export.DecodeNPCs(mustRead(*npcsFile))
		if err != nil {
			log.Fatalf("decoding %s: %v", *npcsFile, err)
		}
		if err := store.ImportNPCs(ctx, npcs); err != nil {
			log.Fatalf("importing NPCs: %v", err)
		}
		fmt.Printf("imported %d NPCs (catalog now %d)\n", len(npcs), len(store.NPCs()))
	}
	if *citiesFile != "" {
		cities, err := export.DecodeCities(mustRead(*citiesFile))
		if err != nil {
			log.Fatalf("decoding %s: %v", *citiesFile, err)
		}
		if err := store.ImportCities(ctx, cities); err != nil {
			log.Fatalf("importing cities: %v", err)
		}
		fmt.Printf("imported %d cities (catalog now %d)\n", len(cities), len(store.Cities()))
	}
	if *rulesFile != "" {
		rules, err := export.DecodeRules(mustRead(*rulesFile))
		if err != nil {
			log.Fatalf("decoding %s: %v", *rulesFile, err)
		}
		if err := store.ImportRules(ctx, rules); err != nil {
			log.Fatalf("importing rules: %v", err)
		}
		fmt.Println("imported rules")
	}

	fmt.Printf("import complete in %s\n", time.Since(start).Round(time.Millisecond))
}

func mustRead(path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("reading %s: %v", path, err)
	}
	return data
}
