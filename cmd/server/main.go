package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/category"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/config"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/platform/database"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/platform/logger"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/product"

	platformElasticsearch "github.com/ZekeHyperByte/seltronik-website-sub000/internal/platform/elasticsearch"

	"go.uber.org/zap"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "sync-catalog" {
		syncCatalogCmd := flag.NewFlagSet("sync-catalog", flag.ExitOnError)
		timeout := syncCatalogCmd.Duration("timeout", 10*time.Minute, "Maximum duration of the rebuild")
		_ = syncCatalogCmd.Parse(os.Args[2:])

		if err := runCatalogSync(*timeout); err != nil {
			log.Fatalf("FATAL: Catalog synchronization failed: %v", err)
		}
		return
	}

	startServer()
}

func startServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}
	defer cleanup()

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("FATAL: Server failed to start or crashed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
}

// runCatalogSync rebuilds the catalog index from the database and exits.
func runCatalogSync(timeout time.Duration) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	appLogger, err := logger.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = appLogger.Sync() }()

	db, err := database.NewGORM(cfg, appLogger)
	if err != nil {
		return err
	}
	defer database.Close(db, appLogger)

	esClient, err := platformElasticsearch.NewClient(cfg, appLogger)
	if err != nil {
		return err
	}
	if esClient == nil {
		return errors.New("ELASTICSEARCH_URL must be set to sync the catalog")
	}
	index, err := provideProductIndex(esClient, appLogger)
	if err != nil {
		return err
	}

	// Media is never touched by a rebuild.
	products := product.NewService(product.NewGORMRepository(db), category.NewGORMRepository(db), index, nil, appLogger)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	appLogger.Info("Starting catalog synchronization to Elasticsearch...")
	indexed, err := products.ReindexCatalog(ctx)
	if err != nil {
		return err
	}
	appLogger.Info("Catalog synchronization completed successfully.", zap.Int("indexed", indexed))
	return nil
}
