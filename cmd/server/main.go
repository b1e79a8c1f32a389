// File: cmd/server/main.go
package main

import (
	"context"
	"log" // Standard log for critical startup/shutdown messages before/after zap is active
	"os"
	"os/signal"
	"syscall"

	"roadsuite_backend/internal/config"
	"roadsuite_backend/internal/platform/database"
	"roadsuite_backend/internal/platform/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// provideCleanup is a Wire provider that releases platform resources in
// reverse initialization order once the server has stopped.
func provideCleanup(logger *zap.Logger, db *gorm.DB) func() {
	return func() {
		logger.Info("Executing cleanup tasks...")
		database.CloseGORMDB(db)
		if err := logger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
		log.Println("Cleanup finished.")
	}
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "seed" {
		runSeed()
		return
	}

	startServer()
}

// runSeed migrates the schema and loads the development fixtures, then exits.
func runSeed() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration for seed: %v", err)
	}
	appLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize logger for seed: %v", err)
	}
	db, err := database.NewGORM(cfg)
	if err != nil {
		appLogger.Fatal("FATAL: Failed to initialize database for seed", zap.Error(err))
	}
	defer database.CloseGORMDB(db)

	if err := database.AutoMigrate(db); err != nil {
		appLogger.Fatal("FATAL: Database migration failed", zap.Error(err))
	}
	if err := database.Seed(db); err != nil {
		appLogger.Fatal("FATAL: Database seeding failed", zap.Error(err))
	}
	appLogger.Info("Database seeded successfully.")
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
		if err := server.Start(); err != nil && err.Error() != "http: Server closed" {
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
	log.Println("INFO: Application exiting.")
}
