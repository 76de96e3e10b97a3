package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/juslaw/forum/internal/db"
	"github.com/juslaw/forum/internal/forum"
	"github.com/juslaw/forum/pkg/config"
	"github.com/juslaw/forum/pkg/logging"
)

// recount rebuilds every denormalized counter and comment pointer from
// the comments table. Run it after bulk imports or to converge drift.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting forum statistics recount")

	database, err := db.New(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info("Interrupted, stopping recount")
		cancel()
	}()

	maintainer := forum.NewMaintainer(db.NewRepository(database.DB))
	if err := maintainer.RecountAll(ctx); err != nil {
		logger.Fatal("Recount failed", zap.Error(err))
	}

	logger.Info("Recount finished")
}
