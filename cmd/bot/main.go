package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"reaction-roulette-be/internal/bootstrap"
	"reaction-roulette-be/internal/config"
	"reaction-roulette-be/internal/model"
	"reaction-roulette-be/internal/server"
	"reaction-roulette-be/pkg/database"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] Invalid configuration: %v", err)
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("[FATAL] Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&model.Message{}); err != nil {
		log.Fatalf("[FATAL] Failed to migrate schema: %v", err)
	}

	container := bootstrap.NewContainer(db, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Fatalf("[FATAL] Failed to start event consumers: %v", err)
	}
	go container.SyncService.Run(ctx)

	srv := server.New(cfg, container)
	go func() {
		if err := srv.Run(); err != nil {
			log.Fatalf("[FATAL] Server stopped: %v", err)
		}
	}()

	color.Green("✅ reaction-roulette is mirroring channel %d", cfg.Channel.ChannelId)
	color.Cyan("   sync window %d msgs every %s", cfg.Sync.Window, cfg.Sync.Interval)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	color.Yellow("⏳ shutting down...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Printf("[WARN] Server shutdown: %v", err)
	}
	if err := container.PubSub.Close(); err != nil {
		log.Printf("[WARN] Event bus close: %v", err)
	}
	_ = container.Logger.Sync()
	color.Green("✅ bye")
}
