// @title        Social Feed API
// @version      1.0
// @description  Users, posts, likes and a personalized feed.
// @host         localhost:3000
// @BasePath     /

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/yashwanthsk20/insta-feed-backend/docs"

	"github.com/yashwanthsk20/insta-feed-backend/config"
	"github.com/yashwanthsk20/insta-feed-backend/database"
	"github.com/yashwanthsk20/insta-feed-backend/internal/logging"
	"github.com/yashwanthsk20/insta-feed-backend/internal/routes"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("load config")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.Open(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("open store")
	}

	app := routes.NewApp(routes.NewDeps(cfg, store))

	serveErr := make(chan error, 1)
	go func() {
		logging.Info().
			Str("port", cfg.Port).
			Str("environment", cfg.Environment).
			Msg("social feed api listening")
		serveErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logging.Error().Err(err).Msg("server stopped")
		}
	case <-ctx.Done():
		logging.Info().Msg("shutting down")
	}

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logging.Error().Err(err).Msg("http shutdown")
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := store.Close(closeCtx); err != nil {
		logging.Error().Err(err).Msg("close store")
	}
}
