package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/dungeon-party/internal/api"
	"github.com/ericogr/dungeon-party/internal/config"
	"github.com/ericogr/dungeon-party/internal/hub"
	"github.com/ericogr/dungeon-party/internal/logging"
	"github.com/ericogr/dungeon-party/internal/seat"
	"github.com/ericogr/dungeon-party/internal/service"
	"github.com/ericogr/dungeon-party/internal/storage"
	"github.com/ericogr/dungeon-party/internal/version"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		logging.Fatal("Invalid server configuration", err, nil)
	}
	logging.SetLevel(cfg.LogLevel)
	defer logging.Sync()
	logging.Info("starting", logging.Fields{"service": version.Service, "version": version.Version, "commit": version.Commit})

	eng := loadEngineOrExit(cfg.ContentPath)

	db, err := storage.OpenAndMigrate(cfg.DatabasePath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	repo := storage.NewSQLiteRepository(db)

	if cfg.SeatSecret == "" {
		logging.Warn("DUNGEON_SEAT_SECRET not set; seat tokens will not survive a restart", nil)
	}
	issuer, err := seat.NewIssuer(cfg.SeatSecret, cfg.SeatTTL)
	if err != nil {
		logging.Fatal("Failed to create seat issuer", err, nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mirrors := hub.New()
	manager := service.NewManager(ctx, eng, repo, mirrors, cfg.ActionTimeout)

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(api.NewGameHandler(manager, issuer, mirrors))
	srv := &http.Server{Addr: cfg.Address, Handler: router}

	if err := serve(ctx, srv, manager, cfg.TimerEnabled()); err != nil {
		logging.Error("Server stopped with error", err, nil)
	}
	stop()
	manager.Wait()
	logging.Info("Server stopped", nil)
}
