package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/campuslink-dev/campuslink/internal/config"
	"github.com/campuslink-dev/campuslink/internal/handler"
	"github.com/campuslink-dev/campuslink/internal/jwt"
	"github.com/campuslink-dev/campuslink/internal/logger"
	"github.com/campuslink-dev/campuslink/internal/markdown"
	"github.com/campuslink-dev/campuslink/internal/router"
	"github.com/campuslink-dev/campuslink/internal/service"
	"github.com/campuslink-dev/campuslink/internal/storage/kv"
	"github.com/campuslink-dev/campuslink/internal/storage/pg"
)

// storage is what every engine needs from a backend. Both kv and pg
// implement the full set.
type storage interface {
	service.UserStorage
	service.PostStorage
	service.ApplicationStorage
	service.InvitationStorage
	service.ChatroomStorage
	service.NotificationStorage
}

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()
	cfg := config.MustLoad(configFolder)

	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	var store storage
	switch cfg.Public.StorageBackend {
	case "pg":
		pgStore, err := pg.New(cfg)
		if err != nil {
			logger.Log.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pgStore.Cleanup()
		store = pgStore
	case "kv":
		kvStore, err := kv.New(cfg.Public.KvPath)
		if err != nil {
			logger.Log.Error("failed to open kv store", "error", err)
			os.Exit(1)
		}
		store = kvStore
	default:
		logger.Log.Error("unknown storage backend", "backend", cfg.Public.StorageBackend)
		os.Exit(1)
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	notifications := service.NewNotification(store)
	chatrooms := service.NewChatroom(store, store, store, notifications, cfg.Public.ChatroomDeleteDelay)
	auth := service.NewAuth(store, jwtService)
	posts := service.NewPost(store, store)
	applications := service.NewApplication(store, store, store, chatrooms, notifications)
	invitations := service.NewInvitation(store, store, store, notifications)
	lifecycle := service.NewPostLifecycle(store, chatrooms, notifications, cfg.Public.ArchiveAfterDays)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	lifecycle.StartBackground(ctx, cfg.Public.SweepInterval)

	h := handler.New(auth, posts, applications, invitations, chatrooms, notifications, lifecycle, markdown.New(), cfg)
	r := router.New(h, jwtService, cfg)

	server := &http.Server{Addr: cfg.Public.ListenAddr, Handler: r}
	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	logger.Log.Info("server started", "addr", cfg.Public.ListenAddr, "backend", cfg.Public.StorageBackend)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
