package main

import (
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/netutil"

	"leanacademy/internal/app"
	"leanacademy/internal/bus"
	"leanacademy/internal/config"
	"leanacademy/internal/server"
	"leanacademy/internal/store"
	"leanacademy/internal/util"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	remoteTimeout, err := config.ParseRemoteTimeout(cfg.RemoteTimeout)
	if err != nil {
		log.Fatalf("failed to parse remote timeout: %v", err)
	}
	sessionTTL, err := config.ParseSessionTTL(cfg.SessionTTL)
	if err != nil {
		log.Fatalf("failed to parse session TTL: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	local := store.NewMemoryStore()
	if err := local.Seed(); err != nil {
		log.Fatalf("failed to seed local store: %v", err)
	}

	remote := openRemote(cfg)

	var sessions store.SessionStore
	if cfg.JWTSecret != "" {
		sessions = store.NewJWTSessionStore(cfg.JWTSecret, sessionTTL)
	} else {
		sessions = store.NewRedisSessionStore(cfg.RedisAddr, cfg.RedisPassword, sessionTTL)
	}

	appCore, err := app.New(app.Config{
		Remote:        remote,
		Local:         local,
		Changes:       bus.New(),
		Sessions:      sessions,
		RemoteTimeout: remoteTimeout,
		Logger:        logger,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	httpServer, err := server.New(server.Config{
		App:                     appCore,
		RedisAddr:               cfg.RedisAddr,
		RedisPassword:           cfg.RedisPassword,
		LoginRateLimitPerMinute: cfg.LoginRateLimitPerMinute,
	})
	if err != nil {
		log.Fatalf("failed to init server: %v", err)
	}

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("failed to listen on %s: %v", addr, err)
	}
	if cfg.MaxConns > 0 {
		listener = netutil.LimitListener(listener, cfg.MaxConns)
	}

	slog.Info("server listening", "addr", addr)
	if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
	}
}

// openRemote returns the remote store, or nil when the app should run
// entirely against the seeded in-memory store. A placeholder connection
// string and an unreachable database get the same treatment: come up
// serving local data instead of crash-looping.
func openRemote(cfg config.FileConfig) store.Store {
	if !cfg.RemoteConfigured() {
		slog.Info("no remote database configured, serving local data")
		return nil
	}
	gormStore, err := store.NewGormStore(cfg.DatabaseURL)
	if err != nil {
		slog.Warn("database unreachable at startup, serving local data", "err", err)
		return nil
	}
	slog.Info("remote database configured")
	return gormStore
}
