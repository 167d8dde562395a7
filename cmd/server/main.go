package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kritanta/cartmates/internal/api"
	"github.com/kritanta/cartmates/internal/auth"
	"github.com/kritanta/cartmates/internal/config"
	"github.com/kritanta/cartmates/internal/email"
	"github.com/kritanta/cartmates/internal/middleware"
	"github.com/kritanta/cartmates/internal/service"
	"github.com/kritanta/cartmates/internal/storage/sqlite"
	"github.com/kritanta/cartmates/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	var mailer email.Mailer = email.LogMailer{}
	if cfg.SMTPHost != "" {
		mailer = email.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
		slog.Info("SMTP mailer configured", "host", cfg.SMTPHost)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	// Wire services
	activitySvc := service.NewActivityService(store)
	groupSvc := service.NewGroupService(store, activitySvc)
	inviteSvc := service.NewInviteService(store, groupSvc)
	itemSvc := service.NewItemService(store, activitySvc)
	authSvc := service.NewAuthService(authenticator, jwtManager, store, groupSvc, mailer, cfg.AppBaseURL, slog.Default())

	// Activity retention sweep runs until shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go activitySvc.RunRetentionSweep(ctx)

	handler := api.NewHandler(authSvc, groupSvc, inviteSvc, itemSvc, activitySvc, jwtManager)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.CORSOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/", handler.Routes())

	// h2c enables HTTP/2 without TLS for clients behind a trusted proxy.
	h2cHandler := h2c.NewHandler(r, &http2.Server{})

	server := &http.Server{Addr: cfg.ListenAddr, Handler: h2cHandler}
	go func() {
		<-ctx.Done()
		slog.Info("Shutting down")
		_ = server.Shutdown(context.Background())
	}()

	slog.Info("Server starting", "address", cfg.ListenAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
