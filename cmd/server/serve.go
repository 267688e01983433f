package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ndewijer/Banking-Admin-Backend/internal/api"
	"github.com/ndewijer/Banking-Admin-Backend/internal/bankapi"
	"github.com/ndewijer/Banking-Admin-Backend/internal/config"
	"github.com/ndewijer/Banking-Admin-Backend/internal/database"
	"github.com/ndewijer/Banking-Admin-Backend/internal/logger"
	"github.com/ndewijer/Banking-Admin-Backend/internal/repository"
	"github.com/ndewijer/Banking-Admin-Backend/internal/service"
	"github.com/ndewijer/Banking-Admin-Backend/internal/session"
	"github.com/ndewijer/Banking-Admin-Backend/internal/version"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().
		Str("version", version.Version).
		Str("env", cfg.Env).
		Str("bank_api", cfg.BankAPI.BaseURL).
		Msg("starting")

	// Open the draft store and bring its schema up to date
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return err
	}
	log.Info().Str("path", cfg.Database.Path).Msg("connected to draft store")

	sessions, err := session.NewManager(session.Options{
		Key:    cfg.Session.Key,
		MaxAge: cfg.Session.MaxAge,
		Secure: cfg.Session.Secure,
	}, log)
	if err != nil {
		return err
	}

	bank := bankapi.NewClient(cfg.BankAPI.BaseURL, nil, log)

	// Create services
	drafts := service.NewDraftService(repository.NewDraftRepository(db), bank, cfg.Drafts.TTL, log)
	svc := api.Services{
		System:       service.NewSystemService(db),
		Auth:         service.NewAuthService(bank, log),
		Users:        service.NewUserService(bank),
		Transactions: service.NewTransactionService(bank),
		Drafts:       drafts,
	}

	purger, err := service.NewDraftPurger(drafts, cfg.Drafts.PurgeSchedule, log)
	if err != nil {
		return err
	}
	purger.Start()

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.NewRouter(svc, sessions, cfg, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	purger.Stop(shutdownCtx)
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server exited")
	return nil
}
