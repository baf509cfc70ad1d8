package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notes/internal/auth"
	"notes/internal/config"
	"notes/internal/db"
	httpx "notes/internal/http"
	"notes/internal/logging"
	"notes/internal/note"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "notesd:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	var (
		users auth.UserRepository
		notes note.Repository
	)
	switch cfg.Storage {
	case config.StorageMemory:
		log.Warn("using in-memory storage, data is lost on exit")
		users = auth.NewMemoryStore()
		notes = note.NewMemoryStore()
	default:
		gdb, err := db.Connect(cfg.DatabaseURL, cfg.DBDriver)
		if err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		if err := db.AutoMigrateAndIndexes(gdb); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		users = &auth.Store{DB: gdb}
		notes = &note.Store{DB: gdb}
	}

	jwtSvc := auth.NewJWT(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	r := httpx.NewRouter(cfg, httpx.Deps{
		Auth:  auth.NewService(users, jwtSvc, log),
		Notes: note.NewService(notes, log),
		JWT:   jwtSvc,
		Log:   log,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", slog.String("addr", cfg.HTTPAddr), slog.String("storage", cfg.Storage))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
