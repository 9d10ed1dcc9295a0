// Package server собирает зависимости и запускает HTTP сервер с корректной остановкой.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"nodex/internal/app/server/api"
	"nodex/internal/app/server/config"
	"nodex/internal/infrastructure/attachment"
	"nodex/internal/infrastructure/migration"
	"nodex/internal/infrastructure/storage"
	"nodex/internal/utils/logger"

	"golang.org/x/exp/slog"
)

type App struct {
	cfg     *config.Config
	log     *slog.Logger
	storage *storage.Storage
	server  *http.Server
}

// New применяет миграции, открывает хранилища и собирает роутер.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	if err := migration.NewMigration(cfg, migration.DefaultEngine).Up(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	st, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	files, err := attachment.New(ctx, attachmentOptions(cfg.Files), log)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("init attachments: %w", err)
	}

	router := api.New(api.Deps{
		Config:  cfg,
		Users:   st.Users,
		Records: st.Records,
		Files:   files,
		DB:      st,
		Log:     log,
	})

	return &App{
		cfg:     cfg,
		log:     log.With("component", "server"),
		storage: st,
		server: &http.Server{
			Addr:              cfg.Server.RunAddress,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Run блокируется до отмены ctx или ошибки сервера.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.storage.Close(); err != nil {
			a.log.Error("close storage", logger.Err(err))
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("starting server", "address", a.cfg.Server.RunAddress, "env", a.cfg.Env, "storage", a.cfg.DB.Driver, "files", a.cfg.Files.Driver)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	a.log.Info("server stopped")
	return nil
}

func attachmentOptions(f config.Files) attachment.Options {
	return attachment.Options{
		Driver: f.Driver,
		Root:   f.Root,
		S3: attachment.S3Options{
			Bucket:       f.S3.Bucket,
			Region:       f.S3.Region,
			Endpoint:     f.S3.Endpoint,
			AccessKey:    f.S3.AccessKey,
			SecretKey:    f.S3.SecretKey,
			UsePathStyle: f.S3.UsePathStyle,
			PresignTTL:   f.S3.PresignTTL,
		},
	}
}
