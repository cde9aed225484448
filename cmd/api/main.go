package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cyber-kittens/internal/adapters/auth/jwtauth"
	pg "cyber-kittens/internal/adapters/storage/postgres"
	"cyber-kittens/internal/adapters/storage/sqlite"
	"cyber-kittens/internal/platform/config"
	"cyber-kittens/internal/platform/logger"
	"cyber-kittens/internal/router"
)

// @title Cyber Kittens API
// @version 1.0
// @description CRUD de kittens con registro, login y tokens JWT. Cada kitten solo es visible para su dueño.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Formato: Bearer {token}
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "cyber-kittens: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	if zl, ok := log.(*logger.ZapLogger); ok {
		defer func() { _ = zl.Sync() }()
	}

	if cfg.InsecureSecret() {
		log.Warn("using default JWT secret; set JWT_SECRET in production", nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokens, err := jwtauth.New(jwtauth.Config{
		Secret: cfg.JWTSecret,
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.JWTTTL,
	})
	if err != nil {
		return err
	}

	opts := router.Options{
		Verifier:   tokens,
		Issuer:     tokens,
		Logger:     log,
		BcryptCost: cfg.BcryptCost,
	}

	db, err := openStorage(ctx, cfg, &opts)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}
	log.Info("storage ready", map[string]any{"storage": cfg.Storage})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openStorage completa los repos de opts según cfg.Storage. Para memory devuelve db nil
// y el router usa sus defaults in-memory.
func openStorage(ctx context.Context, cfg config.Config, opts *router.Options) (*sql.DB, error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := pg.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := pg.Migrate(migrateCtx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		opts.Users = pg.NewUsersRepo(db)
		opts.Kittens = pg.NewKittensRepo(db)
		return db, nil

	case config.StorageSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		opts.Users = sqlite.NewUsersRepo(db)
		opts.Kittens = sqlite.NewKittensRepo(db)
		return db, nil

	default:
		return nil, nil
	}
}
