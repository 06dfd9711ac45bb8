package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/apiempleados/api-empleados/internal/app"
	"github.com/apiempleados/api-empleados/internal/auth"
	"github.com/apiempleados/api-empleados/internal/employees"
	"github.com/apiempleados/api-empleados/internal/observability"
	"github.com/apiempleados/api-empleados/internal/platform/db"
	"github.com/apiempleados/api-empleados/internal/platform/httpx"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *app.Config, logger *slog.Logger) error {
	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		return err
	}
	defer dbpool.Close()

	if cfg.DBMigrate {
		if err := db.Migrate(ctx, dbpool); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	key, err := signingKey(cfg, logger)
	if err != nil {
		return err
	}
	tokens, err := auth.NewTokenService(key, auth.WithIssuer(cfg.JWTIssuer), auth.WithTTL(cfg.JWTTTL))
	if err != nil {
		return err
	}

	logger.Info("token service ready", slog.String("issuer", cfg.JWTIssuer), slog.Duration("ttl", tokens.TTL()))

	if cfg.ExposeErrorDetail() {
		logger.Warn("APP_ENV=development: 500 responses include error details")
	}
	responder := httpx.NewResponder(logger, cfg.ExposeErrorDetail())
	metrics := observability.NewMetrics()

	authService := auth.NewService(auth.NewRepository(dbpool), auth.NewBcryptHasher(cfg.BcryptCost), tokens)
	authHandler := auth.NewHandler(logger, authService, responder, metrics)
	employeesHandler := employees.NewHandler(logger, employees.NewService(employees.NewRepository(dbpool)), responder)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Responder:        responder,
		Gate:             auth.NewGate(tokens, responder, cfg.PublicPrefixes...),
		AuthHandler:      authHandler,
		EmployeesHandler: employeesHandler,
		Metrics:          metrics,
		DB:               dbpool,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("env", cfg.AppEnv))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func signingKey(cfg *app.Config, logger *slog.Logger) (auth.SigningKey, error) {
	if cfg.JWTSecret != "" {
		return auth.ParseSigningKey(cfg.JWTSecret)
	}
	logger.Warn("JWT_SECRET not set, using an ephemeral signing key; tokens will not survive a restart")
	return auth.GenerateSigningKey()
}
