package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"virtual-pet/internal/adapters/auth/bcrypthash"
	"virtual-pet/internal/adapters/auth/jwtauth"
	"virtual-pet/internal/adapters/payments/remote"
	"virtual-pet/internal/adapters/storage"
	"virtual-pet/internal/platform/config"
	"virtual-pet/internal/platform/logger"
	"virtual-pet/internal/platform/metrics"
	"virtual-pet/internal/ports/payments"
	"virtual-pet/internal/router"
)

//go:generate swag init --generalInfo main.go --dir ./,../../internal --output ../../docs --outputTypes go

// @title Virtual Pet API
// @version 1.0
// @description Mascota virtual: stats, comida y suscripción premium.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server error", map[string]any{"err": err})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	store, err := storage.Open(storage.Options{
		Driver:     cfg.StoreDriver,
		DSN:        cfg.DBDSN,
		SQLitePath: cfg.SQLitePath,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("store close error", map[string]any{"err": err})
		}
	}()
	log.Info("store ready", map[string]any{"driver": store.Driver()})

	// sin PAYMENTS_URL el router usa el stub
	var authorizer payments.Authorizer
	if cfg.PaymentsURL != "" {
		authorizer, err = remote.New(cfg.PaymentsURL, cfg.PaymentsAPIKey, cfg.PaymentsTimeout)
		if err != nil {
			return err
		}
	}

	h, err := router.NewRouter(router.Options{
		Store: store,
		JWT: jwtauth.Config{
			Secret: []byte(cfg.JWTSecret),
			Issuer: cfg.JWTIssuer,
			TTL:    cfg.TokenTTL,
		},
		Hasher:        bcrypthash.New(bcrypthash.DefaultCost),
		Payments:      authorizer,
		Metrics:       metrics.New(),
		Logger:        log,
		FrontendURL:   cfg.FrontendURL,
		AuthRateLimit: cfg.AuthRateLimit,
		AuthRateBurst: cfg.AuthRateBurst,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
