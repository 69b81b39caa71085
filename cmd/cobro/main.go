package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"cobro/internal/amqp"
	"cobro/internal/auth"
	"cobro/internal/backend"
	"cobro/internal/cli"
	apphttp "cobro/internal/http"
	"cobro/internal/services"
	"cobro/internal/storage"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	store, err := backend.Open(cfg, logger)
	if err != nil {
		logger.Error("Failed to open storage backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if store.Cleanup != nil {
			if err := store.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", "error", err)
			}
		}
	}()

	// AMQP is optional: without it collections are still recorded, just
	// not exported.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		logger.Info("AMQP publishing enabled", "exchange", cfg.AMQPExchange)
	} else {
		logger.Info("AMQP publishing disabled - no AMQP_URL provided")
	}

	hasher := auth.NewHasherWithCost(cfg.PasswordCost)
	directory := storage.NewDirectory(store.Store, hasher)
	sessions := storage.NewSessions(store.Store, directory, hasher)
	clients := storage.NewClientRegistry(store.Store)
	ledger := storage.NewLedger(store.Store)
	ledgerSvc := services.NewLedgerService(ledger, amqpClient)

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Directory: directory,
		Sessions:  sessions,
		Clients:   clients,
		Ledger:    ledger,
		LedgerSvc: ledgerSvc,
	})

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	})

	logger.Info("Starting cobro server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
