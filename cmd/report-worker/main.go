package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"finreports/internal/amqp"
	"finreports/internal/config"
	"finreports/internal/log"
	"finreports/internal/source"
	"finreports/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.Config{Component: log.ComponentWorker})
	log.SetDefault(logger)

	logger.Info("starting report-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the report worker")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src, closeSource, err := source.Open(ctx, cfg, logger.WithComponent(log.ComponentSource))
	if err != nil {
		logger.Error("failed to initialize transaction source", log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	defer closeSource()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, cfg.AMQPResultsQueue, logger.WithComponent(log.ComponentAMQP))
	if err != nil {
		logger.Error("failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	reportWorker := worker.NewReportWorker(src, amqpClient, logger)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("shutdown signal received", "signal", sig.String())
		cancel()
	}()

	err = amqpClient.ConsumeRequests(ctx, func(req *amqp.ReportRequest) error {
		return reportWorker.HandleRequest(ctx, req)
	})
	if err != nil && err != context.Canceled {
		logger.Error("message consumption failed", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("worker stopped gracefully")
}
