package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/svend4/flowershop-orders/internal/adapter/cache"
	"github.com/svend4/flowershop-orders/internal/adapter/natsstan"
	"github.com/svend4/flowershop-orders/internal/adapter/notify"
	"github.com/svend4/flowershop-orders/internal/config"
	"github.com/svend4/flowershop-orders/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	connector := &natsstan.Connector{
		ClusterID: cfg.StanClusterID,
		ClientID:  cfg.StanClientID + "-worker",
		URL:       cfg.NATSURL,
		// the worker reconnects forever; a dead broker only pauses it
		Retry:  natsstan.RetryPolicy{MaxAttempts: 0, Delay: cfg.RetryDelay},
		Logger: logger,
	}
	handle := usecase.NotifyOrderCreated{
		Notifier: &notify.LogNotifier{Logger: logger},
		Seen:     cache.NewSeenCache(),
		Logger:   logger,
	}
	sub := &natsstan.Subscriber{
		Connector:   connector,
		Subject:     cfg.EventsSubject,
		QueueGroup:  cfg.QueueGroup,
		Durable:     cfg.DurableName,
		MaxInflight: cfg.WorkerPrefetch,
		Logger:      logger,
	}

	logger.Info("notification worker starting",
		zap.String("subject", cfg.EventsSubject),
		zap.String("queue_group", cfg.QueueGroup))
	if err := sub.Run(ctx, handle.Execute); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("worker", zap.Error(err))
	}
	logger.Info("worker stopped")
}
