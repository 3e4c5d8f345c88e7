package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/svend4/flowershop-orders/internal/adapter/httpapi"
	"github.com/svend4/flowershop-orders/internal/adapter/natsstan"
	"github.com/svend4/flowershop-orders/internal/adapter/repo"
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

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := repo.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("init schema", zap.Error(err))
	}

	store := repo.NewPostgresOrderStore(pool, logger)
	connector := &natsstan.Connector{
		ClusterID: cfg.StanClusterID,
		ClientID:  cfg.StanClientID + "-pub",
		URL:       cfg.NATSURL,
		Retry:     natsstan.RetryPolicy{MaxAttempts: 1, Delay: cfg.RetryDelay},
		Logger:    logger,
	}
	publisher := &natsstan.Publisher{
		Connector: connector,
		Subject:   cfg.EventsSubject,
		Attempts:  cfg.PublishAttempts,
		Delay:     cfg.RetryDelay,
		Logger:    logger,
	}
	place := usecase.PlaceOrder{Store: store, Publisher: publisher, Logger: logger}
	api := httpapi.NewServer(place, store, logger)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: api.Router}
	go func() {
		logger.Info("http listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = srv.Shutdown(shutdownCtx)
	logger.Info("server stopped")
}
