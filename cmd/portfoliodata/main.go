package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/portfoliodata/internal/portfoliodata/application"
	"github.com/wyfcoding/portfoliodata/internal/portfoliodata/domain"
	"github.com/wyfcoding/portfoliodata/internal/portfoliodata/infrastructure/messaging"
	"github.com/wyfcoding/portfoliodata/internal/portfoliodata/infrastructure/persistence/gormstore"
	httpiface "github.com/wyfcoding/portfoliodata/internal/portfoliodata/interfaces/http"
	"github.com/wyfcoding/portfoliodata/pkg/config"
	"github.com/wyfcoding/portfoliodata/pkg/db"
	"github.com/wyfcoding/portfoliodata/pkg/logger"
)

func main() {
	configPath := flag.String("config", "configs/config.toml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := logger.Init(cfg.Logger); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	ctx := context.Background()

	database, err := db.Init(db.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	})
	if err != nil {
		logger.Fatal(ctx, "failed to connect database", "error", err)
	}
	defer database.Close()

	store := gormstore.New(database.DB)
	if err := store.AutoMigrate(); err != nil {
		logger.Fatal(ctx, "failed to migrate schema", "error", err)
	}

	var events domain.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher := messaging.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.MaxRetries)
		defer publisher.Close()
		events = publisher
	}

	svc := application.NewService(store, store, store, events)
	prices := application.NewPriceService(store, store)
	handler := httpiface.NewHandler(svc, prices)

	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), httpiface.RequestID(), httpiface.AccessLog())
	handler.RegisterRoutes(engine.Group("/api"))

	server := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info(ctx, "server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(ctx, "server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "shutdown failed", "error", err)
	}
	logger.Info(ctx, "server stopped")
}
