package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joripage/tradeguard/config"
	postgres_wrapper "github.com/joripage/tradeguard/pkg/infra/postgres"
	rabbitmq_wrapper "github.com/joripage/tradeguard/pkg/infra/rabbitmq"
	"github.com/joripage/tradeguard/pkg/logging"
	"github.com/joripage/tradeguard/pkg/tradeguard/api"
	"github.com/joripage/tradeguard/pkg/tradeguard/bus"
	"github.com/joripage/tradeguard/pkg/tradeguard/repo"
	"github.com/joripage/tradeguard/pkg/tradeguard/risk"
	"github.com/joripage/tradeguard/pkg/tradeguard/worker"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	logger := logging.Init(cfg.ServiceName, logging.INFO)
	defer logger.Sync() // nolint

	configBytes, err := json.MarshalIndent(cfg, "", "   ")
	if err != nil {
		zap.S().Warnf("could not convert config to JSON: %v", err)
	} else {
		zap.S().Debugf("load config %s", string(configBytes))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	// init db
	db := postgres_wrapper.InitPostgresWithBackoff(cfg.TradingDB)
	sqlRepo := repo.NewRepo(db)

	// init bus
	conn := rabbitmq_wrapper.InitRabbitWithBackoff(cfg.RabbitMQ)
	msgBus, err := bus.NewAMQPBus(conn, cfg.RabbitMQ)
	if err != nil {
		zap.S().Errorf("init bus fail with err: %v", err)
		panic(err)
	}

	// worker
	w := worker.NewOrderGuardWorker(msgBus, sqlRepo, risk.NewEngine())
	if err := w.Start(ctx); err != nil {
		zap.S().Errorf("start worker fail with err: %v", err)
		panic(err)
	}

	// admin http
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.NewServer(msgBus, sqlRepo).Handler(),
	}
	go func() {
		zap.S().Infof("http listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.S().Errorf("http serve fail with err: %v", err)
		}
	}()

	<-sigs
	zap.S().Info("Shutting down...")

	// stop taking new deliveries, let in-flight messages finish
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zap.S().Warnf("http shutdown fail with err: %v", err)
	}

	if err := msgBus.Close(); err != nil {
		zap.S().Warnf("close bus fail with err: %v", err)
	}

	zap.S().Info("Exited cleanly.")
}
