package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/podolsknews/parser-service/internal/config"
	"github.com/podolsknews/parser-service/internal/llm"
	"github.com/podolsknews/parser-service/internal/rss"
	"github.com/podolsknews/parser-service/internal/service"
	"github.com/podolsknews/parser-service/internal/storage/postgres"
	"github.com/podolsknews/parser-service/internal/transport/bus"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting parser-service", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	// Поллер и реактор держат отдельные пулы: долгие батчи поллера
	// не задерживают команды из шины.
	dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
	pollerStore, err := postgres.New(dbCtx, cfg.DBConfig.URL(), "pg_conn_thread")
	if err != nil {
		dbCancel()
		log.Error("postgres_connect_failed", slog.String("err", err.Error()))
		rootCancel()
		os.Exit(1)
	}
	reactorStore, err := postgres.New(dbCtx, cfg.DBConfig.URL(), "pg_conn_main")
	dbCancel()
	if err != nil {
		log.Error("postgres_connect_failed", slog.String("err", err.Error()))
		rootCancel()
		pollerStore.Close()
		os.Exit(1)
	}
	log.Info("postgres_connected")

	// Один LLM-клиент на процесс: генерация сериализуется мьютексом,
	// как и одиночный контекст локальной модели.
	scorer := llm.NewClient(cfg.LLM)
	fetcher := rss.New()

	poller := service.New(pollerStore, fetcher, scorer, *cfg)
	reactorSvc := service.New(reactorStore, fetcher, scorer, *cfg)
	log.Info("service_initialized")

	initCtx, initCancel := context.WithTimeout(rootCtx, 15*time.Second)
	if err := reactorSvc.Init(initCtx); err != nil {
		initCancel()
		log.Error("service_init_failed", slog.String("err", err.Error()))
		rootCancel()
		pollerStore.Close()
		reactorStore.Close()
		os.Exit(1)
	}
	initCancel()

	reactor, err := bus.NewReactor(rootCtx, cfg.Bus, reactorSvc)
	if err != nil {
		log.Error("bus_connect_failed", slog.String("err", err.Error()))
		rootCancel()
		pollerStore.Close()
		reactorStore.Close()
		os.Exit(1)
	}
	log.Info("bus_connected",
		slog.String("in_channel", cfg.Bus.InChannel),
		slog.String("out_channel", cfg.Bus.OutChannel),
	)

	pollerDone := make(chan struct{})
	go func() {
		defer close(pollerDone)
		if err := poller.Start(rootCtx); err != nil {
			log.Error("ingest_start_failed", slog.String("err", err.Error()))
			rootCancel()
		}
	}()

	reactorDone := make(chan struct{})
	go func() {
		defer close(reactorDone)
		if err := reactor.Run(rootCtx); err != nil {
			log.Error("reactor_failed", slog.String("err", err.Error()))
			rootCancel()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown_requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	for _, done := range []chan struct{}{pollerDone, reactorDone} {
		select {
		case <-done:
		case <-shutdownCtx.Done():
			log.Warn("shutdown_timeout")
		}
	}
	shutdownCancel()

	rootCancel()
	scorer.Close()
	pollerStore.Close()
	reactorStore.Close()

	log.Info("service_stopped")
	os.Exit(0)
}

// setupLogger настраивает slog по окружению.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}

	return log
}
