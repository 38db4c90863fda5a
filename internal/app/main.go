package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Egor213/ProbeTrap/internal/broker"
	kafkabroker "github.com/Egor213/ProbeTrap/internal/broker/kafka"
	"github.com/Egor213/ProbeTrap/internal/config"
	httpv1 "github.com/Egor213/ProbeTrap/internal/controller/http/v1"
	"github.com/Egor213/ProbeTrap/internal/metrics"
	"github.com/Egor213/ProbeTrap/internal/repo"
	"github.com/Egor213/ProbeTrap/internal/service"
	errorsUtils "github.com/Egor213/ProbeTrap/pkg/errors"
	"github.com/Egor213/ProbeTrap/pkg/httpserver"
	"github.com/Egor213/ProbeTrap/pkg/logger"
	"github.com/Egor213/ProbeTrap/pkg/sqlite"

	log "github.com/sirupsen/logrus"
)

func Run() {
	// Config
	cfg, err := config.New()
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	// Logger
	logger.SetupLogger(cfg.Log.Level, cfg.Log.Format)
	log.Info("Logger has been set up")

	// Static files
	baseDir, err := ResolveBaseDir(cfg.Static.Dir)
	if err != nil {
		log.Fatalf("Static directory is unavailable: %v", err)
	}
	log.Infof("Serving static files from %s", baseDir)

	// Store
	store := sqlite.New(cfg.Store.Path,
		sqlite.BusyTimeout(cfg.Store.BusyTimeout),
		sqlite.JournalMode(cfg.Store.JournalMode),
	)
	if cfg.Store.LogRequests {
		if err := CheckStore(context.Background(), store); err != nil {
			log.Fatal(errorsUtils.WrapPathErr(err))
		}
		log.Infof("Request URLs are appended to %s", store.Path())
	}

	// Repos
	repositories := repo.NewRepositories(store)

	// Producer
	var brokerProducer broker.Producer = broker.NopProducer{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer := kafkabroker.NewProducer(kafkabroker.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			BatchTimeout: cfg.Kafka.BatchTimeout,
		})
		defer kafkaProducer.Close()
		brokerProducer = kafkaProducer
	}

	// Services
	metricsCnt := metrics.New()
	deps := service.ServicesDependencies{
		Repos:          repositories,
		Counters:       metricsCnt,
		BrokerProducer: brokerProducer,
		Static: service.StaticConfig{
			BaseDir:    baseDir,
			Sentinel:   cfg.Static.Sentinel,
			TrapMarker: cfg.Static.TrapMarker,
		},
	}
	services := service.NewServices(deps)

	// HTTP server
	log.Infof("Starting HTTP server...")
	log.Debugf("HTTP server address: %s:%s", cfg.HTTP.Host, cfg.HTTP.Port)
	router := httpv1.NewRouter(services, metricsCnt, httpv1.RouterConfig{
		LogRequests:    cfg.Store.LogRequests,
		RequestTimeout: cfg.HTTP.RequestTimeout,
	})
	httpServer, err := httpserver.New(router,
		httpserver.Addr(cfg.HTTP.Host, cfg.HTTP.Port),
		httpserver.ReadTimeout(cfg.HTTP.ReadTimeout),
		httpserver.WriteTimeout(cfg.HTTP.WriteTimeout),
	)
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	// Prometheus server
	var metricsServer *httpserver.Server
	var metricsNotify <-chan error
	if cfg.Prometheus.Port != "" {
		log.Infof("Starting metrics server...")
		log.Debugf("Metrics server port: %s", cfg.Prometheus.Port)
		metricsServer, err = httpserver.New(metrics.NewRouter(), httpserver.Port(cfg.Prometheus.Port))
		if err != nil {
			log.Fatal(errorsUtils.WrapPathErr(err))
		}
		metricsNotify = metricsServer.Notify()
	}

	log.Info("Configuring graceful shutdown...")

	// Waiting signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info(errorsUtils.WrapPathErr(errors.New(s.String())))
	case err := <-httpServer.Notify():
		log.Info(errorsUtils.WrapPathErr(errors.Join(errors.New("http server stopped"), err)))
	case err := <-metricsNotify:
		log.Info(errorsUtils.WrapPathErr(errors.Join(errors.New("metrics server stopped"), err)))
	}

	// Graceful shutdown
	shutdownApp(httpServer, metricsServer)
}

func shutdownApp(httpServer, metricsServer *httpserver.Server) {
	log.Info("Shutting down...")
	if err := httpServer.Shutdown(); err != nil {
		log.Error(errorsUtils.WrapPathErr(err))
	}
	if metricsServer == nil {
		return
	}
	if err := metricsServer.Shutdown(); err != nil {
		log.Error(errorsUtils.WrapPathErr(err))
	}
}
