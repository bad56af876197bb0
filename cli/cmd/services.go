package cmd

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	converter "github.com/malusev998/currency-converter"
	"github.com/malusev998/currency-converter/fetchers"
	"github.com/malusev998/currency-converter/logger"
	"github.com/malusev998/currency-converter/metrics"
	"github.com/malusev998/currency-converter/services"
	"github.com/malusev998/currency-converter/storage"
)

// dependencies is everything a command needs, built once the flags and the
// config file are known.
type dependencies struct {
	config   *Config
	log      *zap.Logger
	cleanup  func()
	registry *prometheus.Registry
	fetcher  converter.QuoteFetcher
	service  services.ConversionService
}

func createFetcher(config *Config) (converter.QuoteFetcher, error) {
	fetcher := fetchers.NewQuoteFetcher(config.Quote.Provider, fetchers.AwesomeAPIConfig{
		BaseConfig: fetchers.BaseConfig{URL: config.Quote.URL},
		Pair:       config.Quote.Pair,
	})

	if fetcher == nil {
		return nil, fmt.Errorf("fetcher %s does not exist", config.Quote.Provider)
	}

	return fetcher, nil
}

func createStorage(config *Config) (converter.SessionStorage, error) {
	return storage.NewStorage(config.Storage, storage.MemoryConfig{
		BaseConfig: storage.BaseConfig{TTL: config.SessionTTL},
	})
}

// createDependencies sends every log line to logOut so command output on
// stdout stays clean.
func createDependencies(config *Config, logOut io.Writer) (*dependencies, error) {
	fetcher, err := createFetcher(config)
	if err != nil {
		return nil, err
	}

	st, err := createStorage(config)
	if err != nil {
		return nil, err
	}

	sink := zapcore.Lock(zapcore.AddSync(logOut))
	log, cleanup := logger.NewLogger(config.Debug, sink, sink)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	log.Debug("Configuration loaded",
		logger.StringField("quote_url", config.Quote.URL),
		logger.StringField("quote_pair", config.Quote.Pair),
		logger.StringField("storage", string(config.Storage)),
		logger.DurationField("session_ttl", config.SessionTTL),
	)

	return &dependencies{
		config:   config,
		log:      log,
		cleanup:  cleanup,
		registry: registry,
		fetcher:  fetcher,
		service: services.ConversionService{
			Fetcher: fetcher,
			Storage: st,
			Logger:  log,
			Metrics: metrics.NewConversionMetrics(registry),
		},
	}, nil
}
