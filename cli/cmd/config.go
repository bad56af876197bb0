package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/malusev998/currency-converter/fetchers"
	"github.com/malusev998/currency-converter/storage"
)

const envPrefix = "CURRENCY_CONVERTER"

type (
	QuoteConfig struct {
		Provider fetchers.Provider
		URL      string
		Pair     string
	}
	Config struct {
		Quote      QuoteConfig
		HTTPAddr   string
		SessionTTL time.Duration
		Storage    storage.Provider
		Debug      bool
	}
)

func newViper(configFile string) (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault("quote.provider", string(fetchers.AwesomeAPIProvider))
	v.SetDefault("quote.url", fetchers.AwesomeAPIURL)
	v.SetDefault("quote.pair", fetchers.AwesomeAPIPair)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("session.ttl", storage.DefaultTTL)
	v.SetDefault("storage", string(storage.Memory))
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile == "" {
		return v, nil
	}

	absolutePath, err := filepath.Abs(configFile)
	if err != nil {
		return nil, err
	}

	v.SetConfigFile(absolutePath)

	// a missing file leaves defaults and environment in place
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error while reading config file %s: %w", absolutePath, err)
	}

	return v, nil
}

func getConfig(v *viper.Viper, debug bool) (*Config, error) {
	provider, err := fetchers.ConvertToProviderFromString(v.GetString("quote.provider"))
	if err != nil {
		return nil, err
	}

	storageProvider, err := storage.ConvertToProviderFromString(v.GetString("storage"))
	if err != nil {
		return nil, err
	}

	ttl := v.GetDuration("session.ttl")
	if ttl <= 0 {
		return nil, fmt.Errorf("session.ttl must be positive, got %s", v.GetString("session.ttl"))
	}

	return &Config{
		Quote: QuoteConfig{
			Provider: provider,
			URL:      v.GetString("quote.url"),
			Pair:     v.GetString("quote.pair"),
		},
		HTTPAddr:   v.GetString("http.addr"),
		SessionTTL: ttl,
		Storage:    storageProvider,
		Debug:      debug || strings.EqualFold(v.GetString("log.level"), "debug"),
	}, nil
}
