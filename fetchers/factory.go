package fetchers

import (
	"fmt"
	"net/http"
	"strings"

	converter "github.com/malusev998/currency-converter"
)

type (
	Provider string

	BaseConfig struct {
		URL    string
		Client *http.Client
	}
	AwesomeAPIConfig struct {
		BaseConfig
		Pair string
	}
)

const (
	AwesomeAPIProvider Provider = "AwesomeAPI"
	EmptyProvider      Provider = ""
)

func ConvertToProviderFromString(str string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "awesomeapi", "":
		return AwesomeAPIProvider, nil
	}

	return EmptyProvider, fmt.Errorf("value %s is not valid Provider", str)
}

// NewQuoteFetcher returns nil for providers it does not know about.
func NewQuoteFetcher(provider Provider, config interface{}) converter.QuoteFetcher {
	switch provider {
	case AwesomeAPIProvider:
		c, _ := config.(AwesomeAPIConfig)

		if c.URL == "" {
			c.URL = AwesomeAPIURL
		}

		if c.Pair == "" {
			c.Pair = AwesomeAPIPair
		}

		return AwesomeAPIFetcher{
			URL:    c.URL,
			Pair:   c.Pair,
			Client: c.Client,
		}
	}

	return nil
}
