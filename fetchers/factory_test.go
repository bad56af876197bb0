package fetchers_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malusev998/currency-converter/fetchers"
)

func TestConvertToProviderFromString(t *testing.T) {
	asserts := require.New(t)

	for _, value := range []string{"awesomeapi", "AwesomeAPI", " AWESOMEAPI ", ""} {
		provider, err := fetchers.ConvertToProviderFromString(value)
		asserts.Nil(err)
		asserts.Equal(fetchers.AwesomeAPIProvider, provider)
	}

	provider, err := fetchers.ConvertToProviderFromString("exchangeratesapi")
	asserts.EqualError(err, "value exchangeratesapi is not valid Provider")
	asserts.Equal(fetchers.EmptyProvider, provider)
}

func TestNewQuoteFetcher(t *testing.T) {
	asserts := require.New(t)

	fetcher := fetchers.NewQuoteFetcher(fetchers.AwesomeAPIProvider, fetchers.AwesomeAPIConfig{})
	asserts.Equal(fetchers.AwesomeAPIFetcher{
		URL:  fetchers.AwesomeAPIURL,
		Pair: fetchers.AwesomeAPIPair,
	}, fetcher)

	fetcher = fetchers.NewQuoteFetcher(fetchers.AwesomeAPIProvider, fetchers.AwesomeAPIConfig{
		BaseConfig: fetchers.BaseConfig{URL: "http://localhost:9999/json/last/EUR-BRL"},
		Pair:       "EUR-BRL",
	})
	asserts.Equal(fetchers.AwesomeAPIFetcher{
		URL:  "http://localhost:9999/json/last/EUR-BRL",
		Pair: "EUR-BRL",
	}, fetcher)

	asserts.Nil(fetchers.NewQuoteFetcher(fetchers.Provider("unknown"), nil))
}
