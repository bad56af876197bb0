package fetchers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
)

type (
	// AwesomeAPIFetcher reads the ask price of a single currency pair from
	// economia.awesomeapi.com.br. Each call performs exactly one request.
	AwesomeAPIFetcher struct {
		URL    string
		Pair   string
		Client *http.Client
	}

	awesomeAPIQuote struct {
		Ask json.RawMessage `json:"ask"`
	}
)

// PairKey returns the key the API uses for a pair in its response body,
// e.g. "USD-BRL" is returned under "USDBRL".
func PairKey(pair string) string {
	return strings.ToUpper(strings.ReplaceAll(pair, "-", ""))
}

// ParseAsk validates a raw ask value. Numbers and numeric strings are
// accepted, an empty string counts as zero. Everything else, including an
// absent field, null and non-finite values, is reported as not ok.
func ParseAsk(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)

	if len(raw) == 0 {
		return 0, false
	}

	var text string

	switch raw[0] {
	case '"':
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, false
		}

		text = strings.TrimSpace(text)

		if text == "" {
			return 0, true
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		text = string(raw)
	default:
		return 0, false
	}

	// overflow comes back as ±Inf with ErrRange, so huge exponents cost nothing
	f, err := strconv.ParseFloat(text, 64)

	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}

	return f, true
}

func (a AwesomeAPIFetcher) url() string {
	if a.URL == "" {
		return AwesomeAPIURL
	}

	return a.URL
}

func (a AwesomeAPIFetcher) pair() string {
	if a.Pair == "" {
		return AwesomeAPIPair
	}

	return a.Pair
}

func (a AwesomeAPIFetcher) client() *http.Client {
	if a.Client == nil {
		return &http.Client{}
	}

	return a.Client
}

func (a AwesomeAPIFetcher) FetchQuote(ctx context.Context) (float64, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := getData(ctx, a.url())

	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	res, err := a.client().Do(req)

	if err != nil {
		return 0, fmt.Errorf("failed to get quote: %w", err)
	}

	defer res.Body.Close()

	if err := handleHTTPStatusCodeError(res); err != nil {
		return 0, fmt.Errorf("quote API returned status %d: %w", res.StatusCode, err)
	}

	body, err := io.ReadAll(res.Body)

	if err != nil {
		return 0, fmt.Errorf("failed to read response body: %w", err)
	}

	var data map[string]json.RawMessage

	if err := json.Unmarshal(body, &data); err != nil {
		return 0, fmt.Errorf("failed to parse quote response: %w", err)
	}

	var quote awesomeAPIQuote

	// A pair entry of the wrong shape means the ask is missing, not a broken response.
	if err := json.Unmarshal(data[PairKey(a.pair())], &quote); err != nil {
		return 0, nil
	}

	ask, ok := ParseAsk(quote.Ask)

	if !ok {
		return 0, nil
	}

	return ask, nil
}
