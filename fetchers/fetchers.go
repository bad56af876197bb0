package fetchers

import (
	"context"
	"errors"
	"net/http"
)

const (
	AwesomeAPIURL  = "https://economia.awesomeapi.com.br/json/last/USD-BRL"
	AwesomeAPIPair = "USD-BRL"
)

var (
	ErrClient  = errors.New("client error")
	ErrServer  = errors.New("server error")
	ErrUnknown = errors.New("unknown error")
)

func getData(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)

	if err != nil {
		return nil, err
	}

	req.Header.Add("Accept", "application/json")

	return req, nil
}

func handleHTTPStatusCodeError(res *http.Response) error {
	switch {
	case res.StatusCode == http.StatusOK:
		return nil
	case res.StatusCode >= http.StatusBadRequest && res.StatusCode < http.StatusInternalServerError:
		return ErrClient
	case res.StatusCode >= http.StatusInternalServerError:
		return ErrServer
	default:
		return ErrUnknown
	}
}
