package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	converter "github.com/malusev998/currency-converter"
	"github.com/malusev998/currency-converter/metrics"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchQuote(ctx context.Context) (float64, error) {
	args := m.Called(ctx)

	return args.Get(0).(float64), args.Error(1)
}

func newService(quote float64, err error) (ConversionService, *mockFetcher) {
	fetcher := &mockFetcher{}
	fetcher.On("FetchQuote", mock.Anything).Return(quote, err)

	return ConversionService{Fetcher: fetcher}, fetcher
}

func TestConversionService_Calculate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Cash", func(t *testing.T) {
		asserts := require.New(t)
		service, fetcher := newService(5.2, nil)
		amount, stateFee, quote := 100.0, 50.0, 5.2

		value, err := service.Calculate(ctx, amount, stateFee, converter.Cash)

		asserts.Nil(err)
		asserts.Equal((amount/100+stateFee/10000)*(quote+0.011), value)
		asserts.Equal(5.237055, value)
		fetcher.AssertNumberOfCalls(t, "FetchQuote", 1)
	})

	t.Run("NonCash", func(t *testing.T) {
		asserts := require.New(t)
		service, _ := newService(5.2, nil)
		amount, stateFee, quote := 100.0, 50.0, 5.2

		value, err := service.Calculate(ctx, amount, stateFee, converter.NonCash)

		asserts.Nil(err)
		asserts.Equal((amount/100+stateFee/10000+0.064)*quote, value)
		asserts.Equal(5.5588, value)
	})

	t.Run("AnyOtherTypeIsNonCash", func(t *testing.T) {
		asserts := require.New(t)
		service, _ := newService(5.2, nil)

		value, err := service.Calculate(ctx, 100, 50, converter.PaymentType("Cash"))

		asserts.Nil(err)
		asserts.Equal(5.5588, value)
	})

	t.Run("ZeroInputs", func(t *testing.T) {
		asserts := require.New(t)
		service, _ := newService(5.2, nil)

		value, err := service.Calculate(ctx, 0, 0, converter.Cash)

		asserts.Nil(err)
		asserts.Equal(0.0, value)
	})

	t.Run("QuoteUnavailable", func(t *testing.T) {
		asserts := require.New(t)
		service, _ := newService(0, nil)

		for _, amount := range []float64{100, 0, math.NaN()} {
			value, err := service.Calculate(ctx, amount, 50, converter.Cash)

			asserts.True(errors.Is(err, ErrQuoteUnavailable))
			asserts.Equal("Failed to retrieve quote value", err.Error())
			asserts.Equal(0.0, value)
		}
	})

	t.Run("InvalidAmountAndFee", func(t *testing.T) {
		asserts := require.New(t)
		service, _ := newService(5.2, nil)

		_, err := service.Calculate(ctx, math.NaN(), math.NaN(), converter.Cash)

		asserts.True(errors.Is(err, ErrInvalidInput))
		asserts.Equal("Invalid input value", err.Error())
	})

	t.Run("InvalidFeeOnly", func(t *testing.T) {
		asserts := require.New(t)
		service, _ := newService(5.2, nil)

		_, err := service.Calculate(ctx, 100, math.Inf(1), converter.NonCash)

		asserts.True(errors.Is(err, ErrInvalidInput))
	})

	t.Run("InvalidQuote", func(t *testing.T) {
		asserts := require.New(t)
		service, _ := newService(math.NaN(), nil)

		_, err := service.Calculate(ctx, 100, 50, converter.Cash)

		asserts.True(errors.Is(err, ErrInvalidInput))
	})

	t.Run("OverflowingResult", func(t *testing.T) {
		asserts := require.New(t)

		for _, paymentType := range []converter.PaymentType{converter.Cash, converter.NonCash} {
			service, _ := newService(500, nil)

			value, err := service.Calculate(ctx, math.MaxFloat64, 50, paymentType)

			asserts.True(errors.Is(err, ErrInvalidInput))
			asserts.Equal(0.0, value)
		}
	})

	t.Run("NoFetcher", func(t *testing.T) {
		asserts := require.New(t)
		service := ConversionService{}

		asserts.NotPanics(func() {
			_, err := service.Calculate(ctx, 100, 50, converter.Cash)
			asserts.True(errors.Is(err, ErrNoFetcherProvided))
		})
	})

	t.Run("TransportErrorIsNotClassified", func(t *testing.T) {
		asserts := require.New(t)
		transportErr := errors.New("connection refused")
		service, _ := newService(0, transportErr)

		_, err := service.Calculate(ctx, 100, 50, converter.Cash)

		asserts.Equal(transportErr, err)
		asserts.False(errors.Is(err, ErrQuoteUnavailable))
		asserts.False(errors.Is(err, ErrInvalidInput))
	})
}

func TestConversionService_Convert(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)
	service, _ := newService(5.2, nil)

	conversion, err := service.Convert(context.Background(), converter.ConversionRequest{
		Amount:      100,
		StateFee:    50,
		PaymentType: converter.Cash,
	})

	asserts.Nil(err)
	asserts.Equal(5.2, conversion.Quote)
	asserts.Equal(5.237055, conversion.Result)
	asserts.Equal(50.0, conversion.StateFee)
	asserts.Equal(converter.Cash, conversion.PaymentType)
	asserts.False(conversion.CreatedAt.IsZero())
}

func TestConversionService_MetricsAndLogs(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)

	core, logs := observer.New(zap.DebugLevel)
	m := metrics.NewConversionMetrics(prometheus.NewRegistry())

	fetcher := &mockFetcher{}
	fetcher.On("FetchQuote", mock.Anything).Return(5.2, nil).Once()
	fetcher.On("FetchQuote", mock.Anything).Return(0.0, nil).Once()

	service := ConversionService{Fetcher: fetcher, Logger: zap.New(core), Metrics: m}

	_, err := service.Calculate(context.Background(), 100, 50, converter.Cash)
	asserts.Nil(err)

	_, err = service.Calculate(context.Background(), 100, 50, converter.Cash)
	asserts.True(errors.Is(err, ErrQuoteUnavailable))

	asserts.Equal(1.0, testutil.ToFloat64(m.ConversionsTotal.WithLabelValues("cash", metrics.OutcomeSuccess)))
	asserts.Equal(1.0, testutil.ToFloat64(m.ConversionsTotal.WithLabelValues("cash", metrics.OutcomeQuoteUnavailable)))
	asserts.Equal(0.0, testutil.ToFloat64(m.QuoteFetchErrors))

	asserts.Equal(1, logs.FilterMessage("Conversion calculated").Len())
	asserts.Equal(1, logs.FilterMessage("Conversion rejected").Len())
}
