package services

import (
	"context"
	"errors"
	"math"
	"time"

	converter "github.com/malusev998/currency-converter"
	"github.com/malusev998/currency-converter/logger"
	"github.com/malusev998/currency-converter/metrics"
)

var (
	ErrQuoteUnavailable  = errors.New("Failed to retrieve quote value")
	ErrInvalidInput      = errors.New("Invalid input value")
	ErrNoFetcherProvided = errors.New("no quote fetcher provided")
)

var _ converter.Calculator = ConversionService{}

type ConversionService struct {
	Fetcher converter.QuoteFetcher
	Storage converter.SessionStorage
	Logger  logger.Logger
	Metrics *metrics.ConversionMetrics
}

func (c ConversionService) log() logger.Logger {
	if c.Logger == nil {
		return logger.NewNop()
	}

	return c.Logger
}

func (c ConversionService) fetchQuote(ctx context.Context) (float64, error) {
	start := time.Now()
	quote, err := c.Fetcher.FetchQuote(ctx)
	c.Metrics.QuoteFetched(time.Since(start).Seconds(), quote, err)

	return quote, err
}

// Calculate converts amount (cents) with stateFee (hundredths of a percent)
// using a freshly fetched quote. Transport errors from the fetcher are
// returned untouched.
func (c ConversionService) Calculate(ctx context.Context, amount, stateFee float64, paymentType converter.PaymentType) (float64, error) {
	conversion, err := c.Convert(ctx, converter.ConversionRequest{
		Amount:      amount,
		StateFee:    stateFee,
		PaymentType: paymentType,
	})

	if err != nil {
		return 0, err
	}

	return conversion.Result, nil
}

func (c ConversionService) Convert(ctx context.Context, request converter.ConversionRequest) (converter.Conversion, error) {
	log := c.log()
	paymentType := string(request.PaymentType)

	log.Debug("Starting conversion",
		logger.Float64Field("amount", request.Amount),
		logger.Float64Field("state_fee", request.StateFee),
		logger.StringField("type", paymentType),
	)

	if c.Fetcher == nil {
		log.Error("Conversion without a quote fetcher", logger.ErrorField("error", ErrNoFetcherProvided))
		return converter.Conversion{}, ErrNoFetcherProvided
	}

	quote, err := c.fetchQuote(ctx)

	if err != nil {
		log.Error("Quote fetch failed", logger.ErrorField("error", err))
		c.Metrics.Conversion(paymentType, metrics.OutcomeTransportError)
		return converter.Conversion{}, err
	}

	result, err := calculate(request.Amount, request.StateFee, quote, request.PaymentType)

	if err != nil {
		outcome := metrics.OutcomeInvalidInput
		if errors.Is(err, ErrQuoteUnavailable) {
			outcome = metrics.OutcomeQuoteUnavailable
		}

		log.Warn("Conversion rejected",
			logger.ErrorField("error", err),
			logger.Float64Field("quote", quote),
		)
		c.Metrics.Conversion(paymentType, outcome)

		return converter.Conversion{}, err
	}

	c.Metrics.Conversion(paymentType, metrics.OutcomeSuccess)

	log.Info("Conversion calculated",
		logger.Float64Field("quote", quote),
		logger.Float64Field("result", result),
		logger.StringField("type", paymentType),
	)

	return converter.Conversion{
		Amount:      request.Amount,
		StateFee:    request.StateFee,
		PaymentType: request.PaymentType,
		Quote:       quote,
		Result:      result,
		CreatedAt:   time.Now(),
	}, nil
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

func calculate(amount, stateFee, quote float64, paymentType converter.PaymentType) (float64, error) {
	// zero means the API gave nothing usable
	if quote == 0 {
		return 0, ErrQuoteUnavailable
	}

	if !isFinite(amount) || !isFinite(stateFee) || !isFinite(quote) {
		return 0, ErrInvalidInput
	}

	iof := paymentType.IOF()

	var result float64

	if paymentType.IsCash() {
		result = (amount/100 + stateFee/10000) * (quote + iof)
	} else {
		result = (amount/100 + stateFee/10000 + iof) * quote
	}

	// finite inputs can still overflow
	if !isFinite(result) {
		return 0, ErrInvalidInput
	}

	return result, nil
}
