package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	converter "github.com/malusev998/currency-converter"
	"github.com/malusev998/currency-converter/logger"
	"github.com/malusev998/currency-converter/mask"
	"github.com/malusev998/currency-converter/services"
	"github.com/malusev998/currency-converter/storage"
)

type (
	ConversionService interface {
		Submit(ctx context.Context, request converter.ConversionRequest) (converter.ConversionWithID, error)
		Result(id uuid.UUID) (converter.ConversionWithID, error)
	}

	ConversionHandler struct {
		service  ConversionService
		fetcher  converter.QuoteFetcher
		log      logger.Logger
		validate *validator.Validate
	}

	// conversionRequest accepts masked text ("$ 1,00", "0,50 %") or plain
	// numbers in minor units for amount and stateFee.
	conversionRequest struct {
		Amount   json.RawMessage `json:"amount" validate:"required"`
		StateFee json.RawMessage `json:"stateFee" validate:"required"`
		Type     string          `json:"type" validate:"required"`
	}

	conversionResponse struct {
		ID                    uuid.UUID             `json:"id"`
		Amount                float64               `json:"amount"`
		StateFee              float64               `json:"stateFee"`
		Type                  converter.PaymentType `json:"type"`
		Quote                 float64               `json:"quote"`
		Result                float64               `json:"result"`
		ResultFormatted       string                `json:"resultFormatted"`
		CurrentQuote          *float64              `json:"currentQuote,omitempty"`
		CurrentQuoteFormatted string                `json:"currentQuoteFormatted,omitempty"`
		CreatedAt             time.Time             `json:"createdAt"`
	}

	quoteResponse struct {
		Quote          float64 `json:"quote"`
		QuoteFormatted string  `json:"quoteFormatted"`
	}

	errorResponse struct {
		Error string `json:"error"`
	}
)

var (
	errFieldRequired = errors.New("is required")
	errFieldNegative = errors.New("must not be negative")
	errFieldInvalid  = errors.New("is not a valid number")
)

func NewConversionHandler(service ConversionService, fetcher converter.QuoteFetcher, log logger.Logger) *ConversionHandler {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		return strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	})

	return &ConversionHandler{service: service, fetcher: fetcher, log: log, validate: validate}
}

func (h *ConversionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/conversions", h.CreateConversion).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/conversions/{id}", h.GetConversion).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/quote", h.GetQuote).Methods(http.MethodGet)
}

func (h *ConversionHandler) CreateConversion(w http.ResponseWriter, r *http.Request) {
	request, err := h.decodeRequest(w, r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validateRequest(request); err != nil {
		h.log.Warn("Invalid conversion request", logger.ErrorField("error", err))
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	conversionRequest, err := request.toConversionRequest()
	if err != nil {
		h.log.Warn("Invalid conversion request", logger.ErrorField("error", err))
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	conversion, err := h.service.Submit(r.Context(), conversionRequest)
	if err != nil {
		h.handleConversionError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, newConversionResponse(conversion))
}

// GetConversion renders a stored result together with the quote as it is
// right now. Only results of successful submissions can be viewed.
func (h *ConversionHandler) GetConversion(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Conversion not found")
		return
	}

	conversion, err := h.service.Result(id)
	if err != nil {
		if errors.Is(err, storage.ErrConversionNotFound) {
			respondWithError(w, http.StatusNotFound, "Conversion not found")
			return
		}

		h.log.Error("Failed to load conversion", logger.StringField("id", id.String()), logger.ErrorField("error", err))
		respondWithError(w, http.StatusInternalServerError, "Failed to load conversion")
		return
	}

	response := newConversionResponse(conversion)

	quote, err := h.fetcher.FetchQuote(r.Context())
	if err != nil {
		h.log.Warn("Current quote is not available", logger.ErrorField("error", err))
	} else {
		response.CurrentQuote = &quote
		response.CurrentQuoteFormatted = mask.FormatResult(quote)
	}

	respondWithJSON(w, http.StatusOK, response)
}

func (h *ConversionHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.fetcher.FetchQuote(r.Context())
	if err != nil {
		h.log.Error("Failed to fetch quote", logger.ErrorField("error", err))
		respondWithError(w, http.StatusServiceUnavailable, "Quote service is not reachable")
		return
	}

	respondWithJSON(w, http.StatusOK, quoteResponse{
		Quote:          quote,
		QuoteFormatted: mask.FormatResult(quote),
	})
}

func (h *ConversionHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (conversionRequest, error) {
	var request conversionRequest

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.log.Warn("Failed to decode request body", logger.ErrorField("error", err))
		return conversionRequest{}, errors.New("invalid request payload")
	}

	return request, nil
}

// validateRequest reports the first failing field as "<field> is required".
func (h *ConversionHandler) validateRequest(request conversionRequest) error {
	err := h.validate.Struct(request)

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return fmt.Errorf("%s %w", validationErrors[0].Field(), errFieldRequired)
	}

	return err
}

func (h *ConversionHandler) handleConversionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrQuoteUnavailable):
		respondWithError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, services.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNoStorageProvided), errors.Is(err, services.ErrNoFetcherProvided):
		h.log.Error("Conversion could not be stored", logger.ErrorField("error", err))
		respondWithError(w, http.StatusInternalServerError, "Failed to process conversion")
	default:
		h.log.Error("Quote service failed", logger.ErrorField("error", err))
		respondWithError(w, http.StatusServiceUnavailable, "Quote service is not reachable")
	}
}

func (r conversionRequest) toConversionRequest() (converter.ConversionRequest, error) {
	amount, err := parseMinorUnits(r.Amount)
	if err != nil {
		return converter.ConversionRequest{}, fmt.Errorf("amount %w", err)
	}

	stateFee, err := parseMinorUnits(r.StateFee)
	if err != nil {
		return converter.ConversionRequest{}, fmt.Errorf("stateFee %w", err)
	}

	if strings.TrimSpace(r.Type) == "" {
		return converter.ConversionRequest{}, fmt.Errorf("type %w", errFieldRequired)
	}

	return converter.ConversionRequest{
		Amount:      amount,
		StateFee:    stateFee,
		PaymentType: converter.ConvertToPaymentTypeFromString(r.Type),
	}, nil
}

func parseMinorUnits(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)

	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, errFieldRequired
	}

	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, errFieldInvalid
		}

		if strings.HasPrefix(strings.TrimSpace(text), "-") {
			return 0, errFieldNegative
		}

		if !mask.HasDigits(text) {
			return 0, errFieldRequired
		}

		value := mask.MinorUnits(text)
		if math.IsInf(value, 0) {
			return 0, errFieldInvalid
		}

		return value, nil
	}

	value, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, errFieldInvalid
	}

	if value < 0 {
		return 0, errFieldNegative
	}

	return value, nil
}

func newConversionResponse(conversion converter.ConversionWithID) conversionResponse {
	return conversionResponse{
		ID:              conversion.ID,
		Amount:          conversion.Amount,
		StateFee:        conversion.StateFee,
		Type:            conversion.PaymentType,
		Quote:           conversion.Quote,
		Result:          conversion.Result,
		ResultFormatted: mask.FormatResult(conversion.Result),
		CreatedAt:       conversion.CreatedAt,
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, errorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal Server Error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
