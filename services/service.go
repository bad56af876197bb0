package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	converter "github.com/malusev998/currency-converter"
	"github.com/malusev998/currency-converter/logger"
)

var ErrNoStorageProvided = errors.New("no storage provided")

// Submit converts the request and keeps the result in the session storage
// so that it can be displayed later by its ID.
func (c ConversionService) Submit(ctx context.Context, request converter.ConversionRequest) (converter.ConversionWithID, error) {
	if c.Storage == nil {
		return converter.ConversionWithID{}, ErrNoStorageProvided
	}

	conversion, err := c.Convert(ctx, request)

	if err != nil {
		return converter.ConversionWithID{}, err
	}

	stored, err := c.Storage.Store(conversion)

	if err != nil {
		c.log().Error("Storing conversion failed", logger.ErrorField("error", err))
		return converter.ConversionWithID{}, err
	}

	return stored, nil
}

func (c ConversionService) Result(id uuid.UUID) (converter.ConversionWithID, error) {
	if c.Storage == nil {
		return converter.ConversionWithID{}, ErrNoStorageProvided
	}

	return c.Storage.Get(id)
}
