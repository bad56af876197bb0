package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	converter "github.com/malusev998/currency-converter"
	"github.com/malusev998/currency-converter/storage"
)

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Store(conversion converter.Conversion) (converter.ConversionWithID, error) {
	args := m.Called(conversion)

	return args.Get(0).(converter.ConversionWithID), args.Error(1)
}

func (m *mockStorage) Get(id uuid.UUID) (converter.ConversionWithID, error) {
	args := m.Called(id)

	return args.Get(0).(converter.ConversionWithID), args.Error(1)
}

func TestConversionService_Submit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	request := converter.ConversionRequest{Amount: 100, StateFee: 50, PaymentType: converter.NonCash}

	t.Run("StoresResult", func(t *testing.T) {
		asserts := require.New(t)
		service, _ := newService(5.2, nil)
		service.Storage = storage.NewMemoryStorage(storage.MemoryConfig{})

		stored, err := service.Submit(ctx, request)

		asserts.Nil(err)
		asserts.Equal(5.5588, stored.Result)

		found, err := service.Result(stored.ID)

		asserts.Nil(err)
		asserts.Equal(stored.ID, found.ID)
		asserts.Equal(50.0, found.StateFee)
	})

	t.Run("FailedConversionIsNotStored", func(t *testing.T) {
		asserts := require.New(t)
		st := &mockStorage{}
		service, _ := newService(0, nil)
		service.Storage = st

		_, err := service.Submit(ctx, request)

		asserts.True(errors.Is(err, ErrQuoteUnavailable))
		st.AssertNotCalled(t, "Store", mock.Anything)
	})

	t.Run("StorageError", func(t *testing.T) {
		asserts := require.New(t)
		st := &mockStorage{}
		st.On("Store", mock.Anything).Return(converter.ConversionWithID{}, errors.New("storage is full"))
		service, _ := newService(5.2, nil)
		service.Storage = st

		_, err := service.Submit(ctx, request)

		asserts.EqualError(err, "storage is full")
	})

	t.Run("NoStorageProvided", func(t *testing.T) {
		asserts := require.New(t)
		service, _ := newService(5.2, nil)

		_, err := service.Submit(ctx, request)
		asserts.True(errors.Is(err, ErrNoStorageProvided))

		_, err = service.Result(uuid.New())
		asserts.True(errors.Is(err, ErrNoStorageProvided))
	})
}
