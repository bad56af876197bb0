package converter

import (
	"context"

	"github.com/google/uuid"
)

type (
	QuoteFetcher interface {
		FetchQuote(ctx context.Context) (float64, error)
	}

	Calculator interface {
		Calculate(ctx context.Context, amount, stateFee float64, paymentType PaymentType) (float64, error)
		Convert(ctx context.Context, request ConversionRequest) (Conversion, error)
	}

	SessionStorage interface {
		Store(Conversion) (ConversionWithID, error)
		Get(id uuid.UUID) (ConversionWithID, error)
	}
)
