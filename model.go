package converter

import (
	"time"

	"github.com/google/uuid"
)

type (
	// ConversionRequest holds the amount in cents and the state fee in
	// hundredths of a percent, exactly as typed into the masked inputs.
	ConversionRequest struct {
		Amount      float64
		StateFee    float64
		PaymentType PaymentType
	}

	Conversion struct {
		Amount      float64
		StateFee    float64
		PaymentType PaymentType
		Quote       float64
		Result      float64
		CreatedAt   time.Time
	}

	ConversionWithID struct {
		Conversion
		ID uuid.UUID
	}
)
