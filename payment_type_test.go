package converter_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	converter "github.com/malusev998/currency-converter"
)

func TestConvertToPaymentTypeFromString(t *testing.T) {
	assert := require.New(t)

	values := []struct {
		value    string
		expected converter.PaymentType
	}{
		{"cash", converter.Cash},
		{" CASH ", converter.Cash},
		{"non-cash", converter.NonCash},
		{"card", converter.NonCash},
		{"", converter.NonCash},
	}

	for _, value := range values {
		assert.Equal(value.expected, converter.ConvertToPaymentTypeFromString(value.value))
	}
}

func TestPaymentType_IOF(t *testing.T) {
	assert := require.New(t)

	assert.Equal(0.011, converter.Cash.IOF())
	assert.Equal(0.064, converter.NonCash.IOF())
	assert.Equal(0.064, converter.PaymentType("debit").IOF())
}

func TestPaymentType_UnmarshalText(t *testing.T) {
	assert := require.New(t)

	var body struct {
		Type converter.PaymentType `json:"type"`
	}

	assert.Nil(json.Unmarshal([]byte(`{"type":"Cash"}`), &body))
	assert.Equal(converter.Cash, body.Type)

	assert.Nil(json.Unmarshal([]byte(`{"type":"pix"}`), &body))
	assert.Equal(converter.NonCash, body.Type)
}
