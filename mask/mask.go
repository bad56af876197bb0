// Package mask implements the money and percentage masks of the conversion
// form. Masked values carry their two decimal places as plain digits, so
// "$ 1,00" is 100 cents and "0,50 %" is 50 hundredths of a percent.
package mask

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	nonDigits     = regexp.MustCompile(`\D`)
	leadingZeroes = regexp.MustCompile(`^0+`)
)

func Digits(input string) string {
	return nonDigits.ReplaceAllString(input, "")
}

func withDecimalComma(input string) string {
	value := leadingZeroes.ReplaceAllString(Digits(input), "")

	switch {
	case len(value) > 2:
		return value[:len(value)-2] + "," + value[len(value)-2:]
	case len(value) == 2:
		return "0," + value
	default:
		return "0,0" + value
	}
}

func FormatAmount(input string) string {
	return "$ " + withDecimalComma(input)
}

func FormatStateFee(input string) string {
	return withDecimalComma(input) + " %"
}

// HasDigits reports whether a masked value was filled in at all.
func HasDigits(input string) bool {
	return Digits(input) != ""
}

// MinorUnits returns the number typed into a masked field, ignoring the
// mask characters. An empty field is zero, a field too long for a float64
// is +Inf.
func MinorUnits(input string) float64 {
	digits := Digits(input)

	if digits == "" {
		return 0
	}

	value, err := strconv.ParseFloat(digits, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}

	return value
}

func FormatResult(value float64) string {
	return strings.Replace(decimal.NewFromFloat(value).StringFixed(2), ".", ",", 1)
}
