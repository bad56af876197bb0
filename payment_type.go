package converter

import "strings"

type PaymentType string

const (
	Cash    PaymentType = "cash"
	NonCash PaymentType = "non-cash"

	// IOF rates applied on top of the quote.
	CashIOF    = 0.011
	NonCashIOF = 0.064
)

func ConvertToPaymentTypeFromString(str string) PaymentType {
	if strings.ToLower(strings.TrimSpace(str)) == string(Cash) {
		return Cash
	}

	return NonCash
}

func (p PaymentType) IsCash() bool {
	return p == Cash
}

func (p PaymentType) IOF() float64 {
	if p.IsCash() {
		return CashIOF
	}

	return NonCashIOF
}

func (p *PaymentType) UnmarshalText(text []byte) error {
	*p = ConvertToPaymentTypeFromString(string(text))

	return nil
}
