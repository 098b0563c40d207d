package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Amount bounds. They match the NUMERIC(19, 4) transactions.amount column.
const (
	MaxAmountIntegerDigits = 15
	MaxAmountScale         = 4
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// withinAmountPrecision reports whether d fits MaxAmountIntegerDigits
// integer digits and MaxAmountScale fractional digits. The exponent is
// checked first so a huge exponent is rejected without expanding it.
func withinAmountPrecision(d decimal.Decimal) bool {
	exp := int64(d.Exponent())
	if exp > MaxAmountIntegerDigits || exp < -MaxAmountScale {
		return false
	}
	return int64(d.NumDigits())+exp <= MaxAmountIntegerDigits
}

// checkAmount applies the amount rules and reports the first violation.
func checkAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !withinAmountPrecision(amount) {
		return fmt.Errorf("%w: at most %d integer and %d fractional digits", ErrInvalidAmount, MaxAmountIntegerDigits, MaxAmountScale)
	}
	return nil
}
