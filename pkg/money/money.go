// Package money renders integer minor-unit amounts for display.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	SGD = "SGD"
	VND = "VND"
	USD = "USD"
)

// exponents holds the ISO 4217 minor-unit exponent per supported currency.
var exponents = map[string]int32{
	SGD: 2,
	VND: 0,
	USD: 2,
}

// Supported reports whether code is a currency loans may be issued in.
func Supported(code string) bool {
	_, ok := exponents[code]
	return ok
}

// Currencies returns the supported codes as a space separated list.
func Currencies() string { return strings.Join([]string{SGD, USD, VND}, " ") }

// Exponent returns the minor-unit exponent for code; unknown codes use 2.
func Exponent(code string) int32 {
	if e, ok := exponents[code]; ok {
		return e
	}
	return 2
}

// Format renders minor units as a fixed-point major-unit string,
// e.g. Format(123456, "SGD") == "1234.56".
func Format(minor int64, code string) string {
	exp := Exponent(code)
	return decimal.New(minor, -exp).StringFixed(exp)
}
