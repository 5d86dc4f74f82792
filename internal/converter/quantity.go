package converter

import (
	"math"
	"strings"

	"github.com/highlinecommerce/packiyo-po-converter/internal/types"
	"github.com/shopspring/decimal"
)

// NotStocked is the text Shopify writes for a SKU that is not stocked at a
// location.
const NotStocked = "not stocked"

// maxIntDigits is the number of decimal digits in math.MaxInt64.
const maxIntDigits = 19

var (
	minQuantity = decimal.NewFromInt(math.MinInt64)
	maxQuantity = decimal.NewFromInt(math.MaxInt64)
)

// CoerceQuantity converts an on-hand cell to an integer quantity.
//
// Integers and decimals are accepted (optional sign, "." as decimal point,
// optional exponent, surrounding whitespace ignored). Decimals are truncated
// toward zero and negative values are kept. Numbers whose integer part does
// not fit in an int64 get ReasonOutOfRange. Anything else coerces to zero,
// with Reason saying why.
func CoerceQuantity(raw string) types.Quantity {
	value := strings.TrimSpace(raw)
	if value == "" {
		return types.Quantity{Reason: types.ReasonEmpty}
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		if strings.EqualFold(value, NotStocked) {
			return types.Quantity{Reason: types.ReasonNotStocked}
		}
		return types.Quantity{Reason: types.ReasonNotNumeric}
	}

	if d.IsZero() {
		return types.Quantity{Value: 0, Parsed: true, Reason: types.ReasonNone}
	}

	// Integer digits, counted without rescaling.
	intDigits := int64(d.NumDigits()) + int64(d.Exponent())
	if intDigits <= 0 {
		return types.Quantity{Value: 0, Parsed: true, Reason: types.ReasonNone}
	}
	if intDigits > maxIntDigits {
		return types.Quantity{Reason: types.ReasonOutOfRange}
	}

	whole := d.Truncate(0)
	if whole.LessThan(minQuantity) || whole.GreaterThan(maxQuantity) {
		return types.Quantity{Reason: types.ReasonOutOfRange}
	}

	return types.Quantity{Value: whole.IntPart(), Parsed: true, Reason: types.ReasonNone}
}

// IsNumeric reports whether raw parses as a number. Out-of-range numbers
// are numbers too; they fail later, in aggregation.
func IsNumeric(raw string) bool {
	q := CoerceQuantity(raw)
	return q.Parsed || q.Reason == types.ReasonOutOfRange
}

// addQuantity returns a+b, or false if the sum overflows an int64.
func addQuantity(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}
