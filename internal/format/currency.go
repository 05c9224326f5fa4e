// Package format turns raw values into display strings.
package format

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder is shown for values that cannot be formatted.
const Placeholder = "-"

var printer = message.NewPrinter(language.AmericanEnglish)

type decimaler interface {
	Decimal() decimal.Decimal
}

// Currency formats v as whole US dollars with digit grouping, e.g. "$1,000"
// or "-$1,235". Numbers, numeric strings, decimals and anything exposing
// Decimal() are accepted; nil, NaN, infinities and non-numeric input give
// Placeholder.
func Currency(v any) string {
	d, ok := toDecimal(v)
	if !ok {
		return Placeholder
	}

	rounded := d.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}

	var digits string
	if n := rounded.BigInt(); n.IsInt64() {
		digits = printer.Sprintf("%d", n.Int64())
	} else {
		digits = groupThousands(n.String())
	}
	return sign + "$" + digits
}

func toDecimal(v any) (decimal.Decimal, bool) {
	if v == nil {
		return decimal.Zero, false
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return decimal.Zero, false
	}

	switch x := v.(type) {
	case decimal.Decimal:
		return x, true
	case *decimal.Decimal:
		return *x, true
	case decimaler:
		return x.Decimal(), true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int32:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case uint:
		return fromString(strconv.FormatUint(uint64(x), 10))
	case uint32:
		return decimal.NewFromInt(int64(x)), true
	case uint64:
		return fromString(strconv.FormatUint(x, 10))
	case float32:
		return fromFloat(float64(x))
	case float64:
		return fromFloat(x)
	case *float64:
		return fromFloat(*x)
	case json.Number:
		return fromString(x.String())
	case string:
		return fromString(x)
	default:
		return decimal.Zero, false
	}
}

func fromFloat(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

func fromString(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// groupThousands inserts separators into a plain digit string.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
