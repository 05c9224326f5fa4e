package core

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a monetary magnitude. Direction is carried by the transaction
// type, never by the sign. Decoding is lenient: JSON numbers and numeric
// strings are accepted and anything else (null, booleans, garbage) reads as zero.
type Amount struct {
	d decimal.Decimal
}

func NewAmount(f float64) Amount {
	return Amount{d: decimal.NewFromFloat(f)}
}

func AmountFromInt(i int64) Amount {
	return Amount{d: decimal.NewFromInt(i)}
}

// ParseAmount parses a user-supplied decimal such as "12.50".
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Amount{}, ErrInvalidAmount
	}
	return Amount{d: d}, nil
}

func (a Amount) Decimal() decimal.Decimal { return a.d }

func (a Amount) Add(b Amount) Amount { return Amount{d: a.d.Add(b.d)} }

func (a Amount) Sub(b Amount) Amount { return Amount{d: a.d.Sub(b.d)} }

func (a Amount) IsZero() bool { return a.d.IsZero() }

func (a Amount) IsNegative() bool { return a.d.IsNegative() }

func (a Amount) Cmp(b Amount) int { return a.d.Cmp(b.d) }

func (a Amount) Equal(b Amount) bool { return a.d.Equal(b.d) }

func (a Amount) Float64() float64 {
	f, _ := a.d.Float64()
	return f
}

func (a Amount) String() string { return a.d.String() }

// MarshalJSON writes a bare JSON number, which the API expects.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.d.String()), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	a.d = decimal.Zero
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}
	if d, err := decimal.NewFromString(raw); err == nil {
		a.d = d
	}
	return nil
}
