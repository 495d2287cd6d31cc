package models

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a decimal quantity read from or written to the record store.
//
// Decoding never fails: null, missing, empty or non-numeric input yields an
// invalid Amount whose Decimal value is zero. This keeps a single malformed
// record from breaking a whole collection read.
type Amount struct {
	value decimal.Decimal
	valid bool
}

// NewAmount wraps a decimal value.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{value: d, valid: true}
}

// AmountFromInt builds an Amount from a whole number.
func AmountFromInt(v int64) Amount {
	return NewAmount(decimal.NewFromInt(v))
}

// AmountFromFloat builds an Amount from a float. Prefer ParseAmount for user input.
func AmountFromFloat(v float64) Amount {
	return NewAmount(decimal.NewFromFloat(v))
}

// ParseAmount parses a decimal string strictly.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Amount{}, err
	}
	return NewAmount(d), nil
}

// CoerceAmount is the lenient counterpart of ParseAmount.
func CoerceAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		return Amount{}
	}
	return a
}

// Decimal returns the numeric value, zero when the amount is invalid.
func (a Amount) Decimal() decimal.Decimal {
	if !a.valid {
		return decimal.Zero
	}
	return a.value
}

// Valid reports whether the amount held a number when it was decoded.
func (a Amount) Valid() bool {
	return a.valid
}

// IsPositive reports whether the amount is a number strictly greater than zero.
func (a Amount) IsPositive() bool {
	return a.valid && a.value.IsPositive()
}

// IsNegative reports whether the amount is a number strictly below zero.
func (a Amount) IsNegative() bool {
	return a.valid && a.value.IsNegative()
}

// Sub returns a-b treating invalid operands as zero.
func (a Amount) Sub(b Amount) Amount {
	return NewAmount(a.Decimal().Sub(b.Decimal()))
}

// Mul returns a*b treating invalid operands as zero.
func (a Amount) Mul(b Amount) Amount {
	return NewAmount(a.Decimal().Mul(b.Decimal()))
}

func (a Amount) String() string {
	if !a.valid {
		return ""
	}
	return a.value.String()
}

// MarshalJSON writes the amount as a bare JSON number, or null when invalid.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.valid {
		return []byte("null"), nil
	}
	return []byte(a.value.String()), nil
}

// UnmarshalJSON accepts numbers and numeric strings. Anything else decodes to
// an invalid amount without reporting an error.
func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = s
	}

	*a = CoerceAmount(raw)
	return nil
}
