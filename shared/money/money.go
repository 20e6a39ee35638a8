// Package money keeps prices in integer minor units (halalas, cents) so nightly
// sums are exact. Values are rounded only when parsed from or formatted to decimals.
package money

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	minorPerUnit  = 100
	decimalPlaces = 2

	DefaultCurrency = "SAR"
)

var (
	ErrInvalidAmount   = errors.New("money: invalid amount")
	ErrInvalidCurrency = errors.New("money: invalid currency code")
)

// Amount is a monetary value in minor units.
type Amount int64

func FromMinor(minor int64) Amount {
	return Amount(minor)
}

// FromFloat rounds half away from zero to the nearest minor unit.
func FromFloat(value float64) Amount {
	return Amount(math.Round(value * minorPerUnit))
}

// Parse reads a decimal string such as "500", "500.5" or "500.50".
// More than two fractional digits is rejected rather than silently rounded.
func Parse(value string) (Amount, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, ErrInvalidAmount
	}

	negative := false
	if value[0] == '-' || value[0] == '+' {
		negative = value[0] == '-'
		value = value[1:]
	}

	whole, frac, hasFrac := strings.Cut(value, ".")
	if whole == "" && frac == "" {
		return 0, ErrInvalidAmount
	}

	if whole == "" {
		whole = "0"
	}

	if hasFrac && (frac == "" || len(frac) > decimalPlaces) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}

	for len(frac) < decimalPlaces {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}

	minor, err := strconv.ParseInt(frac, 10, 64)
	if err != nil || minor < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}

	total := units*minorPerUnit + minor
	if negative {
		total = -total
	}

	return Amount(total), nil
}

func MustParse(value string) Amount {
	amount, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return amount
}

func (a Amount) Minor() int64 {
	return int64(a)
}

func (a Amount) Float64() float64 {
	return float64(a) / minorPerUnit
}

func (a Amount) Add(other Amount) Amount {
	return a + other
}

func (a Amount) Multiply(times int) Amount {
	return a * Amount(times)
}

func (a Amount) IsPositive() bool {
	return a > 0
}

func (a Amount) IsNegative() bool {
	return a < 0
}

// String formats with exactly two decimals, e.g. "1500.00".
func (a Amount) String() string {
	sign := ""
	value := int64(a)

	if value < 0 {
		sign = "-"
		value = -value
	}

	return fmt.Sprintf("%s%d.%02d", sign, value/minorPerUnit, value%minorPerUnit)
}

// MarshalJSON writes the amount as a JSON number with two decimals.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts both JSON numbers and quoted decimal strings.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "null" {
		return nil
	}

	amount, err := Parse(raw)
	if err != nil {
		return err
	}

	*a = amount

	return nil
}

// UnmarshalText lets form and query decoders fill an Amount from a decimal string.
func (a *Amount) UnmarshalText(text []byte) error {
	amount, err := Parse(string(text))
	if err != nil {
		return err
	}

	*a = amount

	return nil
}

// Scan implements sql.Scanner for NUMERIC columns.
func (a *Amount) Scan(src any) error {
	switch value := src.(type) {
	case nil:
		*a = 0

		return nil
	case []byte:
		return a.scanString(string(value))
	case string:
		return a.scanString(value)
	case int64:
		*a = Amount(value * minorPerUnit)

		return nil
	case float64:
		*a = FromFloat(value)

		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidAmount, src)
	}
}

func (a *Amount) scanString(value string) error {
	// NUMERIC(12,2) always comes back with two decimals, but trim anything wider.
	if whole, frac, ok := strings.Cut(value, "."); ok && len(frac) > decimalPlaces {
		value = whole + "." + frac[:decimalPlaces]
	}

	amount, err := Parse(value)
	if err != nil {
		return err
	}

	*a = amount

	return nil
}

// Value implements driver.Valuer.
func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}

// NormalizeCurrency upper-cases an ISO-4217 code and falls back to DefaultCurrency.
func NormalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency, nil
	}

	if len(code) != 3 {
		return "", ErrInvalidCurrency
	}

	return code, nil
}
