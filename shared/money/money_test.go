package money_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/shared/money"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    money.Amount
		wantErr bool
	}{
		{name: "whole number", input: "500", want: 50000},
		{name: "one decimal", input: "500.5", want: 50050},
		{name: "two decimals", input: "499.99", want: 49999},
		{name: "leading dot", input: ".25", want: 25},
		{name: "negative", input: "-12.30", want: -1230},
		{name: "surrounding spaces", input: " 7.00 ", want: 700},
		{name: "empty", input: "", wantErr: true},
		{name: "three decimals", input: "1.234", wantErr: true},
		{name: "trailing dot", input: "1.", wantErr: true},
		{name: "letters", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.Parse(tt.input)

			if tt.wantErr {
				assert.ErrorIs(t, err, money.ErrInvalidAmount)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAmount_String(t *testing.T) {
	assert.Equal(t, "1500.00", money.FromMinor(150000).String())
	assert.Equal(t, "0.05", money.FromMinor(5).String())
	assert.Equal(t, "-3.10", money.FromMinor(-310).String())
	assert.Equal(t, "600.00", money.FromFloat(600).String())
}

func TestAmount_Arithmetic(t *testing.T) {
	base := money.MustParse("500")

	assert.Equal(t, money.MustParse("1500"), base.Multiply(3))
	assert.Equal(t, money.MustParse("1100"), base.Add(money.MustParse("600")))
	assert.True(t, base.IsPositive())
	assert.False(t, base.IsNegative())
	assert.InDelta(t, 500.0, base.Float64(), 0.0001)
}

func TestAmount_JSON(t *testing.T) {
	type payload struct {
		Price    money.Amount  `json:"price"`
		Discount *money.Amount `json:"discount,omitempty"`
	}

	encoded, err := json.Marshal(payload{Price: money.MustParse("700.5")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":700.50}`, string(encoded))

	var decoded payload
	require.NoError(t, json.Unmarshal([]byte(`{"price":"600","discount":550.25}`), &decoded))
	assert.Equal(t, money.MustParse("600"), decoded.Price)
	require.NotNil(t, decoded.Discount)
	assert.Equal(t, money.MustParse("550.25"), *decoded.Discount)

	assert.Error(t, json.Unmarshal([]byte(`{"price":1.234}`), &decoded))
}

func TestAmount_ScanValue(t *testing.T) {
	var amount money.Amount

	require.NoError(t, amount.Scan([]byte("1250.50")))
	assert.Equal(t, money.FromMinor(125050), amount)

	require.NoError(t, amount.Scan(int64(3)))
	assert.Equal(t, money.FromMinor(300), amount)

	require.NoError(t, amount.Scan(float64(19.99)))
	assert.Equal(t, money.FromMinor(1999), amount)

	require.NoError(t, amount.Scan(nil))
	assert.Equal(t, money.Amount(0), amount)

	assert.Error(t, amount.Scan(true))

	value, err := money.FromMinor(42).Value()
	require.NoError(t, err)
	assert.Equal(t, "0.42", value)
}

func TestNormalizeCurrency(t *testing.T) {
	code, err := money.NormalizeCurrency("")
	require.NoError(t, err)
	assert.Equal(t, money.DefaultCurrency, code)

	code, err = money.NormalizeCurrency("usd")
	require.NoError(t, err)
	assert.Equal(t, "USD", code)

	_, err = money.NormalizeCurrency("riyal")
	assert.ErrorIs(t, err, money.ErrInvalidCurrency)
}
