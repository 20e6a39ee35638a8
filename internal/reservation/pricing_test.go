package reservation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/reservation"
	"stayhub/shared/money"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := reservation.ParseDate(value)
	require.NoError(t, err)

	return parsed
}

func amount(value string) *money.Amount {
	parsed := money.MustParse(value)

	return &parsed
}

func prices(quote reservation.Quote) []money.Amount {
	res := make([]money.Amount, len(quote.PerNight))
	for i, night := range quote.PerNight {
		res[i] = night.Price
	}

	return res
}

func TestCalculatePrice(t *testing.T) {
	base := reservation.UnitPrice{BasePrice: money.MustParse("500")}

	tests := []struct {
		name         string
		unit         reservation.UnitPrice
		overrides    reservation.Overrides
		checkIn      string
		checkOut     string
		wantNights   int
		wantPrices   []money.Amount
		wantTotal    money.Amount
		wantOverride []bool
	}{
		{
			name:         "base price only",
			unit:         base,
			checkIn:      "2024-03-01",
			checkOut:     "2024-03-04",
			wantNights:   3,
			wantPrices:   []money.Amount{50000, 50000, 50000},
			wantTotal:    money.MustParse("1500"),
			wantOverride: []bool{false, false, false},
		},
		{
			name: "override discount below override price",
			unit: base,
			overrides: reservation.Overrides{
				"2024-03-02": {Price: amount("700"), DiscountPrice: amount("600")},
			},
			checkIn:      "2024-03-01",
			checkOut:     "2024-03-04",
			wantNights:   3,
			wantPrices:   []money.Amount{50000, 60000, 50000},
			wantTotal:    money.MustParse("1600"),
			wantOverride: []bool{false, true, false},
		},
		{
			name: "override discount not lower is ignored",
			unit: base,
			overrides: reservation.Overrides{
				"2024-03-01": {Price: amount("700"), DiscountPrice: amount("800")},
			},
			checkIn:      "2024-03-01",
			checkOut:     "2024-03-02",
			wantNights:   1,
			wantPrices:   []money.Amount{70000},
			wantTotal:    money.MustParse("700"),
			wantOverride: []bool{true},
		},
		{
			name:         "unit discount applies when lower",
			unit:         reservation.UnitPrice{BasePrice: money.MustParse("500"), DiscountPrice: amount("450.50")},
			checkIn:      "2024-03-01",
			checkOut:     "2024-03-03",
			wantNights:   2,
			wantPrices:   []money.Amount{45050, 45050},
			wantTotal:    money.MustParse("901"),
			wantOverride: []bool{false, false},
		},
		{
			name:         "unit discount ignored when not lower",
			unit:         reservation.UnitPrice{BasePrice: money.MustParse("500"), DiscountPrice: amount("500")},
			checkIn:      "2024-03-01",
			checkOut:     "2024-03-02",
			wantNights:   1,
			wantPrices:   []money.Amount{50000},
			wantTotal:    money.MustParse("500"),
			wantOverride: []bool{false},
		},
		{
			name: "open override without price falls back to unit price",
			unit: reservation.UnitPrice{BasePrice: money.MustParse("500"), DiscountPrice: amount("400")},
			overrides: reservation.Overrides{
				"2024-03-01": {Reason: "note only"},
			},
			checkIn:      "2024-03-01",
			checkOut:     "2024-03-02",
			wantNights:   1,
			wantPrices:   []money.Amount{40000},
			wantTotal:    money.MustParse("400"),
			wantOverride: []bool{false},
		},
		{
			name: "override outside range is ignored",
			unit: base,
			overrides: reservation.Overrides{
				"2024-03-04": {Blocked: true},
				"2024-02-29": {Price: amount("1")},
			},
			checkIn:      "2024-03-01",
			checkOut:     "2024-03-04",
			wantNights:   3,
			wantPrices:   []money.Amount{50000, 50000, 50000},
			wantTotal:    money.MustParse("1500"),
			wantOverride: []bool{false, false, false},
		},
		{
			name:         "range across month and leap day",
			unit:         base,
			checkIn:      "2024-02-28",
			checkOut:     "2024-03-02",
			wantNights:   3,
			wantPrices:   []money.Amount{50000, 50000, 50000},
			wantTotal:    money.MustParse("1500"),
			wantOverride: []bool{false, false, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := reservation.CalculatePrice(tt.unit, tt.overrides, day(t, tt.checkIn), day(t, tt.checkOut))
			require.NoError(t, err)

			assert.Equal(t, tt.wantNights, quote.Nights)
			assert.Len(t, quote.PerNight, quote.Nights)
			assert.Equal(t, tt.wantPrices, prices(quote))
			assert.Equal(t, tt.wantTotal, quote.Total)
			assert.Equal(t, tt.checkIn, quote.CheckIn)
			assert.Equal(t, tt.checkOut, quote.CheckOut)

			for i, night := range quote.PerNight {
				assert.Equal(t, tt.wantOverride[i], night.UsedOverride, night.Date)
			}
		})
	}
}

func TestCalculatePrice_Blocked(t *testing.T) {
	unit := reservation.UnitPrice{BasePrice: money.MustParse("500")}
	overrides := reservation.Overrides{
		"2024-03-02": {Price: amount("700"), DiscountPrice: amount("600")},
		"2024-03-03": {Blocked: true, Reason: "maintenance"},
	}

	_, err := reservation.CalculatePrice(unit, overrides, day(t, "2024-03-01"), day(t, "2024-03-04"))
	require.Error(t, err)
	assert.ErrorIs(t, err, reservation.ErrUnavailable)

	var unavailable *reservation.UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, reservation.ReasonBlocked, unavailable.Reason)
	assert.Equal(t, []string{"2024-03-03"}, unavailable.BlockedDates)
	assert.Contains(t, err.Error(), "blocked by owner")
}

func TestCalculatePrice_FullyBlocked(t *testing.T) {
	unit := reservation.UnitPrice{BasePrice: money.MustParse("500")}
	overrides := reservation.Overrides{
		"2024-03-01": {Blocked: true},
		"2024-03-02": {Blocked: true, Price: amount("900")},
	}

	_, err := reservation.CalculatePrice(unit, overrides, day(t, "2024-03-01"), day(t, "2024-03-03"))

	var unavailable *reservation.UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, []string{"2024-03-01", "2024-03-02"}, unavailable.BlockedDates)
}

func TestCalculatePrice_InvalidInput(t *testing.T) {
	unit := reservation.UnitPrice{BasePrice: money.MustParse("500")}

	_, err := reservation.CalculatePrice(unit, nil, day(t, "2024-03-01"), day(t, "2024-03-01"))
	assert.ErrorIs(t, err, reservation.ErrInvalidRange, "zero nights")

	_, err = reservation.CalculatePrice(unit, nil, day(t, "2024-03-04"), day(t, "2024-03-01"))
	assert.ErrorIs(t, err, reservation.ErrInvalidRange, "reversed")

	_, err = reservation.CalculatePrice(unit, nil, time.Time{}, day(t, "2024-03-01"))
	assert.ErrorIs(t, err, reservation.ErrInvalidRange, "zero time")

	_, err = reservation.CalculatePrice(reservation.UnitPrice{}, nil, day(t, "2024-03-01"), day(t, "2024-03-02"))
	assert.ErrorIs(t, err, reservation.ErrInvalidUnitPrice)
}

func TestCalculatePrice_IgnoresTimeOfDay(t *testing.T) {
	riyadh := time.FixedZone("AST", 3*60*60)
	unit := reservation.UnitPrice{BasePrice: money.MustParse("500")}
	overrides := reservation.Overrides{
		"2024-03-01": {Price: amount("650")},
	}

	checkIn := time.Date(2024, 3, 1, 23, 30, 0, 0, riyadh)
	checkOut := time.Date(2024, 3, 3, 1, 0, 0, 0, riyadh)

	quote, err := reservation.CalculatePrice(unit, overrides, checkIn, checkOut)
	require.NoError(t, err)

	assert.Equal(t, 2, quote.Nights)
	assert.Equal(t, "2024-03-01", quote.PerNight[0].Date)
	assert.Equal(t, money.MustParse("650"), quote.PerNight[0].Price)
	assert.Equal(t, money.MustParse("1150"), quote.Total)
}

func TestCalculateRangePrice_NormalizesLiteralRange(t *testing.T) {
	unit := reservation.UnitPrice{BasePrice: money.MustParse("500")}

	tests := []struct {
		name       string
		stay       reservation.Range
		wantNights int
		wantErr    error
	}{
		{
			name: "late check-in and early check-out",
			stay: reservation.Range{
				CheckIn:  time.Date(2024, 3, 1, 22, 0, 0, 0, time.UTC),
				CheckOut: time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC),
			},
			wantNights: 1,
		},
		{
			name: "same calendar day",
			stay: reservation.Range{
				CheckIn:  time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
				CheckOut: time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC),
			},
			wantErr: reservation.ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := reservation.CalculateRangePrice(unit, nil, tt.stay)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantNights, quote.Nights)
			assert.Len(t, quote.PerNight, tt.wantNights)
			assert.Equal(t, "2024-03-01", quote.CheckIn)
			assert.Equal(t, money.MustParse("500"), quote.Total)
		})
	}
}

func TestCalculatePrice_Pure(t *testing.T) {
	unit := reservation.UnitPrice{BasePrice: money.MustParse("320.75"), DiscountPrice: amount("299.99")}
	overrides := reservation.Overrides{
		"2024-12-31": {Price: amount("999"), DiscountPrice: amount("850")},
	}

	first, err := reservation.CalculatePrice(unit, overrides, day(t, "2024-12-29"), day(t, "2025-01-02"))
	require.NoError(t, err)

	second, err := reservation.CalculatePrice(unit, overrides, day(t, "2024-12-29"), day(t, "2025-01-02"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, overrides, 1)
}

func TestCalculatePrice_NoOverridesTotalProperty(t *testing.T) {
	units := []reservation.UnitPrice{
		{BasePrice: money.MustParse("500")},
		{BasePrice: money.MustParse("500"), DiscountPrice: amount("420")},
		{BasePrice: money.MustParse("99.95")},
	}

	start := day(t, "2024-01-01")

	for _, unit := range units {
		for nights := 1; nights <= 45; nights++ {
			quote, err := reservation.CalculatePrice(unit, nil, start, start.AddDate(0, 0, nights))
			require.NoError(t, err)

			assert.Equal(t, nights, quote.Nights)
			assert.Len(t, quote.PerNight, nights)
			assert.Equal(t, unit.Nightly().Multiply(nights), quote.Total)
		}
	}
}
