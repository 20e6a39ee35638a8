package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/domains/pricing/model"
	"stayhub/internal/domains/pricing/model/dto"
	"stayhub/internal/reservation"
	"stayhub/shared/money"
	"stayhub/shared/timezone"
)

func amount(value string) *money.Amount {
	a := money.MustParse(value)

	return &a
}

func TestCreateOverrideRequest_ToModels(t *testing.T) {
	closed := false

	tests := []struct {
		name     string
		req      dto.CreateOverrideRequest
		wantDays []string
		wantErr  error
		wantOpen bool
	}{
		{
			name:     "single day",
			req:      dto.CreateOverrideRequest{UnitType: "room", UnitID: "room-1", Date: "2025-03-02", Price: amount("800")},
			wantDays: []string{"2025-03-02"},
			wantOpen: true,
		},
		{
			name:     "inclusive end date",
			req:      dto.CreateOverrideRequest{UnitType: "room", UnitID: "room-1", Date: "2025-02-27", EndDate: "2025-03-01", Price: amount("800")},
			wantDays: []string{"2025-02-27", "2025-02-28", "2025-03-01"},
			wantOpen: true,
		},
		{
			name:     "closed day needs no price",
			req:      dto.CreateOverrideRequest{UnitType: "property", UnitID: "prop-1", Date: "2025-03-02", Available: &closed, Reason: "maintenance"},
			wantDays: []string{"2025-03-02"},
		},
		{
			name:    "open day without price",
			req:     dto.CreateOverrideRequest{UnitType: "room", UnitID: "room-1", Date: "2025-03-02"},
			wantErr: dto.ErrPriceRequired,
		},
		{
			name:    "discount not lower than price",
			req:     dto.CreateOverrideRequest{UnitType: "room", UnitID: "room-1", Date: "2025-03-02", Price: amount("500"), DiscountPrice: amount("500")},
			wantErr: dto.ErrDiscountTooHigh,
		},
		{
			name:    "end before start",
			req:     dto.CreateOverrideRequest{UnitType: "room", UnitID: "room-1", Date: "2025-03-02", EndDate: "2025-03-01", Price: amount("800")},
			wantErr: dto.ErrEndBeforeStart,
		},
		{
			name:    "span too long",
			req:     dto.CreateOverrideRequest{UnitType: "room", UnitID: "room-1", Date: "2025-01-01", EndDate: "2026-06-01", Price: amount("800")},
			wantErr: dto.ErrOverrideSpan,
		},
		{
			name:    "malformed date",
			req:     dto.CreateOverrideRequest{UnitType: "room", UnitID: "room-1", Date: "02/03/2025", Price: amount("800")},
			wantErr: reservation.ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overrides, err := tt.req.ToModels("admin")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			require.Len(t, overrides, len(tt.wantDays))

			for i, override := range overrides {
				assert.Equal(t, tt.wantDays[i], reservation.DateKey(override.Date))
				assert.Equal(t, tt.wantOpen, override.Available)
				assert.Equal(t, "admin", override.CreatedBy)
				assert.NotEmpty(t, override.ID)
			}
		})
	}
}

func TestUpdateOverrideRequest_Merge(t *testing.T) {
	closed := false
	reason := "owner stay"

	current := model.Override{ID: "o1", Price: amount("800"), Available: true}

	merged := (&dto.UpdateOverrideRequest{Available: &closed, Reason: &reason}).Merge(current)

	assert.False(t, merged.Available)
	assert.Equal(t, "owner stay", merged.Reason)
	assert.Equal(t, "800.00", merged.Price.String())
	assert.NoError(t, dto.CheckPrice(merged.Price, merged.DiscountPrice, merged.Available))
}

func TestCalendarRequest_MonthRange(t *testing.T) {
	req := dto.CalendarRequest{Month: "2024-02"}

	month, err := req.MonthRange()
	require.NoError(t, err)
	assert.Equal(t, 29, month.Nights())

	req.Month = "2024-13"
	_, err = req.MonthRange()
	assert.Error(t, err)

	req.Month = ""
	month, err = req.MonthRange()
	require.NoError(t, err)
	assert.Equal(t, timezone.Today().Format("2006-01"), req.Month)
	assert.Equal(t, 1, month.CheckIn.Day())
}
