package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stayhub/config"
	"stayhub/infras/otel/mocks"
	bookingMocks "stayhub/internal/domains/booking/mocks"
	bookingModel "stayhub/internal/domains/booking/model"
	pricingMocks "stayhub/internal/domains/pricing/mocks"
	"stayhub/internal/domains/pricing/model"
	"stayhub/internal/domains/pricing/model/dto"
	"stayhub/internal/domains/pricing/service"
	unitMocks "stayhub/internal/domains/unit/mocks"
	unitModel "stayhub/internal/domains/unit/model"
	"stayhub/internal/reservation"
	cacheMocks "stayhub/shared/cache/mocks"
	gDto "stayhub/shared/dto"
	"stayhub/shared/failure"
	"stayhub/shared/money"
)

type fixture struct {
	svc         service.Pricing
	repo        *pricingMocks.MockPricing
	bookingRepo *bookingMocks.MockBooking
	units       *unitMocks.MockResolver
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:        pricingMocks.NewMockPricing(ctrl),
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		units:       unitMocks.NewMockResolver(ctrl),
	}

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.bookingRepo, f.units, cfg, mockCache, mocks.NewOtel())

	return f
}

func amount(value string) *money.Amount {
	a := money.MustParse(value)

	return &a
}

func day(value string) time.Time {
	d, _ := reservation.ParseDate(value)

	return d
}

var chalet = unitModel.Unit{
	Type:     unitModel.TypeProperty,
	ID:       "prop-1",
	Name:     "Sea View Chalet",
	Price:    reservation.UnitPrice{BasePrice: money.MustParse("500")},
	Currency: "SAR",
	Active:   true,
}

func TestPricingService_Create(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name      string
		req       dto.CreateOverrideRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "single day",
			req:  dto.CreateOverrideRequest{UnitType: "property", UnitID: "prop-1", Date: "2025-03-02", Price: amount("800")},
			setupMock: func() {
				f.units.EXPECT().Resolve(gomock.Any(), unitModel.TypeProperty, "prop-1").Return(chalet, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, override model.Override) error {
					assert.Equal(t, "2025-03-02", reservation.DateKey(override.Date))
					assert.True(t, override.Available)

					return nil
				})
			},
		},
		{
			name: "date span",
			req:  dto.CreateOverrideRequest{UnitType: "property", UnitID: "prop-1", Date: "2025-03-01", EndDate: "2025-03-07", Price: amount("900")},
			setupMock: func() {
				f.units.EXPECT().Resolve(gomock.Any(), unitModel.TypeProperty, "prop-1").Return(chalet, nil)
				f.repo.EXPECT().InsertBulk(gomock.Any(), gomock.Len(7)).Return(nil)
			},
		},
		{
			name: "date already overridden",
			req:  dto.CreateOverrideRequest{UnitType: "property", UnitID: "prop-1", Date: "2025-03-02", Price: amount("800")},
			setupMock: func() {
				f.units.EXPECT().Resolve(gomock.Any(), unitModel.TypeProperty, "prop-1").Return(chalet, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23505"})
			},
			wantCode: 409,
		},
		{
			name: "open day without price",
			req:  dto.CreateOverrideRequest{UnitType: "property", UnitID: "prop-1", Date: "2025-03-02"},
			setupMock: func() {
				f.units.EXPECT().Resolve(gomock.Any(), unitModel.TypeProperty, "prop-1").Return(chalet, nil)
			},
			wantCode: 400,
		},
		{
			name: "unknown unit",
			req:  dto.CreateOverrideRequest{UnitType: "room", UnitID: "missing", Date: "2025-03-02", Price: amount("800")},
			setupMock: func() {
				f.units.EXPECT().Resolve(gomock.Any(), unitModel.TypeRoom, "missing").Return(unitModel.Unit{}, failure.NotFound("room not found"))
			},
			wantCode: 404,
		},
		{
			name: "repository error",
			req:  dto.CreateOverrideRequest{UnitType: "property", UnitID: "prop-1", Date: "2025-03-02", Price: amount("800")},
			setupMock: func() {
				f.units.EXPECT().Resolve(gomock.Any(), unitModel.TypeProperty, "prop-1").Return(chalet, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Create(context.Background(), tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestPricingService_Update(t *testing.T) {
	f := newFixture(t)

	open := true
	closedOverride := model.Override{ID: "o1", UnitType: "property", UnitID: "prop-1", Date: day("2025-03-02"), Available: false}

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(closedOverride, nil)

	err := f.svc.Update(context.Background(), dto.UpdateOverrideRequest{Available: &open}, "o1")
	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(closedOverride, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
		assert.Contains(t, fields, model.FieldPrice)
		assert.Contains(t, fields, model.FieldAvailable)

		return nil
	})

	err = f.svc.Update(context.Background(), dto.UpdateOverrideRequest{Available: &open, Price: amount("750")}, "o1")
	assert.NoError(t, err)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Override{}, nil)

	err = f.svc.Update(context.Background(), dto.UpdateOverrideRequest{Price: amount("750")}, "missing")
	require.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))

	time.Sleep(10 * time.Millisecond)
}

func TestPricingService_Delete(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	err := f.svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

	assert.NoError(t, f.svc.Delete(context.Background(), "o1"))

	time.Sleep(10 * time.Millisecond)
}

func TestPricingService_Quote(t *testing.T) {
	f := newFixture(t)

	stay := dto.StayRequest{
		UnitRequest: dto.UnitRequest{UnitType: "property", UnitID: "prop-1"},
		CheckIn:     "2025-03-01",
		CheckOut:    "2025-03-04",
	}

	f.units.EXPECT().Resolve(gomock.Any(), unitModel.TypeProperty, "prop-1").Return(chalet, nil)
	f.repo.EXPECT().GetByUnitAndRange(gomock.Any(), "property", "prop-1", day("2025-03-01"), day("2025-03-04")).
		Return([]model.Override{{Date: day("2025-03-02"), Price: amount("800"), Available: true}}, nil)

	res, err := f.svc.Quote(context.Background(), stay)
	require.NoError(t, err)

	assert.Equal(t, "SAR", res.Currency)
	assert.Equal(t, 3, res.Nights)
	assert.Equal(t, "1800.00", res.Total.String())
	assert.True(t, res.PerNight[1].UsedOverride)

	f.units.EXPECT().Resolve(gomock.Any(), unitModel.TypeProperty, "prop-1").Return(chalet, nil)
	f.repo.EXPECT().GetByUnitAndRange(gomock.Any(), "property", "prop-1", gomock.Any(), gomock.Any()).
		Return([]model.Override{{Date: day("2025-03-02"), Available: false}}, nil)

	_, err = f.svc.Quote(context.Background(), stay)
	require.Error(t, err)
	assert.Equal(t, 409, failure.GetCode(err))
	assert.Contains(t, err.Error(), "2025-03-02")

	reversed := stay
	reversed.CheckIn, reversed.CheckOut = stay.CheckOut, stay.CheckIn

	_, err = f.svc.Quote(context.Background(), reversed)
	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
}

func TestPricingService_Availability(t *testing.T) {
	f := newFixture(t)

	stay := dto.StayRequest{
		UnitRequest: dto.UnitRequest{UnitType: "property", UnitID: "prop-1"},
		CheckIn:     "2025-03-03",
		CheckOut:    "2025-03-06",
	}

	f.units.EXPECT().Resolve(gomock.Any(), unitModel.TypeProperty, "prop-1").Return(chalet, nil).Times(2)
	f.repo.EXPECT().GetByUnitAndRange(gomock.Any(), "property", "prop-1", gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

	f.bookingRepo.EXPECT().GetActiveByUnit(gomock.Any(), "property", "prop-1").Return([]bookingModel.Booking{
		{BookingNumber: "LP100001", CheckIn: day("2025-03-01"), CheckOut: day("2025-03-04"), Status: "confirmed"},
	}, nil)

	res, err := f.svc.Availability(context.Background(), stay)
	require.NoError(t, err)

	assert.False(t, res.Available)
	assert.Equal(t, reservation.ReasonBooked, res.Reason)
	require.NotNil(t, res.Conflict)
	assert.Equal(t, "2025-03-01", reservation.DateKey(res.Conflict.CheckIn))

	// Checking in on the previous guest's check-out day is fine.
	f.bookingRepo.EXPECT().GetActiveByUnit(gomock.Any(), "property", "prop-1").Return([]bookingModel.Booking{
		{BookingNumber: "LP100001", CheckIn: day("2025-03-01"), CheckOut: day("2025-03-03"), Status: "confirmed"},
	}, nil)

	res, err = f.svc.Availability(context.Background(), stay)
	require.NoError(t, err)
	assert.True(t, res.Available)
}

func TestPricingService_Availability_LoadError(t *testing.T) {
	f := newFixture(t)

	f.units.EXPECT().Resolve(gomock.Any(), unitModel.TypeProperty, "prop-1").Return(chalet, nil)
	f.repo.EXPECT().GetByUnitAndRange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	f.bookingRepo.EXPECT().GetActiveByUnit(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))

	_, err := f.svc.Availability(context.Background(), dto.StayRequest{
		UnitRequest: dto.UnitRequest{UnitType: "property", UnitID: "prop-1"},
		CheckIn:     "2025-03-03",
		CheckOut:    "2025-03-06",
	})
	require.Error(t, err)
	assert.Equal(t, 500, failure.GetCode(err))
}

func TestPricingService_Calendar(t *testing.T) {
	f := newFixture(t)

	f.units.EXPECT().Resolve(gomock.Any(), unitModel.TypeProperty, "prop-1").Return(chalet, nil)
	f.repo.EXPECT().GetByUnitAndRange(gomock.Any(), "property", "prop-1", day("2024-02-01"), day("2024-03-01")).Return([]model.Override{
		{Date: day("2024-02-05"), Price: amount("900"), DiscountPrice: amount("850"), Available: true},
		{Date: day("2024-02-20"), Available: false, Reason: "maintenance"},
	}, nil)
	f.bookingRepo.EXPECT().GetActiveByUnit(gomock.Any(), "property", "prop-1").Return([]bookingModel.Booking{
		{BookingNumber: "LP100001", CheckIn: day("2024-02-10"), CheckOut: day("2024-02-12"), Status: "pending"},
		{BookingNumber: "LP100002", CheckIn: day("2024-02-14"), CheckOut: day("2024-02-16"), Status: "cancelled"},
	}, nil)

	res, err := f.svc.Calendar(context.Background(), dto.CalendarRequest{
		UnitRequest: dto.UnitRequest{UnitType: "property", UnitID: "prop-1"},
		Month:       "2024-02",
	})
	require.NoError(t, err)
	require.Len(t, res.Days, 29)

	byDate := map[string]dto.CalendarDay{}
	for _, d := range res.Days {
		byDate[d.Date] = d
	}

	assert.Equal(t, "500.00", byDate["2024-02-01"].Price.String())
	assert.Equal(t, "850.00", byDate["2024-02-05"].Price.String())
	assert.True(t, byDate["2024-02-05"].UsedOverride)

	assert.False(t, byDate["2024-02-10"].Available)
	assert.Equal(t, reservation.ReasonBooked, byDate["2024-02-10"].Reason)
	assert.False(t, byDate["2024-02-11"].Available)
	assert.True(t, byDate["2024-02-12"].Available)

	assert.True(t, byDate["2024-02-14"].Available)

	assert.False(t, byDate["2024-02-20"].Available)
	assert.Equal(t, reservation.ReasonBlocked, byDate["2024-02-20"].Reason)
	assert.Nil(t, byDate["2024-02-20"].Price)
}
