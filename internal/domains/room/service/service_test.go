package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stayhub/config"
	"stayhub/infras/otel/mocks"
	propertyMocks "stayhub/internal/domains/property/mocks"
	roomMocks "stayhub/internal/domains/room/mocks"
	"stayhub/internal/domains/room/model"
	"stayhub/internal/domains/room/model/dto"
	"stayhub/internal/domains/room/service"
	cacheMocks "stayhub/shared/cache/mocks"
	"stayhub/shared/constant"
	gDto "stayhub/shared/dto"
	"stayhub/shared/failure"
	mediaMocks "stayhub/shared/media/mocks"
	"stayhub/shared/money"
)

func TestRoomService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockPropertyRepo := propertyMocks.NewMockProperty(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockMedia := mediaMocks.NewMockStore(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.Currency = "SAR"

	svc := service.New(mockRepo, mockPropertyRepo, cfg, mockCache, mocks.NewOtel(), mockMedia)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	req := dto.CreateRoomRequest{
		PropertyID: "7b0c8f3e-3d0f-4c1e-9d59-3f7d7b1f8a10",
		Name:       "Deluxe King",
		Capacity:   2,
		BasePrice:  money.MustParse("350"),
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			setupMock: func() {
				mockPropertyRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, room model.Room) error {
					assert.Equal(t, req.PropertyID, room.PropertyID)
					assert.Equal(t, "SAR", room.Currency)
					assert.Equal(t, money.MustParse("350"), room.UnitPrice().Nightly())

					return nil
				})
			},
		},
		{
			name: "property does not exist",
			setupMock: func() {
				mockPropertyRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "property lookup error",
			setupMock: func() {
				mockPropertyRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("database error"))
			},
			wantErr:  true,
			wantCode: 500,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockPropertyRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
				mockMedia.EXPECT().Remove(gomock.Any(), model.EntityName, "")
			},
			wantErr:  true,
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Create(ctx, req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_GetAll_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, propertyMocks.NewMockProperty(ctrl), cfg, mockCache, mocks.NewOtel(), mediaMocks.NewMockStore(ctrl))

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ string, dest any) error {
		res, ok := dest.(*dto.GetRoomsResponse)
		require.True(t, ok)

		res.Rooms = []dto.RoomResponse{{ID: "room-1"}}
		res.TotalData = 1
		res.TotalPage = 1

		return nil
	})

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
	require.NoError(t, err)

	assert.Len(t, res.Rooms, 1)
	assert.Equal(t, "room-1", res.Rooms[0].ID)
}

func TestRoomService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockMedia := mediaMocks.NewMockStore(ctrl)

	svc := service.New(mockRepo, propertyMocks.NewMockProperty(ctrl), &config.Config{}, mockCache, mocks.NewOtel(), mockMedia)

	mockCache.EXPECT().Delete(gomock.Any(), "room:get:room-1").Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "room-1"}, nil)
	mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
	mockMedia.EXPECT().Remove(gomock.Any(), model.EntityName, "")

	err := svc.Delete(context.Background(), "room-1")

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)

	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

	err = svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}
