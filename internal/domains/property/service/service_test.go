package service_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stayhub/config"
	"stayhub/infras/otel/mocks"
	propertyMocks "stayhub/internal/domains/property/mocks"
	"stayhub/internal/domains/property/model"
	"stayhub/internal/domains/property/model/dto"
	"stayhub/internal/domains/property/service"
	cacheMocks "stayhub/shared/cache/mocks"
	"stayhub/shared/constant"
	gDto "stayhub/shared/dto"
	"stayhub/shared/failure"
	mediaMocks "stayhub/shared/media/mocks"
	"stayhub/shared/money"
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func imageUpload() (*multipart.FileHeader, multipart.File) {
	header := &multipart.FileHeader{
		Filename: "front.png",
		Header:   textproto.MIMEHeader{constant.RequestHeaderContentType: {"image/png"}},
		Size:     3,
	}

	return header, memFile{bytes.NewReader([]byte("png"))}
}

func newService(t *testing.T) (service.Property, *propertyMocks.MockProperty, *cacheMocks.MockRedisCache, *mediaMocks.MockStore) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := propertyMocks.NewMockProperty(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockMedia := mediaMocks.NewMockStore(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.Currency = "SAR"

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel(), mockMedia), mockRepo, mockCache, mockMedia
}

func TestPropertyService_Create(t *testing.T) {
	svc, mockRepo, _, mockMedia := newService(t)

	header, file := imageUpload()

	tests := []struct {
		name      string
		req       dto.CreatePropertyRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation with image",
			req: dto.CreatePropertyRequest{
				Name:      "Sea View Chalet",
				Kind:      model.KindChalet,
				BasePrice: money.MustParse("500"),
				Image:     header,
				ImageFile: file,
			},
			setupMock: func() {
				mockMedia.EXPECT().Save(gomock.Any(), model.EntityName, file, "image/png").Return("https://cdn.example.com/property/a.png", nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p model.Property) error {
					assert.Equal(t, "SAR", p.Currency)
					assert.Equal(t, "https://cdn.example.com/property/a.png", p.Image)
					assert.True(t, p.Active)
					assert.Equal(t, "test-user-id", p.CreatedBy)

					return nil
				})
			},
		},
		{
			name: "repository error removes uploaded image",
			req: dto.CreatePropertyRequest{
				Name:      "Sea View Chalet",
				Kind:      model.KindChalet,
				BasePrice: money.MustParse("500"),
				Image:     header,
				ImageFile: file,
			},
			setupMock: func() {
				mockMedia.EXPECT().Save(gomock.Any(), model.EntityName, file, "image/png").Return("https://cdn.example.com/property/b.png", nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
				mockMedia.EXPECT().Remove(gomock.Any(), model.EntityName, "https://cdn.example.com/property/b.png")
			},
			wantErr:  true,
			wantCode: 500,
		},
		{
			name: "invalid currency",
			req: dto.CreatePropertyRequest{
				Name:      "Desert Resort",
				Kind:      model.KindResort,
				BasePrice: money.MustParse("900"),
				Currency:  "RIYAL",
			},
			setupMock: func() {
				mockMedia.EXPECT().Remove(gomock.Any(), model.EntityName, "")
			},
			wantErr:  true,
			wantCode: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Create(ctx, tt.req)

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

func TestPropertyService_Get(t *testing.T) {
	svc, mockRepo, mockCache, _ := newService(t)

	discount := money.MustParse("450")

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		want      dto.PropertyResponse
	}{
		{
			name: "found in database",
			id:   "prop-1",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), "property:get:prop-1", gomock.Any()).Return(errors.New("cache miss"))
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Property{
					ID:            "prop-1",
					Name:          "Sea View Chalet",
					Kind:          model.KindChalet,
					BasePrice:     money.MustParse("500"),
					DiscountPrice: &discount,
					Currency:      "SAR",
					Active:        true,
				}, nil)
			},
			want: dto.PropertyResponse{
				ID:            "prop-1",
				Name:          "Sea View Chalet",
				Kind:          model.KindChalet,
				BasePrice:     money.MustParse("500"),
				DiscountPrice: &discount,
				NightlyPrice:  money.MustParse("450"),
				Currency:      "SAR",
				Active:        true,
			},
		},
		{
			name: "not found",
			id:   "missing",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), "property:get:missing", gomock.Any()).Return(errors.New("cache miss"))
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Property{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), tt.id)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, 404, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want.ID, res.ID)
			assert.Equal(t, tt.want.NightlyPrice, res.NightlyPrice)
			assert.Equal(t, tt.want.DiscountPrice, res.DiscountPrice)
			assert.Equal(t, tt.want.Currency, res.Currency)
		})
	}
}

func TestPropertyService_GetAll(t *testing.T) {
	svc, mockRepo, mockCache, _ := newService(t)

	params := gDto.QueryParams{Page: 1, Limit: 10}

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(12, nil)
	mockRepo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Property{
		{ID: "p1", BasePrice: money.MustParse("300")},
		{ID: "p2", BasePrice: money.MustParse("400")},
	}, nil)

	res, err := svc.GetAll(context.Background(), params, gDto.FilterGroup{})

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Len(t, res.Properties, 2)
	assert.Equal(t, 12, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
}

func TestPropertyService_Update(t *testing.T) {
	svc, mockRepo, _, mockMedia := newService(t)

	header, file := imageUpload()
	capacity := 6

	tests := []struct {
		name      string
		req       dto.UpdatePropertyRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "replaces image and removes the old one",
			req:  dto.UpdatePropertyRequest{Capacity: &capacity, Currency: "usd", Image: header, ImageFile: file},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Property{ID: "prop-1", Image: "https://cdn.example.com/property/old.png"}, nil)
				mockMedia.EXPECT().Save(gomock.Any(), model.EntityName, file, "image/png").Return("https://cdn.example.com/property/new.png", nil)
				mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
					assert.Equal(t, "USD", fields[model.FieldCurrency])
					assert.Equal(t, &capacity, fields[model.FieldCapacity])
					assert.Equal(t, "https://cdn.example.com/property/new.png", fields[model.FieldImage])
					assert.Equal(t, "test-user-id", fields[constant.FieldModifiedBy])

					return nil
				})
				mockMedia.EXPECT().Remove(gomock.Any(), model.EntityName, "https://cdn.example.com/property/old.png")
			},
		},
		{
			name: "not found",
			req:  dto.UpdatePropertyRequest{Name: "x"},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Property{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Update(ctx, tt.req, "prop-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPropertyService_Delete(t *testing.T) {
	svc, mockRepo, _, mockMedia := newService(t)

	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Property{ID: "prop-1", Image: "https://cdn.example.com/property/a.png"}, nil)
	mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
	mockMedia.EXPECT().Remove(gomock.Any(), model.EntityName, "https://cdn.example.com/property/a.png")

	err := svc.Delete(context.Background(), "prop-1")

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
}
