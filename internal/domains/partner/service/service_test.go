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
	partnerMocks "stayhub/internal/domains/partner/mocks"
	"stayhub/internal/domains/partner/model"
	"stayhub/internal/domains/partner/model/dto"
	"stayhub/internal/domains/partner/service"
	cacheMocks "stayhub/shared/cache/mocks"
	"stayhub/shared/constant"
	gDto "stayhub/shared/dto"
	"stayhub/shared/failure"
	mediaMocks "stayhub/shared/media/mocks"
)

const logoURL = "https://cdn.stayhub.test/partner/logo.png"

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func logoUpload() (*multipart.FileHeader, multipart.File) {
	header := &multipart.FileHeader{
		Filename: "logo.png",
		Header:   textproto.MIMEHeader{constant.RequestHeaderContentType: {"image/png"}},
		Size:     3,
	}

	return header, memFile{bytes.NewReader([]byte("png"))}
}

func newService(t *testing.T) (service.Partner, *partnerMocks.MockPartner, *cacheMocks.MockRedisCache, *mediaMocks.MockStore) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := partnerMocks.NewMockPartner(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockMedia := mediaMocks.NewMockStore(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel(), mockMedia), mockRepo, mockCache, mockMedia
}

func TestPartnerService_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *partnerMocks.MockPartner, store *mediaMocks.MockStore)
		wantCode  int
	}{
		{
			name: "successful creation",
			setupMock: func(repo *partnerMocks.MockPartner, store *mediaMocks.MockStore) {
				store.EXPECT().Save(gomock.Any(), model.EntityName, gomock.Any(), "image/png").Return(logoURL, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, partner model.Partner) error {
					assert.Equal(t, "Red Sea Tours", partner.Name)
					assert.Equal(t, logoURL, partner.Logo)
					assert.True(t, partner.Active)
					assert.Equal(t, "test-user-id", partner.CreatedBy)

					return nil
				})
			},
		},
		{
			name: "invalid image",
			setupMock: func(_ *partnerMocks.MockPartner, store *mediaMocks.MockStore) {
				store.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", failure.BadRequestFromString("image must be a valid JPEG or PNG file"))
			},
			wantCode: 400,
		},
		{
			name: "repository error removes the uploaded logo",
			setupMock: func(repo *partnerMocks.MockPartner, store *mediaMocks.MockStore) {
				store.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(logoURL, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
				store.EXPECT().Remove(gomock.Any(), model.EntityName, logoURL)
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, store := newService(t)
			tt.setupMock(repo, store)

			header, file := logoUpload()
			req := dto.CreatePartnerRequest{Name: "Red Sea Tours", Logo: header, LogoFile: file}

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Create(ctx, req)

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

func TestPartnerService_GetAll(t *testing.T) {
	svc, repo, cache, _ := newService(t)

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Partner{
		{ID: "p1", Name: "Red Sea Tours", SortOrder: 1},
		{ID: "p2", Name: "Desert Camps", SortOrder: 2},
	}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 1}, gDto.FilterGroup{})
	require.NoError(t, err)

	assert.Len(t, res.Partners, 2)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Equal(t, "Desert Camps", res.Partners[1].Name)
}

func TestPartnerService_Update(t *testing.T) {
	svc, repo, _, store := newService(t)

	sortOrder := 3
	header, file := logoUpload()

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Partner{ID: "p1", Logo: "https://cdn.stayhub.test/partner/old.png"}, nil)
	store.EXPECT().Save(gomock.Any(), model.EntityName, gomock.Any(), "image/png").Return(logoURL, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
		assert.Equal(t, logoURL, fields[model.FieldLogo])
		assert.Equal(t, &sortOrder, fields[model.FieldSortOrder])
		assert.NotContains(t, fields, model.FieldName)

		return nil
	})
	store.EXPECT().Remove(gomock.Any(), model.EntityName, "https://cdn.stayhub.test/partner/old.png")

	err := svc.Update(context.Background(), dto.UpdatePartnerRequest{SortOrder: &sortOrder, Logo: header, LogoFile: file}, "p1")
	require.NoError(t, err)

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Partner{}, nil)

	err = svc.Update(context.Background(), dto.UpdatePartnerRequest{Name: "New"}, "missing")
	require.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestPartnerService_Delete(t *testing.T) {
	svc, repo, _, store := newService(t)

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Partner{ID: "p1", Logo: logoURL}, nil)
	repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
	store.EXPECT().Remove(gomock.Any(), model.EntityName, logoURL)

	err := svc.Delete(context.Background(), "p1")

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
}
