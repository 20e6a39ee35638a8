package media_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	s3Mocks "stayhub/infras/s3/mocks"
	"stayhub/shared/failure"
	"stayhub/shared/imageopt"
	optMocks "stayhub/shared/imageopt/mocks"
	"stayhub/shared/media"
)

func TestStore_Save(t *testing.T) {
	ctrl := gomock.NewController(t)
	optimizer := optMocks.NewMockOptimizer(ctrl)
	storage := s3Mocks.NewMockS3(ctrl)

	store := media.New(optimizer, storage)

	tests := []struct {
		name      string
		setupMock func()
		wantURL   string
		wantCode  int
		wantErr   bool
	}{
		{
			name: "optimised and uploaded",
			setupMock: func() {
				optimizer.EXPECT().Optimize(gomock.Any(), gomock.Any(), "image/png").
					Return(imageopt.Image{Data: []byte("img"), ContentType: "image/png", Extension: "png", Width: 10, Height: 10}, nil)
				storage.EXPECT().Upload(gomock.Any(), "property", gomock.Any(), "image/png", []byte("img")).
					DoAndReturn(func(_ context.Context, _, fileName, _ string, _ []byte) (string, error) {
						assert.True(t, strings.HasSuffix(fileName, ".png"))

						return "https://cdn.example.com/property/" + fileName, nil
					})
			},
		},
		{
			name: "unsupported image",
			setupMock: func() {
				optimizer.EXPECT().Optimize(gomock.Any(), gomock.Any(), "image/png").Return(imageopt.Image{}, imageopt.ErrUnsupportedImage)
			},
			wantCode: 400,
			wantErr:  true,
		},
		{
			name: "upload failure",
			setupMock: func() {
				optimizer.EXPECT().Optimize(gomock.Any(), gomock.Any(), "image/png").
					Return(imageopt.Image{Data: []byte("img"), ContentType: "image/jpeg", Extension: "jpg"}, nil)
				storage.EXPECT().Upload(gomock.Any(), "property", gomock.Any(), "image/jpeg", gomock.Any()).Return("", errors.New("s3 down"))
			},
			wantCode: 500,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			url, err := store.Save(context.Background(), "property", strings.NewReader("raw"), "image/png")

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Empty(t, url)

				return
			}

			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/property/"))
		})
	}
}

func TestStore_Remove(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := s3Mocks.NewMockS3(ctrl)

	store := media.New(optMocks.NewMockOptimizer(ctrl), storage)

	storage.EXPECT().ObjectNameFromURL("partner", "https://cdn.example.com/partner/a.jpg").Return("a.jpg")
	storage.EXPECT().Delete(gomock.Any(), "partner", "a.jpg").Return(errors.New("gone"))
	store.Remove(context.Background(), "partner", "https://cdn.example.com/partner/a.jpg")

	storage.EXPECT().ObjectNameFromURL("partner", "https://elsewhere.example.com/logo.png").Return("")
	store.Remove(context.Background(), "partner", "https://elsewhere.example.com/logo.png")

	store.Remove(context.Background(), "partner", "")
}
