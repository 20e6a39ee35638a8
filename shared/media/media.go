// Package media stores user-uploaded images: optimise, name, upload, and clean up.
package media

//go:generate go run go.uber.org/mock/mockgen -source=./media.go -destination=./mocks/media_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"stayhub/infras/s3"
	"stayhub/shared/constant"
	"stayhub/shared/failure"
	"stayhub/shared/imageopt"
)

type Store interface {
	// Save optimises the image and uploads it under directory, returning its public URL.
	Save(ctx context.Context, directory string, file io.Reader, contentType string) (string, error)
	// Remove deletes an object previously returned by Save. Foreign URLs are ignored.
	Remove(ctx context.Context, directory, url string)
}

type storeImpl struct {
	optimizer imageopt.Optimizer
	s3        s3.S3
}

func New(optimizer imageopt.Optimizer, s3 s3.S3) Store {
	return &storeImpl{
		optimizer: optimizer,
		s3:        s3,
	}
}

func (m *storeImpl) Save(ctx context.Context, directory string, file io.Reader, contentType string) (string, error) {
	img, err := m.optimizer.Optimize(ctx, file, contentType)
	if err != nil {
		if errors.Is(err, imageopt.ErrUnsupportedImage) {
			return constant.Empty, failure.BadRequestFromString("image must be a valid JPEG or PNG file") // nolint:wrapcheck
		}

		return constant.Empty, fmt.Errorf("failed to optimise image: %w", err)
	}

	fileName := fmt.Sprintf("%s.%s", uuid.NewString(), img.Extension)

	url, err := m.s3.Upload(ctx, directory, fileName, img.ContentType, img.Data)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	log.Debug().Str("directory", directory).Str("file", fileName).Int("width", img.Width).Int("height", img.Height).Msg("image stored")

	return url, nil
}

func (m *storeImpl) Remove(ctx context.Context, directory, url string) {
	if url == constant.Empty {
		return
	}

	objectName := m.s3.ObjectNameFromURL(directory, url)
	if objectName == constant.Empty {
		return
	}

	if err := m.s3.Delete(ctx, directory, objectName); err != nil {
		log.Error().Err(err).Str("url", url).Msg("failed to remove image")
	}
}
