// Package imageopt shrinks uploaded images before they are pushed to object storage.
package imageopt

//go:generate go run go.uber.org/mock/mockgen -source=./imageopt.go -destination=./mocks/imageopt_mock.go -package=mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"

	"stayhub/config"
	"stayhub/infras/otel"
	"stayhub/shared/constant"
)

const (
	defaultMaxDimension = 1600
	defaultQuality      = 82

	extJPEG = "jpg"
	extPNG  = "png"
)

var ErrUnsupportedImage = errors.New("unsupported image")

type Image struct {
	Data        []byte
	ContentType string
	Extension   string
	Width       int
	Height      int
}

type Optimizer interface {
	Optimize(ctx context.Context, src io.Reader, contentType string) (Image, error)
}

type optimizerImpl struct {
	maxDimension int
	quality      int
	otel         otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Optimizer {
	maxDimension := cfg.Image.MaxDimension
	if maxDimension <= 0 {
		maxDimension = defaultMaxDimension
	}

	quality := cfg.Image.JPEGQuality
	if quality <= 0 || quality > 100 {
		quality = defaultQuality
	}

	return &optimizerImpl{
		maxDimension: maxDimension,
		quality:      quality,
		otel:         otel,
	}
}

// Optimize decodes src, applies EXIF orientation, fits it inside the configured box and
// re-encodes it. PNG stays PNG to keep transparency; everything else becomes JPEG.
func (o *optimizerImpl) Optimize(ctx context.Context, src io.Reader, contentType string) (res Image, err error) {
	_, scope := o.otel.NewScope(ctx, constant.OtelImageScopeName, constant.OtelImageScopeName+".Optimize")
	defer scope.End()
	defer scope.TraceIfError(err)

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		log.Error().Err(err).Str("content_type", contentType).Msg("failed to decode image")

		return res, fmt.Errorf("%w: %w", ErrUnsupportedImage, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > o.maxDimension || bounds.Dy() > o.maxDimension {
		img = imaging.Fit(img, o.maxDimension, o.maxDimension, imaging.Lanczos)
	}

	format, options := imaging.JPEG, []imaging.EncodeOption{imaging.JPEGQuality(o.quality)}
	res.ContentType, res.Extension = constant.ContentTypeJPEG, extJPEG

	if contentType == constant.ContentTypePNG {
		format, options = imaging.PNG, []imaging.EncodeOption{imaging.PNGCompressionLevel(png.BestSpeed)}
		res.ContentType, res.Extension = constant.ContentTypePNG, extPNG
	}

	var buf bytes.Buffer
	if err = imaging.Encode(&buf, img, format, options...); err != nil {
		return res, fmt.Errorf("failed to encode image: %w", err)
	}

	res.Data = buf.Bytes()
	res.Width = img.Bounds().Dx()
	res.Height = img.Bounds().Dy()

	scope.SetAttributes(map[string]any{
		"image.width":  res.Width,
		"image.height": res.Height,
		"image.bytes":  len(res.Data),
	})

	return res, nil
}
