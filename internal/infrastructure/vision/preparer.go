//go:build !gocv
// +build !gocv

package vision

import (
	"bytes"
	"context"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	_ "golang.org/x/image/webp"

	"flood-report-bot/internal/domain/entity"
)

// Preparer уменьшает фото средствами imaging (сборка без OpenCV)
type Preparer struct {
	MaxSide     int // наибольшая сторона результата в пикселях
	JPEGQuality int
}

// NewPreparer создаёт подготовщик с ограничением по стороне
func NewPreparer(maxSide int) *Preparer {
	return &Preparer{
		MaxSide:     maxSide,
		JPEGQuality: 85,
	}
}

// Prepare декодирует JPEG/PNG/WEBP, учитывает EXIF-ориентацию и кодирует в JPEG
func (p *Preparer) Prepare(ctx context.Context, data []byte) (*entity.PreparedImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(ErrUndecodable, err.Error())
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, errors.Wrap(ErrUndecodable, "empty image")
	}
	if p.MaxSide > 0 && (bounds.Dx() > p.MaxSide || bounds.Dy() > p.MaxSide) {
		// Вписываем в квадрат MaxSide с сохранением пропорций
		img = imaging.Fit(img, p.MaxSide, p.MaxSide, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(p.JPEGQuality)); err != nil {
		return nil, errors.Wrap(err, "encode jpeg")
	}

	size := img.Bounds().Size()
	return &entity.PreparedImage{
		Data:     buf.Bytes(),
		MimeType: "image/jpeg",
		Width:    size.X,
		Height:   size.Y,
	}, nil
}

