//go:build gocv
// +build gocv

package vision

import (
	"context"
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"flood-report-bot/internal/domain/entity"
)

// Preparer уменьшает фото средствами OpenCV
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

// Prepare декодирует изображение, уменьшает и кодирует в JPEG
func (p *Preparer) Prepare(ctx context.Context, data []byte) (*entity.PreparedImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mat, err := decodeToMat(data)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	// Приводим изображение к стандартному размеру
	if p.MaxSide > 0 && (mat.Cols() > p.MaxSide || mat.Rows() > p.MaxSide) {
		scale := float64(p.MaxSide) / float64(maxInt(mat.Cols(), mat.Rows()))
		newW := int(float64(mat.Cols()) * scale)
		newH := int(float64(mat.Rows()) * scale)
		resized := gocv.NewMat()
		gocv.Resize(mat, &resized, image.Pt(newW, newH), 0, 0, gocv.InterpolationArea)
		mat.Close()
		mat = resized
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, mat, []int{int(gocv.IMWriteJpegQuality), p.JPEGQuality})
	if err != nil {
		return nil, errors.Wrap(err, "encode jpeg")
	}
	defer buf.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())

	return &entity.PreparedImage{
		Data:     out,
		MimeType: "image/jpeg",
		Width:    mat.Cols(),
		Height:   mat.Rows(),
	}, nil
}

// decodeToMat превращает байты изображения в gocv.Mat
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), ErrUndecodable
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
