//go:build !gocv
// +build !gocv

package vision

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{B: uint8(x % 255), G: uint8(y % 255), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPreparer_DownscalesLargeImage(t *testing.T) {
	p := NewPreparer(100)

	out, err := p.Prepare(context.Background(), encodePNG(t, 400, 200))
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", out.MimeType)
	require.Equal(t, 100, out.Width)
	require.Equal(t, 50, out.Height)

	decoded, err := jpeg.Decode(bytes.NewReader(out.Data))
	require.NoError(t, err)
	require.Equal(t, 100, decoded.Bounds().Dx())
}

func TestPreparer_KeepsSmallImageSize(t *testing.T) {
	p := NewPreparer(1600)

	out, err := p.Prepare(context.Background(), encodePNG(t, 64, 48))
	require.NoError(t, err)
	require.Equal(t, 64, out.Width)
	require.Equal(t, 48, out.Height)
}

func TestPreparer_RejectsGarbage(t *testing.T) {
	p := NewPreparer(1600)

	_, err := p.Prepare(context.Background(), []byte("definitely not an image"))
	require.True(t, errors.Is(err, ErrUndecodable))
}
