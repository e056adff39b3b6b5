package analysis

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"

	"flood-report-bot/internal/domain/entity"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestDecodePayload_StripsDataURLPrefix(t *testing.T) {
	payload := entity.NewImagePayload("image/webp", []byte("raw-bytes"))

	mimeType, data, err := DecodePayload(payload)
	require.NoError(t, err)
	require.Equal(t, "image/webp", mimeType)
	require.Equal(t, []byte("raw-bytes"), data)
}

func TestDecodePayload_BareBase64(t *testing.T) {
	payload := entity.ImagePayload(base64.StdEncoding.EncodeToString(pngHeader))

	mimeType, data, err := DecodePayload(payload)
	require.NoError(t, err)
	require.Equal(t, "image/png", mimeType)
	require.Equal(t, pngHeader, data)
}

func TestDecodePayload_UnknownContentFallsBackToJPEG(t *testing.T) {
	payload := entity.ImagePayload(base64.StdEncoding.EncodeToString([]byte("not an image")))

	mimeType, _, err := DecodePayload(payload)
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", mimeType)
}

func TestDecodePayload_Invalid(t *testing.T) {
	_, _, err := DecodePayload("data:image/jpeg;base64,")
	require.Error(t, err)

	_, _, err = DecodePayload("data:image/jpeg;base64,%%%")
	require.Error(t, err)
}
