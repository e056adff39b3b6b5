package analysis

import (
	"encoding/base64"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"

	"flood-report-bot/internal/domain/entity"
)

const defaultMimeType = "image/jpeg"

// DecodePayload отбрасывает заголовок data URL и возвращает тип и исходные байты.
// Строка без заголовка считается чистым base64.
func DecodePayload(payload entity.ImagePayload) (string, []byte, error) {
	raw := string(payload)
	mimeType := payload.MimeType()
	if _, data, ok := strings.Cut(raw, ","); ok {
		raw = data
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil, errors.New("image payload is empty")
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", nil, errors.Wrap(err, "decode image payload")
	}

	if mimeType == "" {
		mimeType = detectImageType(data)
	}
	return mimeType, data, nil
}

func detectImageType(data []byte) string {
	mt := mimetype.Detect(data)
	if strings.HasPrefix(mt.String(), "image/") {
		return mt.String()
	}
	return defaultMimeType
}
