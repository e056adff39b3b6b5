package app

import (
	"context"

	"github.com/apex/log"
	"github.com/gabriel-vasile/mimetype"

	"flood-report-bot/internal/domain/entity"
	"flood-report-bot/internal/domain/port"
)

// DefaultMaxImageBytes мягкое ограничение размера фото
const DefaultMaxImageBytes = 10 * 1024 * 1024

var acceptedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ImageIntake проверяет присланный файл и готовит его к анализу
type ImageIntake struct {
	preparer port.ImagePreparer
	maxBytes int
}

// NewImageIntake создаёт приёмник; preparer может быть nil, тогда байты не меняются
func NewImageIntake(preparer port.ImagePreparer, maxBytes int) *ImageIntake {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	return &ImageIntake{
		preparer: preparer,
		maxBytes: maxBytes,
	}
}

// Accept проверяет размер и тип файла и возвращает data URL.
// Ошибки имеют тип *entity.InputError.
func (i *ImageIntake) Accept(ctx context.Context, data []byte) (entity.ImagePayload, error) {
	if len(data) == 0 {
		return "", &entity.InputError{Code: entity.CodeNoImageSelected}
	}
	if len(data) > i.maxBytes {
		return "", &entity.InputError{Code: entity.CodeImageTooLarge}
	}

	mimeType := mimetype.Detect(data).String()
	if !acceptedImageTypes[mimeType] {
		return "", &entity.InputError{Code: entity.CodeUnsupportedImageType}
	}

	if i.preparer == nil {
		return entity.NewImagePayload(mimeType, data), nil
	}

	prepared, err := i.preparer.Prepare(ctx, data)
	if err != nil {
		log.WithError(err).WithField("mime_type", mimeType).Warn("image preparation failed")
		return "", &entity.InputError{Code: entity.CodeUnsupportedImageType}
	}
	log.WithFields(log.Fields{
		"mime_type": mimeType,
		"in_bytes":  len(data),
		"out_bytes": len(prepared.Data),
		"width":     prepared.Width,
		"height":    prepared.Height,
	}).Debug("image prepared")

	return entity.NewImagePayload(prepared.MimeType, prepared.Data), nil
}
