package port

import (
	"context"

	"flood-report-bot/internal/domain/entity"
)

// ImagePreparer интерфейс подготовки фото перед анализом
type ImagePreparer interface {
	// Prepare декодирует изображение, уменьшает его и кодирует заново
	Prepare(ctx context.Context, data []byte) (*entity.PreparedImage, error)
}
