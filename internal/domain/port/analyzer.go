package port

import (
	"context"

	"flood-report-bot/internal/domain/entity"
)

// Analyzer интерфейс сервиса анализа фото
type Analyzer interface {
	// Analyze отправляет изображение во внешний сервис и возвращает проверенную оценку.
	// Ошибки имеют тип *entity.AnalysisError.
	Analyze(ctx context.Context, payload entity.ImagePayload) (*entity.AnalysisResult, error)
}
