package port

import (
	"context"
	"time"

	"flood-report-bot/internal/domain/entity"
)

// ReportRepository интерфейс хранилища отчётов, один отчёт на чат
type ReportRepository interface {
	// Get возвращает отчёт чата, создаёт пустой черновик если не найден
	Get(ctx context.Context, chatID int64) (*entity.Report, error)

	// Save сохраняет отчёт
	Save(ctx context.Context, report *entity.Report) error

	// EvictIdle удаляет отчёты, не менявшиеся с момента before, кроме находящихся в анализе
	EvictIdle(ctx context.Context, before time.Time) (int, error)

	// Count возвращает число активных отчётов
	Count(ctx context.Context) (int, error)
}
