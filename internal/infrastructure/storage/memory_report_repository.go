package storage

import (
	"context"
	"sync"
	"time"

	"flood-report-bot/internal/domain/entity"
	"flood-report-bot/internal/domain/port"
)

// MemoryReportRepository in-memory хранилище отчётов
type MemoryReportRepository struct {
	mu      sync.RWMutex
	reports map[int64]*entity.Report
}

// NewMemoryReportRepository создаёт новое in-memory хранилище
func NewMemoryReportRepository() *MemoryReportRepository {
	return &MemoryReportRepository{
		reports: make(map[int64]*entity.Report),
	}
}

// Get возвращает отчёт чата, создаёт новый черновик если не найден
func (r *MemoryReportRepository) Get(ctx context.Context, chatID int64) (*entity.Report, error) {
	r.mu.RLock()
	report, exists := r.reports[chatID]
	r.mu.RUnlock()

	if exists {
		return report, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Другой вызов мог успеть создать отчёт
	if report, exists := r.reports[chatID]; exists {
		return report, nil
	}
	report = entity.NewReport(chatID)
	r.reports[chatID] = report

	return report, nil
}

// Save сохраняет отчёт
func (r *MemoryReportRepository) Save(ctx context.Context, report *entity.Report) error {
	r.mu.Lock()
	r.reports[report.ChatID] = report
	r.mu.Unlock()

	return nil
}

// EvictIdle удаляет давно не менявшиеся отчёты
func (r *MemoryReportRepository) EvictIdle(ctx context.Context, before time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for chatID, report := range r.reports {
		if report.Status == entity.StatusAnalyzing {
			continue
		}
		if report.UpdatedAt.Before(before) {
			delete(r.reports, chatID)
			evicted++
		}
	}

	return evicted, nil
}

// Count возвращает число отчётов в памяти
func (r *MemoryReportRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.reports), nil
}

// Проверка реализации интерфейса
var _ port.ReportRepository = (*MemoryReportRepository)(nil)
