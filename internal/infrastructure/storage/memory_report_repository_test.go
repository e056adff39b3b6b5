package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"flood-report-bot/internal/domain/entity"
)

func TestMemoryReportRepository_GetCreatesDraft(t *testing.T) {
	repo := NewMemoryReportRepository()
	ctx := context.Background()

	report, err := repo.Get(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StatusDraft, report.Status)
	require.Equal(t, int64(10), report.ChatID)

	again, err := repo.Get(ctx, 10)
	require.NoError(t, err)
	require.Same(t, report, again)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestMemoryReportRepository_EvictIdle(t *testing.T) {
	repo := NewMemoryReportRepository()
	ctx := context.Background()
	old := time.Now().Add(-2 * time.Hour)

	idle := entity.NewReport(1)
	idle.UpdatedAt = old
	require.NoError(t, repo.Save(ctx, idle))

	analyzing := entity.NewReport(2)
	analyzing.Status = entity.StatusAnalyzing
	analyzing.UpdatedAt = old
	require.NoError(t, repo.Save(ctx, analyzing))

	fresh := entity.NewReport(3)
	require.NoError(t, repo.Save(ctx, fresh))

	evicted, err := repo.EvictIdle(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Equal(t, 1, evicted)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}
