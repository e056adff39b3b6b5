package port

import (
	"context"

	"flood-report-bot/internal/domain/entity"
)

// ReportSink получатель подтверждённых отчётов
type ReportSink interface {
	Submit(ctx context.Context, submission entity.Submission) error
}
