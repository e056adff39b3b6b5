package sink

import (
	"context"

	"github.com/apex/log"

	"flood-report-bot/internal/domain/entity"
	"flood-report-bot/internal/domain/port"
)

// LogSink записывает подтверждённый отчёт в лог. Сетевой отправки нет.
type LogSink struct {
	logger log.Interface
}

func NewLogSink(logger log.Interface) *LogSink {
	if logger == nil {
		logger = log.Log
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Submit(ctx context.Context, sub entity.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fields := log.Fields{
		"report_id":      sub.ReportID,
		"chat_id":        sub.ChatID,
		"image_type":     sub.Image.MimeType(),
		"image_bytes":    sub.Image.Size(),
		"people_count":   sub.PeopleCount,
		"animal_count":   sub.AnimalCount,
		"has_vulnerable": sub.Analysis.HasVulnerable,
		"urgency":        sub.Analysis.Urgency,
		"note":           sub.Note,
		"submitted_at":   sub.SubmittedAt.UTC(),
	}
	if sub.Location != nil {
		fields["latitude"] = sub.Location.Latitude
		fields["longitude"] = sub.Location.Longitude
		fields["accuracy_m"] = sub.Location.Accuracy
	}
	s.logger.WithFields(fields).Info("flood report submitted")
	return nil
}

var _ port.ReportSink = (*LogSink)(nil)
