package sink

import (
	"context"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	"github.com/stretchr/testify/require"

	"flood-report-bot/internal/domain/entity"
)

func TestLogSink_Submit(t *testing.T) {
	handler := memory.New()
	logger := &log.Logger{Handler: handler, Level: log.InfoLevel}

	s := NewLogSink(logger)
	err := s.Submit(context.Background(), entity.Submission{
		ReportID:    "r-1",
		ChatID:      42,
		Image:       entity.NewImagePayload("image/jpeg", []byte("jpeg")),
		Location:    &entity.GeoLocation{Latitude: 52, Longitude: 13, Accuracy: 5},
		Analysis:    entity.AnalysisResult{Urgency: entity.UrgencyHigh},
		PeopleCount: 4,
		SubmittedAt: time.Now(),
	})
	require.NoError(t, err)

	require.Len(t, handler.Entries, 1)
	entry := handler.Entries[0]
	require.Equal(t, "flood report submitted", entry.Message)
	require.Equal(t, "r-1", entry.Fields.Get("report_id"))
	require.Equal(t, 4, entry.Fields.Get("people_count"))
	require.Equal(t, "image/jpeg", entry.Fields.Get("image_type"))
	require.Equal(t, 52.0, entry.Fields.Get("latitude"))
}
