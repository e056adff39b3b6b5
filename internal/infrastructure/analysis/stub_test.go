package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"flood-report-bot/internal/domain/entity"
)

func TestStubBackend_Deterministic(t *testing.T) {
	client := NewClient(NewStubBackend(), 0, entity.LangEnglish)
	payload := entity.NewImagePayload("image/jpeg", []byte("flooded street"))

	first, err := client.Analyze(context.Background(), payload)
	require.NoError(t, err)
	second, err := client.Analyze(context.Background(), payload)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.True(t, first.Urgency.Valid())
	require.GreaterOrEqual(t, first.PeopleCount, 0)
}
