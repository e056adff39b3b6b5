package analysis

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"flood-report-bot/internal/domain/entity"
)

// StubBackend детерминированная заглушка без сети для локального запуска
type StubBackend struct{}

func NewStubBackend() *StubBackend { return &StubBackend{} }

func (s *StubBackend) Name() string { return "Stub" }

// Generate возвращает корректный по схеме ответ, зависящий только от байтов фото
func (s *StubBackend) Generate(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	sum := sha256.Sum256(req.Data)

	out := map[string]any{
		"peopleCount":   int(sum[0] % 6),
		"animalCount":   int(sum[1] % 4),
		"hasVulnerable": sum[2]%2 == 0,
		"urgency":       entity.Urgencies[int(sum[3])%len(entity.Urgencies)],
		"reasoning":     fmt.Sprintf("stub assessment %x", sum[:4]),
		"description":   fmt.Sprintf("stubbed analysis of %d bytes (%s)", len(req.Data), req.MimeType),
	}

	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
