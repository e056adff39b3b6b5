package analysis

import (
	"context"
	"time"

	"github.com/apex/log"
	"github.com/pkg/errors"

	"flood-report-bot/internal/domain/entity"
	"flood-report-bot/internal/domain/port"
)

// Request данные одного запроса к модели
type Request struct {
	MimeType    string
	Data        []byte
	Instruction string
}

// Backend транспорт к конкретной модели. Возвращает сырой текст ответа.
type Backend interface {
	Generate(ctx context.Context, req Request) (string, error)
	Name() string
}

// Client проверяет контракт с сервисом анализа поверх Backend
type Client struct {
	backend  Backend
	timeout  time.Duration
	language entity.Language
}

// NewClient создаёт клиент; timeout 0 отключает собственное ограничение по времени
func NewClient(backend Backend, timeout time.Duration, language entity.Language) *Client {
	return &Client{
		backend:  backend,
		timeout:  timeout,
		language: language,
	}
}

// Analyze отправляет фото в сервис. Каждый вызов заново обращается к сервису, повторов нет.
func (c *Client) Analyze(ctx context.Context, payload entity.ImagePayload) (*entity.AnalysisResult, error) {
	logger := log.WithField("backend", c.backend.Name())

	mimeType, data, err := DecodePayload(payload)
	if err != nil {
		logger.WithError(err).Warn("invalid image payload")
		return nil, &entity.AnalysisError{Code: entity.CodeServiceError, Err: err}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	text, err := c.backend.Generate(ctx, Request{
		MimeType:    mimeType,
		Data:        data,
		Instruction: Instruction(c.language),
	})
	if err != nil {
		logger.WithError(err).Error("analysis request failed")
		return nil, &entity.AnalysisError{Code: entity.CodeServiceError, Err: err}
	}

	result, err := ParseResult(text)
	switch {
	case errors.Is(err, errEmptyResponse):
		logger.Warn("analysis returned empty body")
		return nil, &entity.AnalysisError{Code: entity.CodeEmptyResponse, Err: err}
	case err != nil:
		logger.WithError(err).WithField("body", truncate(text, 512)).Warn("malformed analysis response")
		return nil, &entity.AnalysisError{Code: entity.CodeMalformedResponse, Err: err}
	}

	logger.WithFields(log.Fields{
		"urgency":      result.Urgency,
		"people_count": result.PeopleCount,
		"animal_count": result.AnimalCount,
	}).Info("analysis completed")
	return result, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// Проверка реализации интерфейса
var _ port.Analyzer = (*Client)(nil)
