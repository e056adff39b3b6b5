package analysis

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/pkg/errors"

	"flood-report-bot/internal/domain/entity"
)

var (
	errEmptyResponse     = errors.New("service returned an empty response")
	errMalformedResponse = errors.New("service response does not match schema")
)

// ParseResult проверяет ответ сервиса и собирает AnalysisResult.
// Любое отклонение от схемы даёт errMalformedResponse.
func ParseResult(text string) (*entity.AnalysisResult, error) {
	body := extractJSON(strings.TrimSpace(text))
	if body == "" {
		return nil, errEmptyResponse
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, errors.Wrapf(errMalformedResponse, "decode object: %v", err)
	}
	for _, name := range requiredFieldNames() {
		if v, ok := raw[name]; !ok || string(v) == "null" {
			return nil, errors.Wrapf(errMalformedResponse, "missing field %q", name)
		}
	}

	var (
		result entity.AnalysisResult
		err    error
	)
	if result.PeopleCount, err = decodeCount(raw, "peopleCount"); err != nil {
		return nil, err
	}
	if result.AnimalCount, err = decodeCount(raw, "animalCount"); err != nil {
		return nil, err
	}
	if err := decodeField(raw, "hasVulnerable", &result.HasVulnerable); err != nil {
		return nil, err
	}
	var urgency string
	if err := decodeField(raw, "urgency", &urgency); err != nil {
		return nil, err
	}
	result.Urgency = entity.Urgency(urgency)
	if !result.Urgency.Valid() {
		return nil, errors.Wrapf(errMalformedResponse, "urgency %q is not allowed", urgency)
	}
	if err := decodeField(raw, "reasoning", &result.Reasoning); err != nil {
		return nil, err
	}
	if err := decodeField(raw, "description", &result.Description); err != nil {
		return nil, err
	}

	return &result, nil
}

func decodeField(raw map[string]json.RawMessage, name string, dst any) error {
	if err := json.Unmarshal(raw[name], dst); err != nil {
		return errors.Wrapf(errMalformedResponse, "field %q: %v", name, err)
	}
	return nil
}

// decodeCount принимает только неотрицательные числа, дробные округляет
func decodeCount(raw map[string]json.RawMessage, name string) (int, error) {
	var v float64
	if err := decodeField(raw, name, &v); err != nil {
		return 0, err
	}
	if v < 0 || v > math.MaxInt32 {
		return 0, errors.Wrapf(errMalformedResponse, "field %q out of range: %v", name, v)
	}
	return int(math.Round(v)), nil
}

// extractJSON достаёт объект из markdown-блока, если весь ответ обёрнут в него.
// Обратные кавычки внутри строковых полей JSON не трогаются.
func extractJSON(response string) string {
	if !strings.HasPrefix(response, "```") {
		return response
	}
	rest := response[3:]
	end := strings.LastIndex(rest, "```")
	if end == -1 {
		return response
	}
	content := strings.TrimSpace(rest[:end])
	content = strings.TrimPrefix(content, "json")
	return strings.TrimSpace(content)
}
