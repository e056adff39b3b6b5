package analysis

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

const DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiSchema struct {
	Type       string                  `json:"type"`
	Enum       []string                `json:"enum,omitempty"`
	Properties map[string]geminiSchema `json:"properties,omitempty"`
	Required   []string                `json:"required,omitempty"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string        `json:"response_mime_type,omitempty"`
	ResponseSchema   *geminiSchema `json:"response_schema,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generation_config"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text,omitempty"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GeminiBackend обращается к REST API generateContent
type GeminiBackend struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// NewGeminiBackend создаёт клиент Gemini; пустой baseURL означает публичный API
func NewGeminiBackend(apiKey, model, baseURL string) *GeminiBackend {
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}
	return &GeminiBackend{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

func (g *GeminiBackend) Name() string {
	return "Gemini"
}

// Generate отправляет фото с заданием и схемой ответа
func (g *GeminiBackend) Generate(ctx context.Context, req Request) (string, error) {
	body := geminiRequest{
		Contents: []geminiContent{
			{
				Role: "user",
				Parts: []geminiPart{
					{InlineData: &geminiInlineData{
						MimeType: req.MimeType,
						Data:     base64.StdEncoding.EncodeToString(req.Data),
					}},
					{Text: req.Instruction},
				},
			},
		},
		GenerationConfig: geminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   geminiResponseSchema(),
		},
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", errors.Wrap(err, "marshal request")
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrap(err, "create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.http.Do(httpReq)
	if err != nil {
		return "", errors.Wrap(err, "send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "read response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}
	if len(bytes.TrimSpace(respBody)) == 0 {
		return "", nil
	}

	var gr geminiResponse
	if err := json.Unmarshal(respBody, &gr); err != nil {
		return "", errors.Wrap(err, "parse response envelope")
	}
	if len(gr.Candidates) == 0 {
		return "", nil
	}

	var text strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	return text.String(), nil
}

func geminiResponseSchema() *geminiSchema {
	props := make(map[string]geminiSchema, len(responseFields))
	for _, f := range responseFields {
		switch f.Kind {
		case kindNumber:
			props[f.Name] = geminiSchema{Type: "NUMBER"}
		case kindBoolean:
			props[f.Name] = geminiSchema{Type: "BOOLEAN"}
		case kindUrgency:
			props[f.Name] = geminiSchema{Type: "STRING", Enum: urgencyValues()}
		default:
			props[f.Name] = geminiSchema{Type: "STRING"}
		}
	}
	return &geminiSchema{
		Type:       "OBJECT",
		Properties: props,
		Required:   requiredFieldNames(),
	}
}
