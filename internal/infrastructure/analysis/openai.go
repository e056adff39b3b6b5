package analysis

import (
	"context"
	"encoding/base64"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// OpenAIBackend использует chat completions с JSON-схемой ответа
type OpenAIBackend struct {
	client *openai.Client
	model  string
}

// NewOpenAIBackend создаёт клиент OpenAI; пустой baseURL означает публичный API
func NewOpenAIBackend(apiKey, model, baseURL string) *OpenAIBackend {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIBackend{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (o *OpenAIBackend) Name() string {
	return "ChatGPT"
}

// Generate отправляет фото как data URL вместе с заданием
func (o *OpenAIBackend) Generate(ctx context.Context, req Request) (string, error) {
	imageURL := "data:" + req.MimeType + ";base64," + base64.StdEncoding.EncodeToString(req.Data)
	schema := openAIResponseSchema()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: req.Instruction,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    imageURL,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "flood_analysis",
				Schema: &schema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "openai chat completion")
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func openAIResponseSchema() jsonschema.Definition {
	props := make(map[string]jsonschema.Definition, len(responseFields))
	for _, f := range responseFields {
		switch f.Kind {
		case kindNumber:
			props[f.Name] = jsonschema.Definition{Type: jsonschema.Number, Description: f.Hint}
		case kindBoolean:
			props[f.Name] = jsonschema.Definition{Type: jsonschema.Boolean, Description: f.Hint}
		case kindUrgency:
			props[f.Name] = jsonschema.Definition{Type: jsonschema.String, Enum: urgencyValues()}
		default:
			props[f.Name] = jsonschema.Definition{Type: jsonschema.String, Description: f.Hint}
		}
	}
	return jsonschema.Definition{
		Type:                 jsonschema.Object,
		Properties:           props,
		Required:             requiredFieldNames(),
		AdditionalProperties: false,
	}
}
