package analysis

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"flood-report-bot/internal/domain/entity"
)

func TestOpenAIBackend_Generate(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","model":"gpt-4o-mini","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":` + jsonString(validBody) + `}}]}`))
	}))
	defer server.Close()

	backend := NewOpenAIBackend("secret", "gpt-4o-mini", server.URL+"/v1")
	client := NewClient(backend, 0, entity.LangEnglish)

	result, err := client.Analyze(context.Background(), entity.NewImagePayload("image/jpeg", []byte("jpeg")))
	require.NoError(t, err)
	require.Equal(t, entity.UrgencyCritical, result.Urgency)

	format := captured["response_format"].(map[string]any)
	require.Equal(t, "json_schema", format["type"])
	schema := format["json_schema"].(map[string]any)["schema"].(map[string]any)
	require.Len(t, schema["required"], len(responseFields))

	messages := captured["messages"].([]any)
	content := messages[0].(map[string]any)["content"].([]any)
	image := content[1].(map[string]any)["image_url"].(map[string]any)
	require.Equal(t, "data:image/jpeg;base64,anBlZw==", image["url"])
}

func TestOpenAIBackend_AuthErrorIsServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	client := NewClient(NewOpenAIBackend("bad", "gpt-4o-mini", server.URL+"/v1"), 0, entity.LangEnglish)
	_, err := client.Analyze(context.Background(), entity.NewImagePayload("image/jpeg", []byte("jpeg")))
	require.Equal(t, entity.CodeServiceError, entity.CodeOf(err))
}
