package factory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-coursechat-be/pkg/llm"
)

func TestOpenAIProviderCallsConfiguredBaseURL(t *testing.T) {
	var gotPath string
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "pong"}},
			},
		})
	}))
	defer server.Close()

	provider, err := NewLLMProvider("openai", "gpt-4o", server.URL, "test-key")
	require.NoError(t, err)

	answer, err := provider.Chat(context.Background(), []llm.Message{
		{Role: "user", Content: "ping"},
	})
	require.NoError(t, err)

	assert.Equal(t, "pong", answer)
	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestUnsupportedProvider(t *testing.T) {
	_, err := NewLLMProvider("bard", "some-model", "", "")
	assert.Error(t, err)
}
