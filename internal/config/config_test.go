package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLLMBaseURLResolvesPerProvider(t *testing.T) {
	tests := []struct {
		name     string
		cfg      AIConfig
		expected string
	}{
		{
			name: "openai with defaults falls back to the public endpoint",
			cfg: AIConfig{
				LLMProvider:   "openai",
				OllamaBaseURL: "http://localhost:11434",
				OpenAIBaseURL: "",
			},
			expected: "",
		},
		{
			name: "openai with an explicit router",
			cfg: AIConfig{
				LLMProvider:   "openai",
				OllamaBaseURL: "http://localhost:11434",
				OpenAIBaseURL: "https://router.internal/v1",
			},
			expected: "https://router.internal/v1",
		},
		{
			name: "ollama keeps its own URL",
			cfg: AIConfig{
				LLMProvider:   "ollama",
				OllamaBaseURL: "http://localhost:11434",
			},
			expected: "http://localhost:11434",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.LLMBaseURL())
		})
	}
}

func TestLoadDefaultsOpenAIBaseURLEmpty(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OLLAMA_BASE_URL", "http://localhost:11434")
	t.Setenv("OPENAI_BASE_URL", "")

	cfg := Load()

	// The ollama default must not be handed to the openai provider.
	assert.Equal(t, "", cfg.Ai.LLMBaseURL())
	assert.Equal(t, "http://localhost:11434", cfg.Ai.OllamaBaseURL)
}
