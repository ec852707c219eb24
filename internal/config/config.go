package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	MaterialsDir       string
	IngestTopicName    string
	LockWaitSeconds    int
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JWTSecret string
}

type AIConfig struct {
	EmbeddingProvider string // "openai", "gemini" or "ollama"
	EmbeddingModel    string
	OllamaBaseURL     string
	OpenAIBaseURL     string // empty means the provider's public endpoint
	LLMProvider       string // "openai" or "ollama"
	LLMModel          string // e.g. "gpt-4o", "llama3"
	OpenAIKey         string
	GoogleGeminiKey   string
	RetrievalTopK     int
}

// LLMBaseURL resolves the base URL for the configured chat provider. The
// ollama URL must never leak into the openai case: an empty result there
// lets the provider fall back to the public OpenAI endpoint.
func (c AIConfig) LLMBaseURL() string {
	if c.LLMProvider == "ollama" {
		return c.OllamaBaseURL
	}
	return c.OpenAIBaseURL
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			MaterialsDir:       getEnv("MATERIALS_DIR", "data/materials"),
			IngestTopicName:    getEnv("EMBED_MATERIAL_TOPIC_NAME", "EMBED_MATERIAL"),
			LockWaitSeconds:    getEnvAsInt("SCOPE_LOCK_WAIT_SECONDS", 30),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "openai"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-3-large"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
			LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
			LLMModel:          getEnv("LLM_MODEL", "gpt-4o"),
			OpenAIKey:         getEnv("OPENAI_API_KEY", ""),
			GoogleGeminiKey:   getEnv("GOOGLE_GEMINI_API_KEY", ""),
			RetrievalTopK:     getEnvAsInt("RETRIEVAL_TOP_K", 5),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
