// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort         string
	OpenAIAPIKey       string
	OpenAIBaseURL      string
	EmbeddingModelName string
	ChatModelName      string
	// PersistDirectory is where the local vector store writes its JSON
	// snapshot. Empty means in-memory only.
	PersistDirectory  string
	SessionDBPath     string
	PineconeAPIKey    string
	PineconeIndexHost string
	PineconeNamespace string
	RetrievalTopK     int
	GenerationTimeout int // seconds
	Environment       string
}

// Load reads configuration from environment variables or .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		// IMPORTANT: the embedding model must match the dimension of any
		// pre-built index (384 for the bundled corpus).
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "text-embedding-3-small"),
		ChatModelName:      getEnv("CHAT_MODEL_NAME", "gpt-4o-mini"),
		PersistDirectory:   getEnv("PERSIST_DIRECTORY", "./chroma_db"),
		SessionDBPath:      getEnv("SESSION_DB_PATH", "./sessions.db"),
		PineconeAPIKey:     getEnv("PINECONE_API_KEY", ""),
		PineconeIndexHost:  getEnv("PINECONE_INDEX_HOST", ""),
		PineconeNamespace:  getEnv("PINECONE_NAMESPACE", "medical-knowledge"),
		RetrievalTopK:      getEnvAsInt("RAG_TOPK", 5),
		GenerationTimeout:  getEnvAsInt("GENERATION_TIMEOUT_SECONDS", 30),
		Environment:        env,
	}

	// Validation for production environments
	if strings.ToLower(env) == "production" {
		missing := []string{}
		if cfg.OpenAIAPIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
		if cfg.PineconeAPIKey != "" && cfg.PineconeIndexHost == "" {
			missing = append(missing, "PINECONE_INDEX_HOST")
		}
		if len(missing) > 0 {
			log.Fatalf("Missing required production environment variables: %v", missing)
		}
	}

	return cfg
}

// UsePinecone reports whether the remote vector backend is configured.
func (c *Config) UsePinecone() bool {
	return c.PineconeAPIKey != "" && c.PineconeIndexHost != ""
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}
