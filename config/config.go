package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string

	// API key for the external read-only query endpoint, and the studio
	// owner whose inventory that endpoint serves
	QUERY_API_KEY string
	QUERY_USER_ID uint

	// LLM configuration
	LLM_PROVIDER      string // "anthropic" | "openai"
	ANTHROPIC_API_KEY string
	OPENAI_API_KEY    string
	CHAT_MODEL        string
	EXPANSION_MODEL   string
	EXTRACTION_MODEL  string

	CORS_ORIGIN string

	// Outbound email and the link targets embedded in it
	SMTP_HOST     string
	SMTP_PORT     string
	SMTP_FROM     string
	SMTP_PASSWORD string

	APP_BASE_URL string
	FRONTEND_URL string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")

	QUERY_API_KEY = mustEnv("QUERY_API_KEY")
	QUERY_USER_ID = getEnvUint("QUERY_USER_ID", 1)

	LLM_PROVIDER = getEnv("LLM_PROVIDER", "anthropic")
	ANTHROPIC_API_KEY = getEnv("ANTHROPIC_API_KEY", "")
	OPENAI_API_KEY = getEnv("OPENAI_API_KEY", "")
	CHAT_MODEL = getEnv("CHAT_MODEL", "")
	EXPANSION_MODEL = getEnv("EXPANSION_MODEL", "")
	EXTRACTION_MODEL = getEnv("EXTRACTION_MODEL", "")

	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:5173")

	SMTP_HOST = getEnv("SMTP_HOST", "")
	SMTP_PORT = getEnv("SMTP_PORT", "587")
	SMTP_FROM = getEnv("SMTP_FROM", "")
	SMTP_PASSWORD = getEnv("SMTP_PASSWORD", "")

	APP_BASE_URL = getEnv("APP_BASE_URL", "http://localhost:8080")
	FRONTEND_URL = getEnv("FRONTEND_URL", "http://localhost:5173")

	GOOGLE_CLIENT_ID = getEnv("GOOGLE_CLIENT_ID", "")
	GOOGLE_CLIENT_SECRET = getEnv("GOOGLE_CLIENT_SECRET", "")
	GOOGLE_REDIRECT_URL = getEnv("GOOGLE_REDIRECT_URL", "")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnvUint(key string, fallback uint) uint {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		log.Fatalf("Invalid value for %s: %s", key, value)
	}
	return uint(n)
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
