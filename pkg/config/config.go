package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	LogJSON  bool
	LogDebug bool

	// LLMProvider selects the ai_reason backend: "gemini", "openrouter" or ""
	// (disabled; matches fall back to a deterministic reason).
	LLMProvider string

	GeminiAPIKey string
	GeminiModel  string

	OpenRouterAPIKey   string
	OpenRouterBase     string
	OpenRouterModel    string
	OpenRouterAppTitle string
	OpenRouterReferer  string

	MatchingCron        string
	RecommendationsCron string
	SchedulerEnabled    bool

	MatchingCacheLimit int
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:     getEnv("JWT_ISSUER", "prepmatch"),
		JWTTTLMinutes: getEnvInt("JWT_TTL_MINUTES", 60),

		LogJSON:  getEnvBool("LOG_JSON", false),
		LogDebug: getEnvBool("LOG_DEBUG", false),

		LLMProvider: getEnv("LLM_PROVIDER", ""),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		OpenRouterAPIKey:   os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBase:     os.Getenv("OPENROUTER_BASE_URL"),
		OpenRouterModel:    os.Getenv("OPENROUTER_MODEL"),
		OpenRouterAppTitle: getEnv("OPENROUTER_APP_TITLE", "prepmatch"),
		OpenRouterReferer:  os.Getenv("OPENROUTER_REFERER"),

		MatchingCron:        getEnv("MATCHING_CRON", "0 0 * * *"),
		RecommendationsCron: getEnv("RECOMMENDATIONS_CRON", "0 1 * * *"),
		SchedulerEnabled:    getEnvBool("SCHEDULER_ENABLED", true),

		MatchingCacheLimit: getEnvInt("MATCHING_CACHE_LIMIT", 50),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
