package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"ideaforge-backend/internal/llm"
)

const DefaultModel = "gemini-2.5-flash"

type Config struct {
	Port          string
	AllowedOrigin string
	// Model endpoint
	APIKey  string
	Model   string
	BaseURL string
	Stream  bool
	// Optional YAML file overriding the built-in prompts
	PromptsFile    string
	RequestTimeout time.Duration
	// Sessions
	SessionIdleTTL  time.Duration
	MaxDisplayTurns int
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:            getEnvDefault("PORT", "8080"),
		AllowedOrigin:   getEnvDefault("ALLOWED_ORIGIN", "*"),
		APIKey:          getEnvDefault("API_KEY", os.Getenv("GEMINI_API_KEY")),
		Model:           getEnvDefault("MODEL_NAME", getEnvDefault("GEMINI_MODEL", DefaultModel)),
		BaseURL:         getEnvDefault("BASE_URL", llm.DefaultBaseURL),
		Stream:          getEnvBoolDefault("STREAM", false),
		PromptsFile:     os.Getenv("PROMPTS_FILE"),
		RequestTimeout:  getEnvDurationDefault("REQUEST_TIMEOUT", 60*time.Second),
		SessionIdleTTL:  getEnvDurationDefault("SESSION_IDLE_TTL", 30*time.Minute),
		MaxDisplayTurns: getEnvIntDefault("MAX_DISPLAY_TURNS", 100),
	}
	if cfg.APIKey == "" {
		log.Println("warning: API_KEY is not set; model calls will fail until provided")
	}
	return cfg
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBoolDefault(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getEnvIntDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err == nil {
			return n
		}
		log.Printf("warning: %s=%q is not an integer, using %d", key, v, def)
	}
	return def
}

func getEnvDurationDefault(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err == nil && d > 0 {
			return d
		}
		log.Printf("warning: %s=%q is not a positive duration, using %s", key, v, def)
	}
	return def
}
