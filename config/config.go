package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DBUrl             string
	SupabaseUrl       string
	SupabaseKey       string
	SupabaseJWTSecret string
	FrontendURL       string
	// Blob store
	ResumeBucket string
	// External services
	PlannerBaseURL   string
	AssistantBaseURL string
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Workflow timing (seconds/minutes, overridable for staging)
	SessionResolveTimeoutSeconds int
	PlanPollIntervalSeconds      int
	PlanTimeoutMinutes           int
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitChatThreshold   int
	RateLimitPlanThreshold   int
	RateLimitGlobalThreshold int
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent
	_ = godotenv.Load()

	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		DBUrl: getEnv("DATABASE_URL", ""),
		// Strip trailing slashes to prevent double-slash URLs (e.g. .co//auth)
		SupabaseUrl:       strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseKey:       getEnv("SUPABASE_SERVICE_KEY", getEnv("SUPABASE_KEY", "")),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),
		FrontendURL:       strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),

		ResumeBucket: getEnv("RESUME_BUCKET", "resumes"),

		PlannerBaseURL:   strings.TrimRight(getEnv("PLANNER_BASE_URL", ""), "/"),
		AssistantBaseURL: strings.TrimRight(getEnv("ASSISTANT_BASE_URL", ""), "/"),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		SessionResolveTimeoutSeconds: getEnvInt("SESSION_RESOLVE_TIMEOUT_SECONDS", 15),
		PlanPollIntervalSeconds:      getEnvInt("PLAN_POLL_INTERVAL_SECONDS", 10),
		PlanTimeoutMinutes:           getEnvInt("PLAN_TIMEOUT_MINUTES", 15),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitChatThreshold:   getEnvInt("RATE_LIMIT_CHAT_THRESHOLD", 20),
		RateLimitPlanThreshold:   getEnvInt("RATE_LIMIT_PLAN_THRESHOLD", 5),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.PlannerBaseURL == "" {
		log.Println("WARNING: PLANNER_BASE_URL not configured. Plan generation requests will fail.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
