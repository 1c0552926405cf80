package config

import (
	"os"
	"strings"
	"time"
)

type Mode string

const (
	ModeDev  Mode = "dev"
	ModeProd Mode = "prod"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string
	DBDSN    string

	QuizStore string // sql|redis
	RedisAddr string

	AuthHMACSecret string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiTimeout time.Duration

	QuizTTL time.Duration

	CORSOrigins []string
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeDev
	}
	return Config{
		Mode:           mode,
		HTTPAddr:       envOr("HTTP_ADDR", ":8080"),
		DBDriver:       envOr("DB_DRIVER", "sqlite"),
		DBDSN:          envOr("DB_DSN", ""),
		QuizStore:      envOr("QUIZ_STORE", "sql"),
		RedisAddr:      envOr("REDIS_ADDR", "localhost:6379"),
		AuthHMACSecret: envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    envOr("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiTimeout:  envDur("GEMINI_TIMEOUT", 30*time.Second),
		QuizTTL:        envDur("QUIZ_TTL", 10*time.Minute),
		CORSOrigins:    csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envDur(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
