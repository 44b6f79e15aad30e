package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr             string
	DatabaseURL          string // vacío = repos in-memory
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	JWTSecret string // vacío = modo dev, sin verifier

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	AlertEmails  []string

	GeminiAPIKey  string
	GeminiBaseURL string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:             getenv("HTTP_ADDR", ":8080"),
		DatabaseURL:          getenv("DATABASE_URL", ""),
		CORSAllowCredentials: getenv("CORS_ALLOW_CREDENTIALS", "false") == "true",

		JWTSecret: getenv("JWT_SECRET", ""),

		SMTPHost:     getenv("SMTP_HOST", ""),
		SMTPUsername: getenv("SMTP_USERNAME", ""),
		SMTPPassword: getenv("SMTP_PASSWORD", ""),
		SMTPFrom:     getenv("SMTP_FROM", ""),

		GeminiAPIKey:  getenv("GEMINI_API_KEY", ""),
		GeminiBaseURL: getenv("GEMINI_BASE_URL", ""),
	}

	if port, err := strconv.Atoi(getenv("SMTP_PORT", "587")); err == nil {
		cfg.SMTPPort = port
	}

	cfg.CORSAllowedOrigins = splitCSV(getenv("CORS_ALLOWED_ORIGINS", ""))
	cfg.AlertEmails = splitCSV(getenv("ALERT_EMAILS", ""))

	return cfg, nil
}

func splitCSV(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
