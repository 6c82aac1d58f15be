package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr               string
	MongoURI           string
	MongoDatabase      string
	ResponseCollection string
	UploadDir          string
	Timeout            time.Duration
	SMTPHost           string
	SMTPPort           int
	EmailUser          string
	EmailPass          string
	AdminEmail         string
	SweepSchedule      string
	SweepTimezone      string
	AllowedOrigins     []string
	ServerLog          *log.Logger
}

// Load reads environment variables and returns a fully populated Config.
// Mail credentials and the admin recipient are required: the intake
// pipeline cannot run without an outbound notification target.
func Load() Config {
	timeout := 10 * time.Second
	if v := os.Getenv("MONGO_CONNECT_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			timeout = parsed
		}
	}

	smtpPort := 587
	if raw := strings.TrimSpace(os.Getenv("SMTP_PORT")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			smtpPort = parsed
		}
	}

	emailUser := strings.TrimSpace(os.Getenv("EMAIL_USER"))
	emailPass := strings.TrimSpace(os.Getenv("EMAIL_PASS"))
	if emailUser == "" || emailPass == "" {
		log.Fatal("mail credentials not configured. Set EMAIL_USER and EMAIL_PASS.")
	}

	adminEmail := strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))
	if adminEmail == "" {
		log.Fatal("ADMIN_EMAIL must be configured")
	}

	allowedOrigins := parseList("API_ALLOWED_ORIGINS", []string{"*"})

	cfg := Config{
		Addr:               envOrDefault("HTTP_ADDR", ":3000"),
		MongoURI:           envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:      envOrDefault("MONGO_DB", "questionnaire"),
		ResponseCollection: envOrDefault("RESPONSE_COLLECTION", "responses"),
		UploadDir:          envOrDefault("UPLOAD_DIR", "uploads"),
		Timeout:            timeout,
		SMTPHost:           envOrDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:           smtpPort,
		EmailUser:          emailUser,
		EmailPass:          emailPass,
		AdminEmail:         adminEmail,
		SweepSchedule:      envOrDefault("SWEEP_SCHEDULE", "0 0 * * 0"),
		SweepTimezone:      envOrDefault("SWEEP_TIMEZONE", "America/New_York"),
		AllowedOrigins:     allowedOrigins,
		ServerLog:          log.New(os.Stdout, "[questionnaire-api] ", log.LstdFlags|log.Lshortfile),
	}

	cfg.ServerLog.Printf("loaded config: addr=%q db=%q collection=%q uploadDir=%q sweep=%q tz=%q",
		cfg.Addr, cfg.MongoDatabase, cfg.ResponseCollection, cfg.UploadDir, cfg.SweepSchedule, cfg.SweepTimezone)

	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
