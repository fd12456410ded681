package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Default identity tracked by the presence poller.
const (
	DefaultPresenceUserID   = "968070307095150602"
	DefaultPresenceUsername = "bagas"
)

type Config struct {
	Port int

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	Recipient    string

	DatabaseURL string

	PresenceUserID   string
	PresenceUsername string
	PresenceAPIURL   string
	PresenceInterval time.Duration
	PresenceTimeout  time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads the configuration from the environment. Call godotenv.Load
// first if a .env file should be honored.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "5000"))
	if err != nil {
		return nil, fmt.Errorf("PORT: %w", err)
	}
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("SMTP_PORT: %w", err)
	}
	interval, err := time.ParseDuration(getEnv("PRESENCE_INTERVAL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("PRESENCE_INTERVAL: %w", err)
	}
	timeout, err := time.ParseDuration(getEnv("PRESENCE_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("PRESENCE_TIMEOUT: %w", err)
	}

	user := os.Getenv("EMAIL_USER")
	cfg := &Config{
		Port:             port,
		SMTPHost:         getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:         smtpPort,
		SMTPUsername:     user,
		SMTPPassword:     os.Getenv("EMAIL_PASS"),
		Recipient:        getEnv("CONTACT_RECIPIENT", user),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PresenceUserID:   getEnv("PRESENCE_USER_ID", DefaultPresenceUserID),
		PresenceUsername: getEnv("PRESENCE_USERNAME", DefaultPresenceUsername),
		PresenceAPIURL:   getEnv("PRESENCE_API_URL", "https://api.lanyard.rest"),
		PresenceInterval: interval,
		PresenceTimeout:  timeout,
		LogLevel:         getEnv("LOG_LEVEL", "INFO"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges. Missing SMTP credentials are not an error:
// the relay still accepts requests and every send fails at the SMTP layer.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		return fmt.Errorf("SMTP_PORT must be between 1 and 65535")
	}
	if c.PresenceInterval <= 0 {
		return fmt.Errorf("PRESENCE_INTERVAL must be greater than 0")
	}
	if c.PresenceTimeout <= 0 {
		return fmt.Errorf("PRESENCE_TIMEOUT must be greater than 0")
	}
	if c.PresenceUserID == "" {
		return fmt.Errorf("PRESENCE_USER_ID must not be empty")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
