package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultJWTSecret = "change-me-jwt-secret"

type Config struct {
	AppEnv      string `mapstructure:"APP_ENV"`
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	JWTSecret        string        `mapstructure:"JWT_SECRET"`
	JWTTTL           time.Duration `mapstructure:"JWT_TTL"`
	CustomerTokenTTL time.Duration `mapstructure:"CUSTOMER_TOKEN_TTL"`

	ClinicTimezone      string        `mapstructure:"CLINIC_TIMEZONE"`
	SlotDurationMinutes int           `mapstructure:"SLOT_DURATION_MINUTES"`
	CancelLeadTime      time.Duration `mapstructure:"CANCEL_LEAD_TIME"`

	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	WhatsAppEnabled bool   `mapstructure:"WHATSAPP_ENABLED"`
	WhatsAppAPIURL  string `mapstructure:"WHATSAPP_API_URL"`
	WhatsAppToken   string `mapstructure:"WHATSAPP_TOKEN"`

	SchedulerEnabled          bool `mapstructure:"SCHEDULER_ENABLED"`
	NotificationRetentionDays int  `mapstructure:"NOTIFICATION_RETENTION_DAYS"`

	location *time.Location
}

var keys = []string{
	"APP_ENV", "PORT", "DATABASE_URL", "LOG_LEVEL",
	"JWT_SECRET", "JWT_TTL", "CUSTOMER_TOKEN_TTL",
	"CLINIC_TIMEZONE", "SLOT_DURATION_MINUTES", "CANCEL_LEAD_TIME",
	"CORS_ALLOWED_ORIGINS",
	"WHATSAPP_ENABLED", "WHATSAPP_API_URL", "WHATSAPP_TOKEN",
	"SCHEDULER_ENABLED", "NOTIFICATION_RETENTION_DAYS",
}

// Load reads configuration from the environment and an optional .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "vetclinic.db")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("CUSTOMER_TOKEN_TTL", "720h")
	v.SetDefault("CLINIC_TIMEZONE", "Asia/Riyadh")
	v.SetDefault("SLOT_DURATION_MINUTES", 30)
	v.SetDefault("CANCEL_LEAD_TIME", "24h")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("WHATSAPP_ENABLED", false)
	v.SetDefault("SCHEDULER_ENABLED", true)
	v.SetDefault("NOTIFICATION_RETENTION_DAYS", 90)

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// .env is optional
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.CORSAllowedOrigins) == 1 && strings.Contains(cfg.CORSAllowedOrigins[0], ",") {
		cfg.CORSAllowedOrigins = strings.Split(cfg.CORSAllowedOrigins[0], ",")
	}
	for i := range cfg.CORSAllowedOrigins {
		cfg.CORSAllowedOrigins[i] = strings.TrimSpace(cfg.CORSAllowedOrigins[i])
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would make the server misbehave at runtime.
func (c *Config) Validate() error {
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if c.CustomerTokenTTL <= 0 {
		return fmt.Errorf("CUSTOMER_TOKEN_TTL must be > 0")
	}
	if c.CancelLeadTime < 0 {
		return fmt.Errorf("CANCEL_LEAD_TIME must be >= 0")
	}
	if c.SlotDurationMinutes < 5 || c.SlotDurationMinutes > 240 {
		return fmt.Errorf("SLOT_DURATION_MINUTES must be between 5 and 240")
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if c.NotificationRetentionDays <= 0 {
		return fmt.Errorf("NOTIFICATION_RETENTION_DAYS must be > 0")
	}
	if c.WhatsAppEnabled && strings.TrimSpace(c.WhatsAppAPIURL) == "" {
		return fmt.Errorf("WHATSAPP_API_URL is required when WHATSAPP_ENABLED=true")
	}

	loc, err := time.LoadLocation(c.ClinicTimezone)
	if err != nil {
		return fmt.Errorf("invalid CLINIC_TIMEZONE %q: %w", c.ClinicTimezone, err)
	}
	c.location = loc

	if c.IsProdLike() {
		if isEmptyOrDefault(c.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
	}
	return nil
}

// Location returns the clinic timezone; appointment dates and times are wall-clock values in it.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

func (c *Config) IsProdLike() bool {
	env := strings.ToLower(strings.TrimSpace(c.AppEnv))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}
