package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		AppEnv:                    "dev",
		DatabaseURL:               "vetclinic.db",
		JWTSecret:                 defaultJWTSecret,
		JWTTTL:                    time.Hour,
		CustomerTokenTTL:          time.Hour,
		ClinicTimezone:            "Asia/Riyadh",
		SlotDurationMinutes:       30,
		CancelLeadTime:            24 * time.Hour,
		NotificationRetentionDays: 90,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30, cfg.SlotDurationMinutes)
	assert.Equal(t, 24*time.Hour, cfg.CancelLeadTime)
	assert.Equal(t, "Asia/Riyadh", cfg.Location().String())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SLOT_DURATION_MINUTES", "15")
	t.Setenv("CANCEL_LEAD_TIME", "12h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 15, cfg.SlotDurationMinutes)
	assert.Equal(t, 12*time.Hour, cfg.CancelLeadTime)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{name: "valid", mutate: func(c *Config) {}, ok: true},
		{name: "zero jwt ttl", mutate: func(c *Config) { c.JWTTTL = 0 }},
		{name: "slot too short", mutate: func(c *Config) { c.SlotDurationMinutes = 1 }},
		{name: "bad timezone", mutate: func(c *Config) { c.ClinicTimezone = "Mars/Olympus" }},
		{name: "prod default secret", mutate: func(c *Config) { c.AppEnv = "production" }},
		{name: "prod custom secret", mutate: func(c *Config) { c.AppEnv = "production"; c.JWTSecret = "s3cr3t" }, ok: true},
		{name: "whatsapp without url", mutate: func(c *Config) { c.WhatsAppEnabled = true }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
