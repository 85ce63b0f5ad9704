package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[logs]
level = "debug"

[availability]
blackout_dates = ["2026-12-25"]

[[availability.reservations]]
date = "2026-10-20"
slots = ["09:00", "14:30"]

[[catalog.services]]
id = 1
name = "Corte Feminino"
price = 85.0
duration_minutes = 90
category = "cabelo"

[contact]
whatsapp_number = "+55 11 98888-7777"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ReadTimeout, "default kept")
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, 30, cfg.Availability.SlotStepMinutes)
	assert.Len(t, cfg.Availability.Periods, 2)
	require.Len(t, cfg.Availability.Reservations, 1)
	assert.Equal(t, []string{"09:00", "14:30"}, cfg.Availability.Reservations[0].Slots)
	require.Len(t, cfg.Catalog.Services, 1)
	assert.Equal(t, 90, cfg.Catalog.Services[0].DurationMinutes)
	assert.Equal(t, "+55 11 98888-7777", cfg.Contact.WhatsAppNumber)

	blackouts, err := cfg.Availability.Blackouts()
	require.NoError(t, err)
	assert.Equal(t, []time.Time{time.Date(2026, time.December, 25, 0, 0, 0, 0, time.UTC)}, blackouts)

	days, err := cfg.Availability.Weekdays()
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Saturday, time.Sunday}, days)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[server\nhttp_port = 1"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "port", mutate: func(c *Config) { c.Server.HTTPPort = 0 }},
		{name: "database without host", mutate: func(c *Config) { c.Database.Enabled = true; c.Database.Host = "" }},
		{name: "weekday", mutate: func(c *Config) { c.Availability.ExcludedWeekdays = []string{"funday"} }},
		{name: "blackout", mutate: func(c *Config) { c.Availability.BlackoutDates = []string{"25/12/2026"} }},
		{name: "reservation date", mutate: func(c *Config) {
			c.Availability.Reservations = []ReservationConfig{{Date: "tomorrow"}}
		}},
		{name: "no periods", mutate: func(c *Config) { c.Availability.Periods = nil }},
		{name: "duplicate service", mutate: func(c *Config) {
			c.Catalog.Services = []ServiceConfig{
				{ID: 1, Name: "A", DurationMinutes: 30},
				{ID: 1, Name: "B", DurationMinutes: 30},
			}
		}},
		{name: "service without duration", mutate: func(c *Config) {
			c.Catalog.Services = []ServiceConfig{{ID: 1, Name: "A"}}
		}},
		{name: "negative ttl", mutate: func(c *Config) { c.Wizard.SessionTTL = -1 }},
		{name: "rate limit", mutate: func(c *Config) { c.RateLimit.Burst = 0 }},
		{name: "negative limiter ttl", mutate: func(c *Config) { c.RateLimit.IdleTTL = -1 }},
		{name: "limiter cleanup interval", mutate: func(c *Config) { c.RateLimit.CleanupInterval = 0 }},
	}

	require.NoError(t, Default().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "wizard", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=wizard sslmode=disable", d.DSN())
}
