package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация приложения
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Database     DatabaseConfig     `toml:"database"`
	Catalog      CatalogConfig      `toml:"catalog"`
	Availability AvailabilityConfig `toml:"availability"`
	Wizard       WizardConfig       `toml:"wizard"`
	RateLimit    RateLimitConfig    `toml:"rate_limit"`
	Contact      ContactConfig      `toml:"contact"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// DatabaseConfig настройки PostgreSQL. При enabled = false бронирования хранятся в памяти.
type DatabaseConfig struct {
	Enabled         bool   `toml:"enabled"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// CatalogConfig источник услуг: внешний каталог по URL или список services
type CatalogConfig struct {
	URL      string          `toml:"url"`
	Timeout  int             `toml:"timeout"`
	Services []ServiceConfig `toml:"services"`
}

// ServiceConfig услуга встроенного каталога
type ServiceConfig struct {
	ID              int64   `toml:"id"`
	Name            string  `toml:"name"`
	Description     string  `toml:"description"`
	Price           float64 `toml:"price"`
	DurationMinutes int     `toml:"duration_minutes"`
	Category        string  `toml:"category"`
}

// AvailabilityConfig правила доступности дат и слотов
type AvailabilityConfig struct {
	SlotStepMinutes  int                 `toml:"slot_step_minutes"`
	Periods          []PeriodConfig      `toml:"periods"`
	ExcludedWeekdays []string            `toml:"excluded_weekdays"`
	BlackoutDates    []string            `toml:"blackout_dates"`
	Reservations     []ReservationConfig `toml:"reservations"`
}

// PeriodConfig интервал работы "HH:MM"-"HH:MM"
type PeriodConfig struct {
	Open  string `toml:"open"`
	Close string `toml:"close"`
}

// ReservationConfig заранее занятые слоты на дату
type ReservationConfig struct {
	Date  string   `toml:"date"`
	Slots []string `toml:"slots"`
}

// WizardConfig настройки мастера бронирования
type WizardConfig struct {
	FinalizeTimeout int `toml:"finalize_timeout"`  // секунды, 0 - без таймаута
	FinalizeDelayMs int `toml:"finalize_delay_ms"` // искусственная задержка финализации
	SessionTTL      int `toml:"session_ttl"`       // минуты простоя до удаления сессии
	SweepInterval   int `toml:"sweep_interval"`    // секунды между очистками
}

// RateLimitConfig ограничение частоты запросов на IP
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
	TrustForwardedFor bool    `toml:"trust_forwarded_for"` // только за доверенным прокси
	IdleTTL           int     `toml:"idle_ttl"`            // секунды простоя до удаления лимитера IP
	CleanupInterval   int     `toml:"cleanup_interval"`    // секунды между очистками
}

// ContactConfig данные салона для экспорта подтверждения
type ContactConfig struct {
	SalonName      string `toml:"salon_name"`
	Location       string `toml:"location"`
	WhatsAppNumber string `toml:"whatsapp_number"`
}

// Load загружает конфигурацию из TOML файла поверх значений по умолчанию
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "booking-wizard",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Catalog: CatalogConfig{
			Timeout: 5,
		},
		Availability: AvailabilityConfig{
			SlotStepMinutes: 30,
			Periods: []PeriodConfig{
				{Open: "09:00", Close: "12:00"},
				{Open: "14:00", Close: "17:30"},
			},
			ExcludedWeekdays: []string{"saturday", "sunday"},
		},
		Wizard: WizardConfig{
			FinalizeTimeout: 10,
			SessionTTL:      30,
			SweepInterval:   60,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 10,
			Burst:             20,
			IdleTTL:           600,
			CleanupInterval:   60,
		},
	}
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	if c.Database.Enabled && (c.Database.Host == "" || c.Database.DBName == "") {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}

	if c.Catalog.Timeout < 0 {
		return fmt.Errorf("%w: catalog.timeout must not be negative", ErrInvalidConfig)
	}
	seen := make(map[int64]struct{}, len(c.Catalog.Services))
	for _, s := range c.Catalog.Services {
		if s.ID <= 0 || strings.TrimSpace(s.Name) == "" || s.DurationMinutes <= 0 || s.Price < 0 {
			return fmt.Errorf("%w: catalog service id=%d", ErrInvalidConfig, s.ID)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: duplicate catalog service id=%d", ErrInvalidConfig, s.ID)
		}
		seen[s.ID] = struct{}{}
	}

	if len(c.Availability.Periods) == 0 {
		return fmt.Errorf("%w: availability.periods must not be empty", ErrInvalidConfig)
	}
	if _, err := c.Availability.Weekdays(); err != nil {
		return err
	}
	if _, err := c.Availability.Blackouts(); err != nil {
		return err
	}
	for _, r := range c.Availability.Reservations {
		if _, err := time.Parse(dateLayout, r.Date); err != nil {
			return fmt.Errorf("%w: reservation date %q", ErrInvalidConfig, r.Date)
		}
	}

	if c.Wizard.FinalizeTimeout < 0 || c.Wizard.FinalizeDelayMs < 0 || c.Wizard.SessionTTL < 0 {
		return fmt.Errorf("%w: wizard durations must not be negative", ErrInvalidConfig)
	}
	if c.Wizard.SessionTTL > 0 && c.Wizard.SweepInterval <= 0 {
		return fmt.Errorf("%w: wizard.sweep_interval must be positive", ErrInvalidConfig)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit values must be positive", ErrInvalidConfig)
	}
	if c.RateLimit.IdleTTL < 0 {
		return fmt.Errorf("%w: rate_limit.idle_ttl must not be negative", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && c.RateLimit.IdleTTL > 0 && c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("%w: rate_limit.cleanup_interval must be positive", ErrInvalidConfig)
	}

	return nil
}
