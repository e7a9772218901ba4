package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	VenueService VenueServiceConfig `toml:"venue_service"`
	Redis        RedisConfig        `toml:"redis"`
	Booking      BookingConfig      `toml:"booking"`
	Pricing      PricingConfig      `toml:"pricing"`
	Reservation  ReservationConfig  `toml:"reservation"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// VenueServiceConfig настройки клиента VenueService
type VenueServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// RedisConfig настройки Redis для кэша ответов VenueService
// Пустой Address отключает кэширование
type RedisConfig struct {
	Address         string `toml:"address"`
	Password        string `toml:"password"`
	DB              int    `toml:"db"`
	CacheTTLSeconds int    `toml:"cache_ttl_seconds"`
}

// BookingConfig настройки движка бронирования
type BookingConfig struct {
	SlotDurationMinutes int `toml:"slot_duration_minutes"`
}

// PricingConfig настройки расчета цены
// Ставка налога задается только конфигурацией (не хардкодится)
type PricingConfig struct {
	TaxRate float64 `toml:"tax_rate"`
}

// ReservationConfig настройки координатора резервирования
type ReservationConfig struct {
	AcquireTimeoutSeconds int `toml:"acquire_timeout_seconds"`
}

// Load загружает конфигурацию из TOML файла и применяет дефолтные значения
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "venue-service"
	}
	if c.VenueService.Timeout == 0 {
		c.VenueService.Timeout = 5
	}
	if c.Booking.SlotDurationMinutes == 0 {
		c.Booking.SlotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	if c.Reservation.AcquireTimeoutSeconds == 0 {
		c.Reservation.AcquireTimeoutSeconds = 3
	}
}

func (c *Config) validate() error {
	if c.Booking.SlotDurationMinutes < domain.MinSlotDurationMinutes ||
		c.Booking.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("config: slot_duration_minutes must be between %d and %d",
			domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	if c.Pricing.TaxRate < 0 || c.Pricing.TaxRate >= 1 {
		return fmt.Errorf("config: tax_rate must be in [0, 1)")
	}
	if c.VenueService.URL == "" {
		return fmt.Errorf("config: venue_service.url is required")
	}
	return nil
}
