package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret  string
	SessionCookie string
}

type CacheConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CatalogTTL    time.Duration
}

type QueueConfig struct {
	URL   string
	Queue string
}

type BookingConfig struct {
	DefaultDepositPercent int64
	DefaultHeadcount      int
}

type PDFConfig struct {
	FontPath string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Cache       CacheConfig
	Queue       QueueConfig
	Booking     BookingConfig
	PDF         PDFConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host:           v.GetString("HTTP_HOST"),
			Port:           v.GetInt("HTTP_PORT"),
			AllowedOrigins: parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret:  v.GetString("JWT_ACCESS_SECRET"),
			SessionCookie: v.GetString("SESSION_COOKIE"),
		},
		Cache: CacheConfig{
			RedisAddr:     v.GetString("REDIS_ADDR"),
			RedisPassword: v.GetString("REDIS_PASSWORD"),
			RedisDB:       v.GetInt("REDIS_DB"),
			CatalogTTL:    v.GetDuration("CATALOG_CACHE_TTL"),
		},
		Queue: QueueConfig{
			URL:   v.GetString("AMQP_URL"),
			Queue: v.GetString("AMQP_QUEUE"),
		},
		Booking: BookingConfig{
			DefaultDepositPercent: v.GetInt64("BOOKING_DEFAULT_DEPOSIT_PERCENT"),
			DefaultHeadcount:      v.GetInt("BOOKING_DEFAULT_HEADCOUNT"),
		},
		PDF: PDFConfig{
			FontPath: v.GetString("PDF_FONT_PATH"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.Auth.SessionCookie == "" {
		cfg.Auth.SessionCookie = "session"
	}
	if cfg.Cache.CatalogTTL <= 0 {
		cfg.Cache.CatalogTTL = 5 * time.Minute
	}
	if cfg.Queue.Queue == "" {
		cfg.Queue.Queue = "reservation.events"
	}
	if !v.IsSet("BOOKING_DEFAULT_DEPOSIT_PERCENT") {
		cfg.Booking.DefaultDepositPercent = 10
	}
	if cfg.Booking.DefaultHeadcount == 0 {
		cfg.Booking.DefaultHeadcount = 2
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Booking.DefaultDepositPercent < 0 || cfg.Booking.DefaultDepositPercent > 100 {
		return fmt.Errorf("BOOKING_DEFAULT_DEPOSIT_PERCENT must be between 0 and 100")
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
