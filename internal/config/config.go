// Package config loads the service configuration from the environment, an
// optional .env file and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting the service reads at startup.
type Config struct {
	AppPort string `validate:"required"`

	DBDriver    string `validate:"oneof=memory sqlite postgres"`
	DatabaseDSN string `validate:"required_unless=DBDriver memory"`

	// RabbitMQURL left empty disables event publishing.
	RabbitMQURL      string
	RabbitMQExchange string `validate:"required"`
	RabbitMQQueue    string `validate:"required"`

	SessionCookie     string        `validate:"required"`
	SessionExpiration time.Duration `validate:"gt=0"`

	// AllowOrigins is sent with credentials, which CORS forbids for "*".
	AllowOrigins string `validate:"excludes=*"`

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=text json"`

	ShopName    string
	Helpline    string
	BannerImage string
	TermsText   string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "parlour.db")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "parlour.events")
	v.SetDefault("RABBITMQ_QUEUE", "parlour_events")
	v.SetDefault("SESSION_COOKIE", "parlour_session")
	v.SetDefault("SESSION_EXPIRATION", "24h")
	v.SetDefault("ALLOW_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("SHOP_NAME", "Royal Ice Cream")
	v.SetDefault("HELPLINE", "+91-9204441036")
	v.SetDefault("BANNER_IMAGE", "/static/banner.jpg")
	v.SetDefault("TERMS_TEXT", "Add your detailed terms & conditions here.")
}

// Load reads .env (if present) and the environment into a validated Config.
func Load() (Config, error) {
	// A missing .env file is fine; the environment and defaults still apply.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		AppPort:           v.GetString("APP_PORT"),
		DBDriver:          v.GetString("DB_DRIVER"),
		DatabaseDSN:       v.GetString("DATABASE_DSN"),
		RabbitMQURL:       v.GetString("RABBITMQ_URL"),
		RabbitMQExchange:  v.GetString("RABBITMQ_EXCHANGE"),
		RabbitMQQueue:     v.GetString("RABBITMQ_QUEUE"),
		SessionCookie:     v.GetString("SESSION_COOKIE"),
		SessionExpiration: v.GetDuration("SESSION_EXPIRATION"),
		AllowOrigins:      v.GetString("ALLOW_ORIGINS"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		LogFormat:         v.GetString("LOG_FORMAT"),
		ShopName:          v.GetString("SHOP_NAME"),
		Helpline:          v.GetString("HELPLINE"),
		BannerImage:       v.GetString("BANNER_IMAGE"),
		TermsText:         v.GetString("TERMS_TEXT"),
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
