package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken  string `env:"TELEGRAM_TOKEN"`
	Environment    string `env:"ENV" envDefault:"development"`
	DBDSN          string `env:"DB_DSN"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	Timezone string `env:"TIMEZONE" envDefault:"Local"`

	GenerationDelay time.Duration `env:"GENERATION_DELAY" envDefault:"3s"`
	SeedFixtures    bool          `env:"SEED_FIXTURES" envDefault:"true"`

	location *time.Location
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return Parse()
}

// Parse читает конфигурацию только из окружения
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.TelegramToken == "" {
		return nil, errors.New("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.GenerationDelay < 0 {
		return nil, fmt.Errorf("GENERATION_DELAY must not be negative, got %s", cfg.GenerationDelay)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	cfg.location = loc

	return cfg, nil
}

// Location часовой пояс кабинета
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

func (c *Config) UsePostgres() bool {
	return c.DBDSN != ""
}

func (c *Config) UseRedis() bool {
	return c.RedisAddr != ""
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
