package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Config agrupa toda la configuración del proceso. Se lee de env (y .env si existe).
type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	AppName string `env:"APP_NAME" envDefault:"virtual-pet"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"memory"`
	DBDSN       string `env:"DB_DSN"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"virtual-pet.db"`

	JWTSecret string        `env:"JWT_SECRET"`
	JWTIssuer string        `env:"JWT_ISSUER" envDefault:"virtual-pet"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"168h"`

	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`

	AuthRateLimit float64 `env:"AUTH_RATE_LIMIT" envDefault:"5"`
	AuthRateBurst int     `env:"AUTH_RATE_BURST" envDefault:"10"`

	PaymentsURL     string        `env:"PAYMENTS_URL"`
	PaymentsAPIKey  string        `env:"PAYMENTS_API_KEY"`
	PaymentsTimeout time.Duration `env:"PAYMENTS_TIMEOUT" envDefault:"5s"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load lee .env (opcional) y luego el entorno.
func Load() (Config, error) {
	// .env es opcional: en prod las vars vienen del entorno.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory:
	case StoreSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return errors.New("config: SQLITE_PATH required for sqlite store")
		}
	case StorePostgres:
		if strings.TrimSpace(c.DBDSN) == "" {
			return errors.New("config: DB_DSN required for postgres store")
		}
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}

	// Sin secreto solo se permite el modo memoria (dev).
	if strings.TrimSpace(c.JWTSecret) == "" && c.StoreDriver != StoreMemory {
		return errors.New("config: JWT_SECRET required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("config: TOKEN_TTL must be positive")
	}
	return nil
}

// Addr devuelve la dirección de escucha (":PORT").
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
}
