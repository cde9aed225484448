package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultJWTSecret solo sirve para desarrollo. En producción hay que definir JWT_SECRET.
const DefaultJWTSecret = "super-secret-key"

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Config agrupa toda la configuración del servicio.
// Se construye una vez en main y se pasa explícitamente a cada componente.
type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	AppName string `env:"APP_NAME" envDefault:"cyber-kittens"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	JWTSecret string        `env:"JWT_SECRET" envDefault:"super-secret-key"`
	JWTIssuer string        `env:"JWT_ISSUER" envDefault:"cyber-kittens"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`

	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	// Storage vacío => postgres si hay DB_DSN, si no memory.
	Storage     string `env:"STORAGE"`
	DatabaseDSN string `env:"DB_DSN"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"cyber-kittens.db"`

	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load lee un .env opcional (dotenvPath vacío = ".env") y luego el entorno del proceso.
// Las variables ya definidas en el entorno tienen prioridad sobre el archivo.
func Load(dotenvPath string) (Config, error) {
	if strings.TrimSpace(dotenvPath) == "" {
		dotenvPath = ".env"
	}
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate normaliza Storage y revisa combinaciones inválidas.
func (c *Config) Validate() error {
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	if c.Storage == "" {
		if strings.TrimSpace(c.DatabaseDSN) != "" {
			c.Storage = StoragePostgres
		} else {
			c.Storage = StorageMemory
		}
	}

	switch c.Storage {
	case StorageMemory:
	case StoragePostgres:
		if strings.TrimSpace(c.DatabaseDSN) == "" {
			return errors.New("config: DB_DSN is required for postgres storage")
		}
	case StorageSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return errors.New("config: SQLITE_PATH is required for sqlite storage")
		}
	default:
		return fmt.Errorf("config: unknown STORAGE %q", c.Storage)
	}

	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("config: JWT_SECRET must not be empty")
	}
	if c.JWTTTL <= 0 {
		return errors.New("config: JWT_TTL must be positive")
	}
	return nil
}

// InsecureSecret indica si se está usando el secreto compilado por defecto.
func (c Config) InsecureSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
}
