package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var DefaultEnvFiles = []string{".env", ".env.local"}

type LogOptions struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"` // json or text
}

type ImportOptions struct {
	BaseDir      string `env:"IMPORT_BASE_DIR" envDefault:"."`
	MaxFileBytes int64  `env:"IMPORT_MAX_FILE_BYTES" envDefault:"10485760"`
}

type SessionOptions struct {
	Storage  string        `env:"SESSION_STORAGE" envDefault:"memory"` // memory or redis
	TTL      time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	Capacity int           `env:"SESSION_CAPACITY" envDefault:"256"`
	RedisURL string        `env:"SESSION_REDIS_URL"`
}

func (s *SessionOptions) Validate() error {
	if s.Storage != "memory" && s.Storage != "redis" {
		return fmt.Errorf("session storage must be 'memory' or 'redis', got '%s'", s.Storage)
	}
	if s.Storage == "redis" && s.RedisURL == "" {
		return fmt.Errorf("SESSION_REDIS_URL is required when session storage is 'redis'")
	}
	if s.TTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", s.TTL)
	}
	if s.Storage == "memory" && s.Capacity <= 0 {
		return fmt.Errorf("session capacity must be positive, got %d", s.Capacity)
	}
	return nil
}

type MetricsOptions struct {
	Enabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	Path    string `env:"METRICS_PATH" envDefault:"/metrics"`
}

type Config struct {
	Port          int    `env:"PORT" envDefault:"8080"`
	DatabaseURL   string `env:"DATABASE_URL,required"`
	DBMaxConns    int32  `env:"DB_MAX_CONNS" envDefault:"10"`
	MigrationsDir string `env:"MIGRATIONS_DIR"`

	Log     LogOptions
	Import  ImportOptions
	Session SessionOptions
	Metrics MetricsOptions
}

// LoadEnvFiles loads the env files that exist. Variables already set in the process win.
func LoadEnvFiles(files []string) (int, error) {
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

// Load reads the env files, then the process environment.
func Load(files []string) (*Config, error) {
	if _, err := LoadEnvFiles(files); err != nil {
		return nil, fmt.Errorf("load env files: %w", err)
	}
	return parse(env.Options{})
}

// FromMap builds a Config from an explicit environment, ignoring the process one.
func FromMap(environment map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (*Config, error) {
	c := &Config{}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if err := c.Session.Validate(); err != nil {
		return fmt.Errorf("session configuration error: %w", err)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("METRICS_PATH must start with '/', got %q", c.Metrics.Path)
	}
	return nil
}

func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) LogrusLogLevel() logrus.Level {
	level, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(c.Log.Level)))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(c.LogrusLogLevel())
	if strings.EqualFold(c.Log.Format, "text") {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}
