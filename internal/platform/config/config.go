package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreDynamoDB = "dynamodb"

	ProviderNone      = "none"
	ProviderBedrock   = "bedrock"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Addr  string `yaml:"addr"`
	Log   Log    `yaml:"log"`
	Store Store  `yaml:"store"`
	LLM   LLM    `yaml:"llm"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

type Store struct {
	Driver string `yaml:"driver"` // memory | postgres | dynamodb
	DSN    string `yaml:"dsn"`    // postgres
	Table  string `yaml:"table"`  // dynamodb
	Region string `yaml:"region"` // dynamodb
}

type LLM struct {
	Provider string        `yaml:"provider"` // none | bedrock | gemini | anthropic
	Model    string        `yaml:"model"`
	APIKey   string        `yaml:"api_key"`
	BaseURL  string        `yaml:"base_url"`
	Region   string        `yaml:"region"`
	Timeout  time.Duration `yaml:"timeout"`

	// Llamadas por segundo al proveedor; 0 = sin límite.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`
}

// Default: store en memoria, tabla PetStore y región us-east-1, sin proveedor LLM.
func Default() Config {
	return Config{
		Addr: ":8080",
		Log: Log{
			Level:  "info",
			Format: "text",
			App:    "petstore-catalog",
		},
		Store: Store{
			Driver: StoreMemory,
			Table:  "PetStore",
			Region: "us-east-1",
		},
		LLM: LLM{
			Provider:  ProviderNone,
			Region:    "us-east-1",
			Timeout:   10 * time.Second,
			RateBurst: 1,
		},
	}
}

// Load lee path (YAML) encima de Default. path vacío = solo defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv pisa la config con variables de entorno. getenv se inyecta para tests.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	if v := strings.TrimSpace(getenv("PORT")); v != "" {
		c.Addr = ":" + v
	}
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("APP_NAME", &c.Log.App)

	str("STORE_DRIVER", &c.Store.Driver)
	str("DYNAMODB_TABLE", &c.Store.Table)
	str("AWS_REGION", &c.Store.Region)
	if v := strings.TrimSpace(getenv("DB_DSN")); v != "" {
		c.Store.DSN = v
		// compat: DB_DSN solo ya implicaba postgres
		if strings.TrimSpace(getenv("STORE_DRIVER")) == "" {
			c.Store.Driver = StorePostgres
		}
	}

	str("LLM_PROVIDER", &c.LLM.Provider)
	str("LLM_MODEL", &c.LLM.Model)
	str("LLM_API_KEY", &c.LLM.APIKey)
	str("LLM_BASE_URL", &c.LLM.BaseURL)
	str("AWS_REGION", &c.LLM.Region)

	if v := strings.TrimSpace(getenv("LLM_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: LLM_TIMEOUT: %v", ErrInvalidConfig, err)
		}
		c.LLM.Timeout = d
	}
	if v := strings.TrimSpace(getenv("LLM_RATE_LIMIT")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: LLM_RATE_LIMIT: %v", ErrInvalidConfig, err)
		}
		c.LLM.RateLimit = f
	}
	if v := strings.TrimSpace(getenv("LLM_RATE_BURST")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: LLM_RATE_BURST: %v", ErrInvalidConfig, err)
		}
		c.LLM.RateBurst = n
	}
	return nil
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case StoreMemory, StoreDynamoDB:
	case StorePostgres:
		if strings.TrimSpace(c.Store.DSN) == "" {
			return fmt.Errorf("%w: postgres store requires dsn", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store driver %q", ErrInvalidConfig, c.Store.Driver)
	}

	switch c.LLM.Provider {
	case ProviderNone, ProviderBedrock:
	case ProviderGemini, ProviderAnthropic:
		if strings.TrimSpace(c.LLM.APIKey) == "" {
			return fmt.Errorf("%w: %s provider requires api_key", ErrInvalidConfig, c.LLM.Provider)
		}
	default:
		return fmt.Errorf("%w: unknown llm provider %q", ErrInvalidConfig, c.LLM.Provider)
	}

	if c.LLM.RateLimit < 0 || c.LLM.RateBurst < 0 {
		return fmt.Errorf("%w: negative rate limit", ErrInvalidConfig)
	}
	return nil
}
