package config

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is shared by the storefront CLI and the catalog stand-in.
type Config struct {
	// client
	BackendURL      string        `yaml:"backend_url"`
	RequestTimeout  time.Duration `yaml:"-"`
	StoreDSN        string        `yaml:"store_dsn"`
	CustomerEmail   string        `yaml:"customer_email"`
	AdminEmail      string        `yaml:"admin_email"`
	BreakerFailures int           `yaml:"breaker_failures"`
	BreakerCooldown time.Duration `yaml:"-"`
	LogFile         string        `yaml:"log_file"`

	// catalog stand-in
	Port          string        `yaml:"port"`
	DBDSN         string        `yaml:"db_dsn"`
	JWTSecret     string        `yaml:"jwt_secret"`
	TokenTTL      time.Duration `yaml:"-"`
	PaymentURL    string        `yaml:"payment_url"`
	AdminPassword string        `yaml:"admin_password"`

	RequestTimeoutRaw  string `yaml:"request_timeout"`
	BreakerCooldownRaw string `yaml:"breaker_cooldown"`
	TokenTTLRaw        string `yaml:"token_ttl"`
}

func defaults() Config {
	return Config{
		BackendURL:         "http://localhost:8000",
		RequestTimeoutRaw:  "10s",
		StoreDSN:           "woodenmart-local.db",
		CustomerEmail:      "customer@example.com",
		AdminEmail:         "woodenmart@gmail.com",
		BreakerFailures:    5,
		BreakerCooldownRaw: "30s",
		LogFile:            "./woodenmart.log",
		Port:               "8000",
		DBDSN:              "woodenmart.db",
		JWTSecret:          "change-me",
		TokenTTLRaw:        "12h",
		AdminPassword:      "woodenmart@1",
	}
}

// Load resolves configuration: built-in defaults, then the optional YAML file named by
// WOODENMART_CONFIG, then environment variables.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("WOODENMART_CONFIG"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	str("BACKEND_URL", &cfg.BackendURL)
	str("REQUEST_TIMEOUT", &cfg.RequestTimeoutRaw)
	str("STORE_DSN", &cfg.StoreDSN)
	str("CUSTOMER_EMAIL", &cfg.CustomerEmail)
	str("ADMIN_EMAIL", &cfg.AdminEmail)
	str("BREAKER_COOLDOWN", &cfg.BreakerCooldownRaw)
	str("LOG_FILE", &cfg.LogFile)
	str("PORT", &cfg.Port)
	str("DB_DSN", &cfg.DBDSN)
	str("JWT_SECRET", &cfg.JWTSecret)
	str("TOKEN_TTL", &cfg.TokenTTLRaw)
	str("PAYMENT_URL", &cfg.PaymentURL)
	str("ADMIN_PASSWORD", &cfg.AdminPassword)
	if v := os.Getenv("BREAKER_FAILURES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("parsing BREAKER_FAILURES %q: %w", v, err)
		}
		cfg.BreakerFailures = n
	}

	if err := parseDurations(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing durations: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validating config: %w", err)
	}

	log.Printf("[config] BACKEND_URL=%s REQUEST_TIMEOUT=%s STORE_DSN=%s PORT=%s DB_DSN=%s LOG_FILE=%s PAYMENT_URL=%q",
		cfg.BackendURL, cfg.RequestTimeout, cfg.StoreDSN, cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.PaymentURL)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

var envRef = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} with the variable's value, or "" when unset.
func expandEnvVars(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envRef.FindStringSubmatch(match)[1])
	})
}

func parseDurations(cfg *Config) error {
	var err error
	if cfg.RequestTimeout, err = time.ParseDuration(cfg.RequestTimeoutRaw); err != nil {
		return fmt.Errorf("request_timeout %q: %w", cfg.RequestTimeoutRaw, err)
	}
	if cfg.BreakerCooldown, err = time.ParseDuration(cfg.BreakerCooldownRaw); err != nil {
		return fmt.Errorf("breaker_cooldown %q: %w", cfg.BreakerCooldownRaw, err)
	}
	if cfg.TokenTTL, err = time.ParseDuration(cfg.TokenTTLRaw); err != nil {
		return fmt.Errorf("token_ttl %q: %w", cfg.TokenTTLRaw, err)
	}
	return nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("backend_url is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	if c.BreakerFailures < 1 {
		return fmt.Errorf("breaker_failures must be at least 1")
	}
	return nil
}
