package application

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"deskwork-invoice/internal/statement/render"
)

// Config carries service settings. Defaults come from the environment
// and an optional YAML file named by STATEMENT_CONFIG overrides them.
type Config struct {
	HTTPAddr        string `yaml:"http_addr"`
	JWTSecret       string `yaml:"jwt_secret"`
	DefaultTemplate string `yaml:"default_template"`
	MaxBodyBytes    int64  `yaml:"max_body_bytes"`
}

// LoadConfig resolves the service configuration.
func LoadConfig() (Config, error) {
	cfg := Config{
		HTTPAddr:        getenvDefault("HTTP_ADDR", ":8080"),
		JWTSecret:       os.Getenv("AUTH_JWT_SECRET"),
		DefaultTemplate: getenvDefault("STATEMENT_TEMPLATE", render.Overdue.Name),
		MaxBodyBytes:    getenvInt64Default("HTTP_MAX_BODY_BYTES", 1<<20),
	}

	if path := os.Getenv("STATEMENT_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read statement config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse statement config: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.HTTPAddr == "" {
		return errors.New("statement config: empty http addr")
	}
	if _, err := render.LayoutByName(c.DefaultTemplate); err != nil {
		return fmt.Errorf("statement config: %w", err)
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("statement config: max body bytes must be positive")
	}
	return nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt64Default(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
