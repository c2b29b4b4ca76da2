// Package config loads runtime configuration from environment
// variables, with an optional .env file for local development.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32  `mapstructure:"DB_MIN_CONNS"`

	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	AuthSigningKey string `mapstructure:"AUTH_SIGNING_KEY"`
	TokenTTLHours  int    `mapstructure:"TOKEN_TTL_HOURS"`

	GenAIAPIKey      string  `mapstructure:"GENAI_API_KEY"`
	GenAIBaseURL     string  `mapstructure:"GENAI_BASE_URL"`
	GenAIModel       string  `mapstructure:"GENAI_MODEL"`
	GenAITemperature float64 `mapstructure:"GENAI_TEMPERATURE"`
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("TOKEN_TTL_HOURS", 12)
	v.SetDefault("GENAI_BASE_URL", "https://generativelanguage.googleapis.com")
	v.SetDefault("GENAI_MODEL", "gemini-3-flash-preview")
	v.SetDefault("GENAI_TEMPERATURE", 0.8)

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		// .env is optional; real deployments configure via the environment.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !strings.Contains(err.Error(), "no such file") {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}

	v.AutomaticEnv()
	for _, key := range []string{
		"PORT", "ENV", "DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS",
		"CORS_ORIGINS", "AUTH_SIGNING_KEY", "TOKEN_TTL_HOURS",
		"GENAI_API_KEY", "GENAI_BASE_URL", "GENAI_MODEL", "GENAI_TEMPERATURE",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Viper leaves a comma-joined env value as a single element.
	if len(cfg.CORSOrigins) == 1 && strings.Contains(cfg.CORSOrigins[0], ",") {
		parts := strings.Split(cfg.CORSOrigins[0], ",")
		cfg.CORSOrigins = cfg.CORSOrigins[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, p)
			}
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsDev() bool        { return c.Env == "development" }
func (c *Config) IsProduction() bool { return c.Env == "production" }

func (c *Config) Validate() error {
	if !c.IsDev() && len(c.AuthSigningKey) < 32 {
		return fmt.Errorf("AUTH_SIGNING_KEY must be at least 32 bytes outside development")
	}
	if c.IsProduction() && c.GenAIAPIKey == "" {
		return fmt.Errorf("GENAI_API_KEY is required in production")
	}
	if c.GenAITemperature < 0 || c.GenAITemperature > 2 {
		return fmt.Errorf("GENAI_TEMPERATURE must be between 0 and 2")
	}
	return nil
}
