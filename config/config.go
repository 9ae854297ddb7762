package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Database struct {
	URL       string `yaml:"url"`
	Namespace string `yaml:"namespace"`
	Database  string `yaml:"database"`
	User      string `yaml:"user"`
	Pass      string `yaml:"pass"`
}

type JWT struct {
	Secret string
	Expiry time.Duration
}

type Config struct {
	Port      string
	LogPretty bool
	Database  Database
	JWT       JWT
}

// fileConfig is the YAML shape; durations travel as strings.
type fileConfig struct {
	Port      string   `yaml:"port"`
	LogPretty bool     `yaml:"log_pretty"`
	Database  Database `yaml:"database"`
	JWT       struct {
		Secret string `yaml:"secret"`
		Expiry string `yaml:"expiry"`
	} `yaml:"jwt"`
}

// Load builds the configuration from, in order of increasing precedence:
// built-in defaults, an optional YAML file named by NOTEFUL_CONFIG, and
// environment variables. A .env file is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port: "8080",
		Database: Database{
			URL:       "ws://localhost:8000/rpc",
			Namespace: "noteful",
			Database:  "noteful",
		},
		JWT: JWT{
			Secret: "dev-secret",
			Expiry: 7 * 24 * time.Hour,
		},
	}

	if path := os.Getenv("NOTEFUL_CONFIG"); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	setString(&cfg.Port, "PORT")
	setString(&cfg.Database.URL, "DATABASE_URL")
	setString(&cfg.Database.Namespace, "DATABASE_NS")
	setString(&cfg.Database.Database, "DATABASE_DB")
	setString(&cfg.Database.User, "DATABASE_USER")
	setString(&cfg.Database.Pass, "DATABASE_PASS")
	setString(&cfg.JWT.Secret, "JWT_SECRET")
	if v := os.Getenv("JWT_EXPIRY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRY %q: %w", v, err)
		}
		cfg.JWT.Expiry = d
	}
	if v := os.Getenv("LOG_PRETTY"); v == "1" || v == "true" {
		cfg.LogPretty = true
	}

	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if fc.Port != "" {
		cfg.Port = fc.Port
	}
	if fc.LogPretty {
		cfg.LogPretty = true
	}
	if fc.Database.URL != "" {
		cfg.Database.URL = fc.Database.URL
	}
	if fc.Database.Namespace != "" {
		cfg.Database.Namespace = fc.Database.Namespace
	}
	if fc.Database.Database != "" {
		cfg.Database.Database = fc.Database.Database
	}
	if fc.Database.User != "" {
		cfg.Database.User = fc.Database.User
	}
	if fc.Database.Pass != "" {
		cfg.Database.Pass = fc.Database.Pass
	}
	if fc.JWT.Secret != "" {
		cfg.JWT.Secret = fc.JWT.Secret
	}
	if fc.JWT.Expiry != "" {
		d, err := time.ParseDuration(fc.JWT.Expiry)
		if err != nil {
			return fmt.Errorf("invalid jwt.expiry %q: %w", fc.JWT.Expiry, err)
		}
		cfg.JWT.Expiry = d
	}

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
