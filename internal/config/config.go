package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ntvhs/portal-backend/internal/platform/envutil"
)

type Database struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

type Admin struct {
	Username string `yaml:"username"`
	// Password is compared by exact match. When PasswordHash is set it
	// takes precedence and is checked with bcrypt instead.
	Password     string `yaml:"password"`
	PasswordHash string `yaml:"password_hash"`
}

type Config struct {
	Port      string        `yaml:"port"`
	LogMode   string        `yaml:"log_mode"`
	MediaRoot string        `yaml:"media_root"`
	JWTSecret string        `yaml:"jwt_secret"`
	AccessTTL time.Duration `yaml:"access_ttl"`
	Database  Database      `yaml:"database"`
	Admin     Admin         `yaml:"admin"`
}

// Load reads config.yaml if present (path from PORTAL_CONFIG, default
// ./config.yaml), then applies environment overrides on top.
func Load() (*Config, error) {
	cfg := &Config{
		Port:      "8080",
		LogMode:   "development",
		MediaRoot: "media",
		JWTSecret: "defaultsecret",
		AccessTTL: 12 * time.Hour,
		Database: Database{
			Host:    "localhost",
			Port:    "5432",
			User:    "postgres",
			Name:    "ntvhs_portal",
			SSLMode: "disable",
		},
		Admin: Admin{
			Username: "admin",
			Password: "admin",
		},
	}

	path := envutil.String("PORTAL_CONFIG", "config.yaml")
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.Port = envutil.String("PORT", cfg.Port)
	cfg.LogMode = envutil.String("LOG_MODE", cfg.LogMode)
	cfg.MediaRoot = envutil.String("MEDIA_ROOT", cfg.MediaRoot)
	cfg.JWTSecret = envutil.String("JWT_SECRET_KEY", cfg.JWTSecret)
	cfg.AccessTTL = envutil.Duration("ACCESS_TOKEN_TTL", cfg.AccessTTL)

	cfg.Database.Host = envutil.String("POSTGRES_HOST", cfg.Database.Host)
	cfg.Database.Port = envutil.String("POSTGRES_PORT", cfg.Database.Port)
	cfg.Database.User = envutil.String("POSTGRES_USER", cfg.Database.User)
	cfg.Database.Password = envutil.String("POSTGRES_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = envutil.String("POSTGRES_NAME", cfg.Database.Name)
	cfg.Database.SSLMode = envutil.String("POSTGRES_SSLMODE", cfg.Database.SSLMode)

	cfg.Admin.Username = envutil.String("ADMIN_USERNAME", cfg.Admin.Username)
	cfg.Admin.Password = envutil.String("ADMIN_PASSWORD", cfg.Admin.Password)
	cfg.Admin.PasswordHash = envutil.String("ADMIN_PASSWORD_HASH", cfg.Admin.PasswordHash)

	return cfg, nil
}

// DSN builds the application connection string.
func (d Database) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// AdminDSN connects to the maintenance database so the application database
// can be created when missing.
func (d Database) AdminDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.SSLMode)
}
