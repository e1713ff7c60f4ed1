package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORTAL_CONFIG", "does-not-exist.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Database.Name != "ntvhs_portal" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Admin.Username != "admin" || cfg.Admin.Password != "admin" {
		t.Errorf("unexpected admin defaults: %+v", cfg.Admin)
	}
	if cfg.AccessTTL != 12*time.Hour {
		t.Errorf("ttl = %v", cfg.AccessTTL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORTAL_CONFIG", "does-not-exist.yaml")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET_KEY", "override")
	t.Setenv("ACCESS_TOKEN_TTL", "30m")
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("ADMIN_USERNAME", "principal")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || cfg.JWTSecret != "override" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.AccessTTL != 30*time.Minute {
		t.Errorf("ttl = %v", cfg.AccessTTL)
	}
	if cfg.Database.Host != "db.internal" || cfg.Admin.Username != "principal" {
		t.Errorf("nested overrides not applied")
	}
}

func TestDSN(t *testing.T) {
	d := Database{Host: "h", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	want := "postgres://u:p@h:5432/n?sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
	wantAdmin := "postgres://u:p@h:5432/postgres?sslmode=disable"
	if got := d.AdminDSN(); got != wantAdmin {
		t.Errorf("AdminDSN = %q, want %q", got, wantAdmin)
	}
}
