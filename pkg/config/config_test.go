package config

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "dev" || !cfg.App.IsDev() {
		t.Fatalf("expected App.Env to be dev, got %q", cfg.App.Env)
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("expected default port, got %q", cfg.App.Port)
	}
	if cfg.DB.Driver != DBDriverSQLite {
		t.Fatalf("unexpected driver %q", cfg.DB.Driver)
	}
	if cfg.Redis.Enabled() {
		t.Fatal("expected redis disabled without url or address")
	}
	if got := cfg.Notifications.DismissAfter; got != 5*time.Second {
		t.Fatalf("expected dismiss delay 5s, got %v", got)
	}
	if len(cfg.App.CORSOrigins) != 1 || cfg.App.CORSOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected cors origins %v", cfg.App.CORSOrigins)
	}
	if got := cfg.Cart.SessionTTL; got != 168*time.Hour {
		t.Fatalf("expected session ttl 168h, got %v", got)
	}

	flat, threshold, err := cfg.Cart.Shipping()
	if err != nil {
		t.Fatalf("unexpected shipping error: %v", err)
	}
	if !flat.Equal(decimal.NewFromInt(99)) || !threshold.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("unexpected shipping defaults %s / %s", flat, threshold)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvDBDriver, "mysql")

	if _, err := Load(); err == nil {
		t.Fatal("expected unknown driver to fail")
	}
}

func TestLoad_RejectsBadShipping(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvFlatShipping, "ninety")

	if _, err := Load(); err == nil {
		t.Fatal("expected unparsable shipping to fail")
	}

	t.Setenv(EnvFlatShipping, "-1")
	if _, err := Load(); err == nil {
		t.Fatal("expected negative shipping to fail")
	}
}

func TestLoad_RejectsNonPositiveDismissDelay(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvNotificationDelay, "0s")

	if _, err := Load(); err == nil {
		t.Fatal("expected zero dismiss delay to fail")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "dev")
	t.Setenv(EnvDBDriver, "SQLite")
	t.Setenv(EnvRedisURL, "")
	t.Setenv(EnvRedisAddr, "")
	t.Setenv(EnvFlatShipping, "99")
	t.Setenv(EnvFreeShipping, "2000")
	t.Setenv(EnvNotificationDelay, "5s")
	t.Setenv(EnvCORSOrigins, "http://localhost:3000")
}
