package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "DB_DRIVER", "REDIS_ADDR", "JWT_TTL", "MIRROR_KEY", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Server.Port != "5000" {
		t.Errorf("expected port 5000, got %s", cfg.Server.Port)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("expected postgres driver, got %s", cfg.Database.Driver)
	}
	if cfg.Redis.Enabled() {
		t.Error("expected redis to be disabled without an address")
	}
	if cfg.Auth.TokenTTL != 7*24*time.Hour {
		t.Errorf("expected 7 day token ttl, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Mirror.Key != "wanderlust_builtin_state_v1" {
		t.Errorf("unexpected mirror key %q", cfg.Mirror.Key)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Errorf("expected wildcard origin, got %v", cfg.Server.AllowedOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "mongo")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("AUTH_RATE_LIMIT_RPS", "2.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("BCRYPT_COST", "not-a-number")

	cfg := Load()

	if cfg.Database.Driver != DriverMongo {
		t.Errorf("expected mongo driver, got %s", cfg.Database.Driver)
	}
	if !cfg.Redis.Enabled() {
		t.Error("expected redis to be enabled")
	}
	if cfg.Auth.TokenTTL != time.Hour {
		t.Errorf("expected 1h ttl, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.RateLimit.RPS != 2.5 {
		t.Errorf("expected rps 2.5, got %v", cfg.RateLimit.RPS)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("unexpected origins %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Auth.BcryptCost != 0 {
		t.Errorf("expected invalid cost to fall back to 0, got %d", cfg.Auth.BcryptCost)
	}
}
