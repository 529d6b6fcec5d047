package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Database.Name != "ticketly_db" {
		t.Errorf("Database.Name = %q, want ticketly_db", cfg.Database.Name)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %q, want localhost:6379", cfg.Redis.Addr)
	}
	if cfg.Kafka.NotificationTopic != "notifications" {
		t.Errorf("Kafka.NotificationTopic = %q, want notifications", cfg.Kafka.NotificationTopic)
	}
	if cfg.GetAPIBasePath() != "/api/v1" {
		t.Errorf("GetAPIBasePath() = %q, want /api/v1", cfg.GetAPIBasePath())
	}
	if cfg.Database.DSN == "" {
		t.Error("Database.DSN not built")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("JWT_EXPIRES_IN", "600")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := Load()

	if cfg.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Port)
	}
	if cfg.JWT.JWTExpiresIn != 10*time.Minute {
		t.Errorf("JWTExpiresIn = %v, want 10m", cfg.JWT.JWTExpiresIn)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Errorf("Kafka.Brokers = %v, want [k1:9092 k2:9092]", cfg.Kafka.Brokers)
	}
	if cfg.RateLimit.Enabled {
		t.Error("RateLimit.Enabled = true, want false")
	}
}

func TestGinModeHelpers(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	cfg := Load()
	if !cfg.IsProduction() || cfg.IsDevelopment() {
		t.Error("release mode should be production")
	}

	t.Setenv("GIN_MODE", "debug")
	cfg = Load()
	if cfg.IsProduction() || !cfg.IsDevelopment() {
		t.Error("debug mode should be development")
	}
}
