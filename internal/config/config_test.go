package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8090 {
		t.Errorf("Expected port 8090, got %d", cfg.Server.Port)
	}
	if cfg.API.BaseURL != "http://localhost:8000/api" {
		t.Errorf("Unexpected API base URL %q", cfg.API.BaseURL)
	}
	if !cfg.Business.TaxRate.Equal(decimal.RequireFromString("0.18")) {
		t.Errorf("Expected tax rate 0.18, got %s", cfg.Business.TaxRate)
	}
	if cfg.Business.CurrencySymbol != "S/" {
		t.Errorf("Expected currency symbol S/, got %q", cfg.Business.CurrencySymbol)
	}
	if cfg.Session.Store != "sqlite" {
		t.Errorf("Expected sqlite session store, got %q", cfg.Session.Store)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("API_BASE_URL", "https://store.example.com/api/")
	t.Setenv("API_TIMEOUT", "5")
	t.Setenv("TAX_RATE", "0.10")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("FEATURE_EVENTS", "true")
	t.Setenv("SESSION_STORE", "redis")

	cfg := Load()

	if cfg.Server.Port != 9000 {
		t.Errorf("Expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.API.BaseURL != "https://store.example.com/api" {
		t.Errorf("Expected trailing slash trimmed, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %s", cfg.API.Timeout)
	}
	if !cfg.Business.TaxRate.Equal(decimal.RequireFromString("0.1")) {
		t.Errorf("Expected tax rate 0.10, got %s", cfg.Business.TaxRate)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "kafka-2:9092" {
		t.Errorf("Unexpected brokers %v", cfg.Kafka.Brokers)
	}
	if !cfg.Features.EnableEvents {
		t.Errorf("Expected events enabled")
	}
	if cfg.Session.Store != "redis" {
		t.Errorf("Expected redis session store, got %q", cfg.Session.Store)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("TAX_RATE", "-0.5")
	t.Setenv("FEATURE_EVENTS", "maybe")

	cfg := Load()

	if cfg.Server.Port != 8090 {
		t.Errorf("Expected default port, got %d", cfg.Server.Port)
	}
	if !cfg.Business.TaxRate.Equal(decimal.RequireFromString("0.18")) {
		t.Errorf("Expected default tax rate, got %s", cfg.Business.TaxRate)
	}
	if cfg.Features.EnableEvents {
		t.Errorf("Expected events disabled")
	}
}

func TestDatabaseConnectionString(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "pos", Password: "pw", Name: "acme_pos", SSLMode: "disable"}

	want := "host=db port=5432 user=pos password=pw dbname=acme_pos sslmode=disable"
	if got := d.ConnectionString(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
