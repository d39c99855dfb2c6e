package config

import (
	"strings"
	"testing"
)

func validLocal() Config {
	return Config{
		App:     AppConfig{Env: "local", Port: 8080},
		DB:      DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "x", Name: "billing", SSLMode: "disable"},
		Redis:   RedisConfig{Host: "localhost", Port: 6379},
		Auth:    AuthConfig{JWTSecret: "secret"},
		Billing: BillingConfig{Currency: "USD"},
	}
}

func TestValidate_ReportsMissingRequired(t *testing.T) {
	c := Config{}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestValidate_ProductionRequiresSSLMode(t *testing.T) {
	c := validLocal()
	c.App.Env = "production"
	c.DB.SSLMode = ""
	err := c.Validate()
	if err == nil {
		t.Fatalf("expected error for production without DB_SSLMODE")
	}
	if !strings.Contains(err.Error(), "DB_SSLMODE") {
		t.Fatalf("expected DB_SSLMODE in error, got %v", err)
	}
}

func TestValidate_LocalConfigPasses(t *testing.T) {
	c := validLocal()
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidate_RejectsBadCurrency(t *testing.T) {
	c := validLocal()
	c.Billing.Currency = "DOLLARS"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for non-ISO currency")
	}
}

func TestHTTPAddrAndRedisAddr(t *testing.T) {
	c := validLocal()
	if c.HTTPAddr() != ":8080" {
		t.Fatalf("unexpected addr %q", c.HTTPAddr())
	}
	if c.RedisAddr() != "localhost:6379" {
		t.Fatalf("unexpected redis addr %q", c.RedisAddr())
	}
}
