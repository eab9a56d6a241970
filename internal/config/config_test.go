package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"PORT":                       "",
		"REDIS_URL":                  "",
		"PRICING_DEFAULT_OFFER_TYPE": "",
		"PRICING_CURRENCY_SYMBOL":    "",
		"RATE_LIMIT_WINDOW":          "",
		"RATE_LIMIT_MAX":             "",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr() != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.HTTPAddr())
	}
	if cfg.DefaultOfferType != "regular" {
		t.Fatalf("unexpected default offer type %q", cfg.DefaultOfferType)
	}
	if cfg.CurrencySymbol != "Rp" {
		t.Fatalf("unexpected currency symbol %q", cfg.CurrencySymbol)
	}
	if cfg.RateLimitWindow != time.Minute {
		t.Fatalf("unexpected rate limit window %s", cfg.RateLimitWindow)
	}
	if cfg.RateLimitMax != 120 {
		t.Fatalf("unexpected rate limit max %d", cfg.RateLimitMax)
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"PORT":                       "9090",
		"PRICING_DEFAULT_OFFER_TYPE": "bulk",
		"RATE_LIMIT_WINDOW":          "30s",
		"RATE_LIMIT_MAX":             "5",
		"CORS_ALLOWED_ORIGINS":       "https://a.example, https://b.example",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr() != ":9090" {
		t.Fatalf("unexpected addr %q", cfg.HTTPAddr())
	}
	if cfg.DefaultOfferType != "bulk" {
		t.Fatalf("unexpected offer type %q", cfg.DefaultOfferType)
	}
	if cfg.RateLimitWindow != 30*time.Second || cfg.RateLimitMax != 5 {
		t.Fatalf("unexpected rate limit %s/%d", cfg.RateLimitWindow, cfg.RateLimitMax)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadRejectsUnknownOfferType(t *testing.T) {
	_, err := LoadForTests(map[string]string{
		"PRICING_DEFAULT_OFFER_TYPE": "flash-sale",
	})
	if err == nil {
		t.Fatal("expected error for unknown offer type")
	}
}
