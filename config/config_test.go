package config_test

import (
	"slices"
	"testing"
	"time"

	cfg "github.com/Gunvolt24/jersey_checkout/config"
)

// TestLoadWithPrefix_Defaults: проверка наличия значений по умолчанию.
func TestLoadWithPrefix_Defaults(t *testing.T) {
	t.Parallel()

	c, err := cfg.LoadWithPrefix("CHECKOUT_TEST_DEFAULTS")
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	// HTTP
	if c.HTTP.Addr != ":8080" || c.HTTP.GinMode != "debug" {
		t.Fatalf("HTTP defaults wrong: %+v", c.HTTP)
	}
	if c.HTTP.HandlerTimeout != 15*time.Second || c.HTTP.GracefulTimeout != 10*time.Second {
		t.Fatalf("HTTP timeouts wrong: %+v", c.HTTP)
	}
	if c.HTTP.MaxBodyBytes != 64*1024 {
		t.Fatalf("HTTP.MaxBodyBytes: want 65536, got %d", c.HTTP.MaxBodyBytes)
	}
	if !slices.Equal(c.HTTP.AllowedOrigins, []string{"*"}) {
		t.Fatalf("HTTP.AllowedOrigins: want [*], got %v", c.HTTP.AllowedOrigins)
	}

	// Tracing
	if c.Tracing.Enabled || c.Tracing.ServiceName != "jersey-checkout" || c.Tracing.SampleRatio != 1 {
		t.Fatalf("Tracing defaults wrong: %+v", c.Tracing)
	}

	// Catalog / Postgres
	if c.Catalog.Source != "static" {
		t.Fatalf("Catalog.Source: want static, got %q", c.Catalog.Source)
	}
	if c.Postgres.DSN == "" || c.Postgres.MaxConns != 10 || !c.Postgres.Migrate {
		t.Fatalf("Postgres defaults wrong: %+v", c.Postgres)
	}

	// Kafka: по умолчанию публикация выключена
	if len(c.Kafka.Brokers) != 0 {
		t.Fatalf("Kafka.Brokers: want empty, got %v", c.Kafka.Brokers)
	}
	if c.Kafka.Topic != "payment-intents" || c.Kafka.QueueSize != 256 || c.Kafka.MaxAttempts != 5 {
		t.Fatalf("Kafka defaults wrong: %+v", c.Kafka)
	}

	// Cache
	if c.Cache.Capacity != 1000 || c.Cache.TTL != 10*time.Minute {
		t.Fatalf("Cache defaults wrong: %+v", c.Cache)
	}

	// Stripe
	if c.Stripe.SecretKey != "" || c.Stripe.Currency != "brl" || c.Stripe.Timeout != 10*time.Second || c.Stripe.Required {
		t.Fatalf("Stripe defaults wrong: %+v", c.Stripe)
	}

	// Pricing
	if c.Pricing.MaxQuantity != 10 || !slices.Equal(c.Pricing.Sizes, []string{"P", "M", "G", "GG"}) {
		t.Fatalf("Pricing defaults wrong: %+v", c.Pricing)
	}

	// Logger
	if c.Logger.IsProd {
		t.Fatalf("Logger.IsProd: want false, got true")
	}
}

// Меняем окружение.
func TestLoadWithPrefix_Overrides(t *testing.T) {
	const p = "CHECKOUT_TEST_OVR"

	t.Setenv(p+"_HTTP_ADDR", ":9999")
	t.Setenv(p+"_HTTP_GIN_MODE", "release")
	t.Setenv(p+"_HTTP_HANDLER_TIMEOUT", "4500ms")
	t.Setenv(p+"_HTTP_MAX_BODY_BYTES", "1024")
	t.Setenv(p+"_HTTP_ALLOWED_ORIGINS", "https://shop.example,http://localhost:3000")

	t.Setenv(p+"_TRACING_OTEL_ENABLED", "true")
	t.Setenv(p+"_TRACING_OTEL_SAMPLE_RATIO", "0.25")

	t.Setenv(p+"_CATALOG_SOURCE", "postgres")
	t.Setenv(p+"_POSTGRES_DSN", "postgres://u:p@h:5432/db?sslmode=disable")
	t.Setenv(p+"_POSTGRES_MIGRATE", "false")

	t.Setenv(p+"_KAFKA_BROKERS", "k1:9092,k2:9093")
	t.Setenv(p+"_KAFKA_TOPIC", "pi-test")

	t.Setenv(p+"_STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv(p+"_STRIPE_TIMEOUT", "3s")
	t.Setenv(p+"_STRIPE_REQUIRED", "true")

	t.Setenv(p+"_PRICING_MAX_QUANTITY", "5")
	t.Setenv(p+"_PRICING_SIZES", "M,G")

	t.Setenv(p+"_LOGGER_IS_PROD", "true")

	c, err := cfg.LoadWithPrefix(p)
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	if c.HTTP.Addr != ":9999" || c.HTTP.GinMode != "release" ||
		c.HTTP.HandlerTimeout != 4500*time.Millisecond || c.HTTP.MaxBodyBytes != 1024 {
		t.Fatalf("HTTP overrides wrong: %+v", c.HTTP)
	}
	if !slices.Equal(c.HTTP.AllowedOrigins, []string{"https://shop.example", "http://localhost:3000"}) {
		t.Fatalf("HTTP.AllowedOrigins override wrong: %v", c.HTTP.AllowedOrigins)
	}
	if !c.Tracing.Enabled || c.Tracing.SampleRatio != 0.25 {
		t.Fatalf("Tracing overrides wrong: %+v", c.Tracing)
	}
	if c.Catalog.Source != "postgres" || c.Postgres.Migrate ||
		c.Postgres.DSN != "postgres://u:p@h:5432/db?sslmode=disable" {
		t.Fatalf("Catalog/Postgres overrides wrong: %+v %+v", c.Catalog, c.Postgres)
	}
	if !slices.Equal(c.Kafka.Brokers, []string{"k1:9092", "k2:9093"}) || c.Kafka.Topic != "pi-test" {
		t.Fatalf("Kafka overrides wrong: %+v", c.Kafka)
	}
	if c.Stripe.SecretKey != "sk_test_123" || c.Stripe.Timeout != 3*time.Second || !c.Stripe.Required {
		t.Fatalf("Stripe overrides wrong: %+v", c.Stripe)
	}
	if c.Pricing.MaxQuantity != 5 || !slices.Equal(c.Pricing.Sizes, []string{"M", "G"}) {
		t.Fatalf("Pricing overrides wrong: %+v", c.Pricing)
	}
	if !c.Logger.IsProd {
		t.Fatalf("Logger.IsProd override wrong: %+v", c.Logger)
	}
}

// Тоже меняем окружение: но с невалидным значением.
func TestLoadWithPrefix_InvalidValue_ReturnsError(t *testing.T) {
	const p = "CHECKOUT_TEST_BAD"
	t.Setenv(p+"_STRIPE_TIMEOUT", "not-a-duration")

	if _, err := cfg.LoadWithPrefix(p); err == nil {
		t.Fatalf("expected error for invalid duration, got nil")
	}
}
