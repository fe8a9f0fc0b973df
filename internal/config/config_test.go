package config

import (
	"os"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 8080},
		Postgres: PostgresConfig{DSN: "postgres://localhost:5432/movies"},
		Redis:    RedisConfig{Addrs: []string{"localhost:6379"}},
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing port")
	}
}

func TestValidate_MissingDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Postgres.DSN = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing postgres dsn")
	}
}

func TestValidate_MissingRedisAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Redis.Addrs = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing redis addrs")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.APIKey = "emb-key"
	cfg.ApplyDefaults()

	if cfg.Ingest.BatchSize != 256 {
		t.Errorf("expected default batch size 256, got %d", cfg.Ingest.BatchSize)
	}
	if cfg.Embedding.Model != "BAAI/bge-m3" {
		t.Errorf("unexpected default embedding model: %q", cfg.Embedding.Model)
	}
	if cfg.Embedding.Dimensions != 1024 {
		t.Errorf("unexpected default dimensions: %d", cfg.Embedding.Dimensions)
	}
	if cfg.LLM.APIKey != "emb-key" {
		t.Errorf("llm api key should fall back to embedding api key, got %q", cfg.LLM.APIKey)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("unexpected default shutdown timeout: %d", cfg.HTTP.ShutdownSec)
	}
}

func TestExpandEnvVars(t *testing.T) {
	os.Setenv("MOVIEDEX_TEST_VAR", "hello")
	defer os.Unsetenv("MOVIEDEX_TEST_VAR")

	got := string(expandEnvVars([]byte("a: ${MOVIEDEX_TEST_VAR}")))
	if got != "a: hello" {
		t.Errorf("got %q", got)
	}

	got = string(expandEnvVars([]byte("b: ${MOVIEDEX_UNSET_VAR:-fallback}")))
	if got != "b: fallback" {
		t.Errorf("got %q", got)
	}
}
