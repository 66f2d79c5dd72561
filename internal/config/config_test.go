package config

import (
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ARBITER_PORT", "NATS_URL", "NATS_TOKEN", "DATABASE_URL", "LOG_LEVEL",
		"ANTHROPIC_API_KEY", "ARBITER_JUDGE_MODEL", "ARBITER_JUDGE_TEMPERATURE",
		"ARBITER_API_TOKEN",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.Port != 8760 {
		t.Errorf("expected default port 8760, got %d", cfg.Port)
	}
	if cfg.NatsURL != "nats://localhost:4222" {
		t.Errorf("unexpected default nats url: %q", cfg.NatsURL)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %q", cfg.LogLevel)
	}
	if cfg.JudgeTemperature != 0 {
		t.Errorf("expected default temperature 0, got %f", cfg.JudgeTemperature)
	}
	if cfg.JudgeModel == "" {
		t.Error("expected a default judge model")
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ARBITER_PORT", "9000")
	t.Setenv("ARBITER_JUDGE_TEMPERATURE", "0.7")
	t.Setenv("ARBITER_JUDGE_MODEL", "test-model")

	cfg := Load()

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.JudgeTemperature != 0.7 {
		t.Errorf("expected temperature 0.7, got %f", cfg.JudgeTemperature)
	}
	if cfg.JudgeModel != "test-model" {
		t.Errorf("expected judge model test-model, got %q", cfg.JudgeModel)
	}
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("ARBITER_PORT", "not-a-number")
	t.Setenv("ARBITER_JUDGE_TEMPERATURE", "warm")

	cfg := Load()

	if cfg.Port != 8760 {
		t.Errorf("expected fallback port 8760, got %d", cfg.Port)
	}
	if cfg.JudgeTemperature != 0 {
		t.Errorf("expected fallback temperature 0, got %f", cfg.JudgeTemperature)
	}
}

func TestValidate_MissingCredentials(t *testing.T) {
	clearEnv(t)

	err := Load().Validate()
	if err == nil {
		t.Fatal("expected error for missing credentials")
	}
	if !strings.Contains(err.Error(), "ANTHROPIC_API_KEY") {
		t.Errorf("error should name ANTHROPIC_API_KEY, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Errorf("error should name DATABASE_URL, got %q", err.Error())
	}
}

func TestValidate_Complete(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("DATABASE_URL", "postgres://localhost/arbiter")

	if err := Load().Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
