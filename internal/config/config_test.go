package config

import (
	"testing"
	"time"
)

func TestLoadAPIFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/homestead")
	t.Setenv("PORT", "")
	t.Setenv("HOMESTEAD_API_ADDR", "")
	t.Setenv("HOMESTEAD_NARRATIVE_TIMEOUT", "")

	cfg, err := LoadAPIFromEnv()
	if err != nil {
		t.Fatalf("LoadAPIFromEnv: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("addr = %s", cfg.Addr)
	}
	if cfg.NarrativeTimeout != 10*time.Second {
		t.Fatalf("narrative timeout = %s", cfg.NarrativeTimeout)
	}
	if cfg.GeminiModel != "gemini-2.0-flash" {
		t.Fatalf("model = %s", cfg.GeminiModel)
	}
}

func TestLoadAPIFromEnvPortOverride(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/homestead")
	t.Setenv("PORT", "9000")

	cfg, err := LoadAPIFromEnv()
	if err != nil {
		t.Fatalf("LoadAPIFromEnv: %v", err)
	}
	if cfg.Addr != ":9000" {
		t.Fatalf("addr = %s, want :9000", cfg.Addr)
	}
}

func TestLoadAPIFromEnvRequiresDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := LoadAPIFromEnv(); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}

func TestLoadAPIFromEnvParsesTimeout(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/homestead")
	t.Setenv("HOMESTEAD_NARRATIVE_TIMEOUT", "3s")

	cfg, err := LoadAPIFromEnv()
	if err != nil {
		t.Fatalf("LoadAPIFromEnv: %v", err)
	}
	if cfg.NarrativeTimeout != 3*time.Second {
		t.Fatalf("timeout = %s, want 3s", cfg.NarrativeTimeout)
	}
}

func TestLoadCLIFromEnvTrimsSlash(t *testing.T) {
	t.Setenv("HST_API_BASE_URL", "http://farm.example:8080/")
	cfg := LoadCLIFromEnv()
	if cfg.APIBaseURL != "http://farm.example:8080" {
		t.Fatalf("base url = %s", cfg.APIBaseURL)
	}
}
