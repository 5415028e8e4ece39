package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	setCoreEnvEmpty(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BindAddr != ":8080" {
		t.Fatalf("BindAddr = %q, want %q", cfg.BindAddr, ":8080")
	}
	if cfg.MatchDuration != 10*time.Minute {
		t.Fatalf("MatchDuration = %v, want %v", cfg.MatchDuration, 10*time.Minute)
	}
	if cfg.CountdownInterval != time.Second {
		t.Fatalf("CountdownInterval = %v, want %v", cfg.CountdownInterval, time.Second)
	}
	if !cfg.NarratorEnabled {
		t.Fatalf("NarratorEnabled = false, want true by default")
	}
	if cfg.NarratorStyle != "energetic" {
		t.Fatalf("NarratorStyle = %q, want %q", cfg.NarratorStyle, "energetic")
	}
	if cfg.NarratorProfile != "desktop" {
		t.Fatalf("NarratorProfile = %q, want %q", cfg.NarratorProfile, "desktop")
	}
	if cfg.SpeechBackend != "auto" {
		t.Fatalf("SpeechBackend = %q, want %q", cfg.SpeechBackend, "auto")
	}
}

func TestLoadRejectsUnknownNarratorStyle(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("NARRATOR_STYLE", "shouty")

	if _, err := Load(); err == nil {
		t.Fatalf("Load() should reject NARRATOR_STYLE=shouty")
	}
}

func TestLoadRejectsUnknownNarratorProfile(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("NARRATOR_PROFILE", "tablet")

	if _, err := Load(); err == nil {
		t.Fatalf("Load() should reject NARRATOR_PROFILE=tablet")
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("MATCH_DURATION", "90s")
	t.Setenv("NARRATOR_ENABLED", "false")
	t.Setenv("NARRATOR_MAX_CHUNK_CHARS", "120")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MatchDuration != 90*time.Second {
		t.Fatalf("MatchDuration = %v, want 90s", cfg.MatchDuration)
	}
	if cfg.NarratorEnabled {
		t.Fatalf("NarratorEnabled = true, want false")
	}
	if cfg.NarratorMaxChunkChars != 120 {
		t.Fatalf("NarratorMaxChunkChars = %d, want 120", cfg.NarratorMaxChunkChars)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("RedisAddr = %q, want localhost:6379", cfg.RedisAddr)
	}
}

func setCoreEnvEmpty(t *testing.T) {
	t.Helper()
	keys := []string{
		"APP_BIND_ADDR",
		"APP_SHUTDOWN_TIMEOUT",
		"APP_SESSION_INACTIVITY_TIMEOUT",
		"APP_METRICS_NAMESPACE",
		"APP_ALLOW_ANY_ORIGIN",
		"SPEECH_BACKEND",
		"SPEECH_ESPEAK_BINARY",
		"NARRATOR_ENABLED",
		"NARRATOR_STYLE",
		"NARRATOR_VOICE_NAME",
		"NARRATOR_LANG",
		"NARRATOR_PROFILE",
		"NARRATOR_MAX_CHUNK_CHARS",
		"MATCH_DURATION",
		"MATCH_COUNTDOWN_INTERVAL",
		"DATABASE_URL",
		"REDIS_ADDR",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}
