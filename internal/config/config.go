package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contains all runtime settings for the courtside match service.
type Config struct {
	BindAddr                 string
	ShutdownTimeout          time.Duration
	SessionInactivityTimeout time.Duration
	MetricsNamespace         string

	AllowAnyOrigin bool

	// Speech engine backend: auto | espeak | mock.
	SpeechBackend string
	EspeakBinary  string

	NarratorEnabled   bool
	NarratorStyle     string
	NarratorVoiceName string
	NarratorLang      string
	// Narrator chunking profile: desktop | mobile. Mobile engines get a
	// smaller chunk budget.
	NarratorProfile string
	// 0 means "use the profile default".
	NarratorMaxChunkChars int

	MatchDuration     time.Duration
	CountdownInterval time.Duration

	DatabaseURL string
	RedisAddr   string
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:         envOrDefault("APP_BIND_ADDR", ":8080"),
		MetricsNamespace: envOrDefault("APP_METRICS_NAMESPACE", "courtside"),
		AllowAnyOrigin:   false,

		SpeechBackend: envOrDefault("SPEECH_BACKEND", "auto"),
		EspeakBinary:  envOrDefault("SPEECH_ESPEAK_BINARY", "espeak-ng"),

		NarratorEnabled:   true,
		NarratorStyle:     envOrDefault("NARRATOR_STYLE", "energetic"),
		NarratorVoiceName: stringsTrimSpace("NARRATOR_VOICE_NAME"),
		NarratorLang:      envOrDefault("NARRATOR_LANG", "en"),
		NarratorProfile:   envOrDefault("NARRATOR_PROFILE", "desktop"),

		MatchDuration:     10 * time.Minute,
		CountdownInterval: time.Second,

		DatabaseURL: stringsTrimSpace("DATABASE_URL"),
		RedisAddr:   stringsTrimSpace("REDIS_ADDR"),

		ShutdownTimeout:          15 * time.Second,
		SessionInactivityTimeout: 30 * time.Minute,
	}

	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionInactivityTimeout, err = durationFromEnv("APP_SESSION_INACTIVITY_TIMEOUT", cfg.SessionInactivityTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.MatchDuration, err = durationFromEnv("MATCH_DURATION", cfg.MatchDuration)
	if err != nil {
		return Config{}, err
	}
	cfg.CountdownInterval, err = durationFromEnv("MATCH_COUNTDOWN_INTERVAL", cfg.CountdownInterval)
	if err != nil {
		return Config{}, err
	}
	cfg.AllowAnyOrigin, err = boolFromEnv("APP_ALLOW_ANY_ORIGIN", cfg.AllowAnyOrigin)
	if err != nil {
		return Config{}, err
	}
	cfg.NarratorEnabled, err = boolFromEnv("NARRATOR_ENABLED", cfg.NarratorEnabled)
	if err != nil {
		return Config{}, err
	}
	cfg.NarratorMaxChunkChars, err = intFromEnv("NARRATOR_MAX_CHUNK_CHARS", cfg.NarratorMaxChunkChars)
	if err != nil {
		return Config{}, err
	}

	switch strings.ToLower(strings.TrimSpace(cfg.NarratorStyle)) {
	case "energetic", "plain":
	default:
		return Config{}, fmt.Errorf("NARRATOR_STYLE must be energetic or plain, got %q", cfg.NarratorStyle)
	}
	switch strings.ToLower(strings.TrimSpace(cfg.NarratorProfile)) {
	case "desktop", "mobile":
	default:
		return Config{}, fmt.Errorf("NARRATOR_PROFILE must be desktop or mobile, got %q", cfg.NarratorProfile)
	}
	if cfg.SessionInactivityTimeout < 5*time.Second {
		return Config{}, fmt.Errorf("APP_SESSION_INACTIVITY_TIMEOUT must be at least 5s")
	}
	if cfg.MatchDuration < time.Second {
		return Config{}, fmt.Errorf("MATCH_DURATION must be at least 1s")
	}
	if cfg.CountdownInterval <= 0 {
		return Config{}, fmt.Errorf("MATCH_COUNTDOWN_INTERVAL must be positive")
	}
	if cfg.NarratorMaxChunkChars < 0 {
		return Config{}, fmt.Errorf("NARRATOR_MAX_CHUNK_CHARS must be >= 0")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func stringsTrimSpace(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := stringsTrimSpace(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	v := stringsTrimSpace(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return n, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	v := strings.ToLower(stringsTrimSpace(key))
	if v == "" {
		return fallback, nil
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s parse error: expected bool", key)
	}
}
