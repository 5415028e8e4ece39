package app

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/courtsideapp/courtside/internal/badges"
	"github.com/courtsideapp/courtside/internal/coins"
	"github.com/courtsideapp/courtside/internal/commentary"
	"github.com/courtsideapp/courtside/internal/config"
	"github.com/courtsideapp/courtside/internal/httpapi"
	"github.com/courtsideapp/courtside/internal/live"
	"github.com/courtsideapp/courtside/internal/match"
	"github.com/courtsideapp/courtside/internal/observability"
	"github.com/courtsideapp/courtside/internal/roster"
	"github.com/courtsideapp/courtside/internal/session"
	"github.com/courtsideapp/courtside/internal/speech"
	"github.com/courtsideapp/courtside/internal/stats"
)

type BuildResult struct {
	Config       config.Config
	API          *httpapi.Server
	Sessions     *session.Manager
	Orchestrator *live.Orchestrator
	Narrator     *speech.Narrator
	Metrics      *observability.Metrics

	// SpeechBackend is the backend actually in use after auto-detection.
	SpeechBackend string

	// Cleanup should be called on shutdown to release external resources.
	Cleanup func() error
}

func Build(ctx context.Context, cfg config.Config) (*BuildResult, error) {
	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	store, err := roster.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("roster store init failed: %w", err)
	}

	synth, speechBackend, err := speech.NewSynthesizer(cfg.SpeechBackend, cfg.EspeakBinary)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("speech backend init failed: %w", err)
	}
	log.Printf("speech backend: %s", speechBackend)

	composer := commentary.NewComposer(commentary.Style(cfg.NarratorStyle), rand.New(rand.NewSource(time.Now().UnixNano())))
	rate, pitch := composer.Delivery()
	narrator := speech.NewNarrator(synth, speech.NarratorConfig{
		Enabled:       cfg.NarratorEnabled,
		Profile:       cfg.NarratorProfile,
		Lang:          cfg.NarratorLang,
		PreferredName: cfg.NarratorVoiceName,
		Rate:          rate,
		Pitch:         pitch,
		Metrics:       metrics,
	})

	badgeStore, coinStore, redisClient, err := progressionStores(ctx, cfg)
	if err != nil {
		narrator.Close()
		_ = store.Close()
		return nil, err
	}

	sessions := session.NewManager(cfg.SessionInactivityTimeout)
	orchestrator := live.NewOrchestrator(live.Deps{
		Sessions: sessions,
		Store:    store,
		Narrator: narrator,
		Composer: composer,
		Badges:   badges.NewService(badgeStore, metrics),
		Coins:    coins.NewLedger(coinStore),
		Stats:    stats.NewRecorder(store),
		Metrics:  metrics,
		MatchCfg: match.Config{
			Duration: cfg.MatchDuration,
			Tick:     cfg.CountdownInterval,
		},
		MaxChunkChars: cfg.NarratorMaxChunkChars,
	})
	sessions.SetExpireHook(func(s *session.Session) {
		orchestrator.TeardownSession(s)
		metrics.SessionEvents.WithLabelValues("expired").Inc()
		metrics.ActiveSessions.Set(float64(sessions.ActiveCount()))
	})

	api := httpapi.New(cfg, sessions, orchestrator, store, narrator, metrics)

	cleanup := func() error {
		var errs []string
		narrator.Close()
		if err := badgeStore.Close(); err != nil {
			errs = append(errs, err.Error())
		}
		if err := coinStore.Close(); err != nil {
			errs = append(errs, err.Error())
		}
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				errs = append(errs, err.Error())
			}
		}
		_ = store.Close()
		if len(errs) > 0 {
			return fmt.Errorf("%s", strings.Join(errs, "; "))
		}
		return nil
	}

	return &BuildResult{
		Config:        cfg,
		API:           api,
		Sessions:      sessions,
		Orchestrator:  orchestrator,
		Narrator:      narrator,
		Metrics:       metrics,
		SpeechBackend: speechBackend,
		Cleanup:       cleanup,
	}, nil
}

// progressionStores picks Redis-backed badge and coin stores when a
// Redis address is configured, in-memory otherwise.
func progressionStores(ctx context.Context, cfg config.Config) (badges.Store, coins.Store, *redis.Client, error) {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		log.Printf("progression store: in-memory (REDIS_ADDR not set)")
		return badges.NewInMemoryStore(), coins.NewInMemoryStore(), nil, nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, nil, fmt.Errorf("redis ping failed: %w", err)
	}

	badgeStore, err := badges.NewRedis(&badges.RedisConfig{RedisClient: client})
	if err != nil {
		_ = client.Close()
		return nil, nil, nil, fmt.Errorf("badge store init failed: %w", err)
	}
	coinStore, err := coins.NewRedis(&coins.RedisConfig{RedisClient: client})
	if err != nil {
		_ = client.Close()
		return nil, nil, nil, fmt.Errorf("coin store init failed: %w", err)
	}
	log.Printf("progression store: redis at %s", addr)
	return badgeStore, coinStore, client, nil
}
