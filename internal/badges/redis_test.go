package badges

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStore(t *testing.T) Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store, err := NewRedis(&RedisConfig{RedisClient: client})
	if err != nil {
		t.Fatalf("new redis store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRedisAwardIsIdempotent(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	fresh, err := store.Award(ctx, "Leo", FirstWin)
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	if !fresh {
		t.Fatalf("first award should be fresh")
	}
	fresh, err = store.Award(ctx, "Leo", FirstWin)
	if err != nil {
		t.Fatalf("award again: %v", err)
	}
	if fresh {
		t.Fatalf("repeat award reported as fresh")
	}

	earned, err := store.Earned(ctx, "Leo")
	if err != nil {
		t.Fatalf("earned: %v", err)
	}
	if len(earned) != 1 || earned[0] != FirstWin {
		t.Fatalf("earned = %v, want just first win", earned)
	}
}

func TestRedisWinStreakLifecycle(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	streak, err := store.WinStreak(ctx, "Leo")
	if err != nil {
		t.Fatalf("streak: %v", err)
	}
	if streak != 0 {
		t.Fatalf("fresh player streak = %d, want 0", streak)
	}

	for want := 1; want <= 3; want++ {
		got, err := store.BumpWinStreak(ctx, "Leo")
		if err != nil {
			t.Fatalf("bump: %v", err)
		}
		if got != want {
			t.Fatalf("bump = %d, want %d", got, want)
		}
	}

	if err := store.ResetWinStreak(ctx, "Leo"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	streak, err = store.WinStreak(ctx, "Leo")
	if err != nil {
		t.Fatalf("streak after reset: %v", err)
	}
	if streak != 0 {
		t.Fatalf("streak after reset = %d, want 0", streak)
	}
}

func TestRedisStoresIsolatePlayers(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	if _, err := store.Award(ctx, "Leo", MatchMVP); err != nil {
		t.Fatalf("award: %v", err)
	}
	earned, err := store.Earned(ctx, "Rafa")
	if err != nil {
		t.Fatalf("earned: %v", err)
	}
	if len(earned) != 0 {
		t.Fatalf("badge leaked between players: %v", earned)
	}
}
