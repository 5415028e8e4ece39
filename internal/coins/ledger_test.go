package coins

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRewardMatch(t *testing.T) {
	store := NewInMemoryStore()
	ledger := NewLedger(store)
	ctx := context.Background()

	err := ledger.RewardMatch(ctx, []string{"Leo", "Marta"}, map[string]int{"Leo": 2, "Rafa": 1})
	if err != nil {
		t.Fatalf("reward: %v", err)
	}

	cases := []struct {
		player string
		want   int
	}{
		{"Leo", WinReward + 2*BadgeReward},
		{"Marta", WinReward},
		{"Rafa", BadgeReward},
		{"Ana", 0},
	}
	for _, tc := range cases {
		got, err := ledger.Balance(ctx, tc.player)
		if err != nil {
			t.Fatalf("balance %s: %v", tc.player, err)
		}
		if got != tc.want {
			t.Fatalf("balance for %s = %d, want %d", tc.player, got, tc.want)
		}
	}
}

func TestSpend(t *testing.T) {
	store := NewInMemoryStore()
	ledger := NewLedger(store)
	ctx := context.Background()

	if _, err := store.Add(ctx, "Leo", 6); err != nil {
		t.Fatalf("seed: %v", err)
	}
	balance, err := ledger.Spend(ctx, "Leo", 4)
	if err != nil {
		t.Fatalf("spend: %v", err)
	}
	if balance != 2 {
		t.Fatalf("balance after spend = %d, want 2", balance)
	}
	if _, err := ledger.Spend(ctx, "Leo", 3); err == nil {
		t.Fatalf("expected insufficient coins error")
	}
	if _, err := ledger.Spend(ctx, "Leo", 0); err == nil {
		t.Fatalf("expected error on non-positive spend")
	}
}

func TestBalanceNeverGoesNegative(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	balance, err := store.Add(ctx, "Leo", -10)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if balance != 0 {
		t.Fatalf("balance = %d, want clamp at 0", balance)
	}
}

func TestRedisStoreBalances(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store, err := NewRedis(&RedisConfig{RedisClient: client})
	if err != nil {
		t.Fatalf("new redis store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()

	if balance, err := store.Balance(ctx, "Leo"); err != nil || balance != 0 {
		t.Fatalf("fresh balance = %d, %v", balance, err)
	}
	if balance, err := store.Add(ctx, "Leo", 7); err != nil || balance != 7 {
		t.Fatalf("add = %d, %v", balance, err)
	}
	if balance, err := store.Add(ctx, "Leo", -20); err != nil || balance != 0 {
		t.Fatalf("clamped balance = %d, %v, want 0", balance, err)
	}
	if balance, err := store.Balance(ctx, "Leo"); err != nil || balance != 0 {
		t.Fatalf("balance after clamp = %d, %v", balance, err)
	}
}
