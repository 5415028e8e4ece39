package badges

import (
	"context"
	"testing"
)

func hasBadge(list []Badge, b Badge) bool {
	for _, got := range list {
		if got == b {
			return true
		}
	}
	return false
}

func TestEvaluateFirstWin(t *testing.T) {
	svc := NewService(NewInMemoryStore(), nil)
	ctx := context.Background()

	earned, err := svc.Evaluate(ctx, MatchResult{Winners: []string{"Leo"}, Losers: []string{"Rafa"}})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !hasBadge(earned["Leo"], FirstWin) {
		t.Fatalf("expected first win badge, got %v", earned["Leo"])
	}

	earned, err = svc.Evaluate(ctx, MatchResult{Winners: []string{"Leo"}, Losers: []string{"Rafa"}})
	if err != nil {
		t.Fatalf("evaluate again: %v", err)
	}
	if hasBadge(earned["Leo"], FirstWin) {
		t.Fatalf("first win awarded twice")
	}
}

func TestEvaluateWinStreak(t *testing.T) {
	svc := NewService(NewInMemoryStore(), nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		earned, err := svc.Evaluate(ctx, MatchResult{Winners: []string{"Leo"}})
		if err != nil {
			t.Fatalf("evaluate %d: %v", i, err)
		}
		if hasBadge(earned["Leo"], WinStreak3) {
			t.Fatalf("streak badge after only %d wins", i+1)
		}
	}
	earned, err := svc.Evaluate(ctx, MatchResult{Winners: []string{"Leo"}})
	if err != nil {
		t.Fatalf("evaluate third: %v", err)
	}
	if !hasBadge(earned["Leo"], WinStreak3) {
		t.Fatalf("expected streak badge on third straight win, got %v", earned["Leo"])
	}
}

func TestEvaluateLossResetsStreak(t *testing.T) {
	store := NewInMemoryStore()
	svc := NewService(store, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.Evaluate(ctx, MatchResult{Winners: []string{"Leo"}}); err != nil {
			t.Fatalf("evaluate win %d: %v", i, err)
		}
	}
	if _, err := svc.Evaluate(ctx, MatchResult{Winners: []string{"Rafa"}, Losers: []string{"Leo"}}); err != nil {
		t.Fatalf("evaluate loss: %v", err)
	}
	streak, err := store.WinStreak(ctx, "Leo")
	if err != nil {
		t.Fatalf("streak: %v", err)
	}
	if streak != 0 {
		t.Fatalf("streak = %d after a loss, want 0", streak)
	}
}

func TestEvaluateDrawLeavesStreaksAlone(t *testing.T) {
	store := NewInMemoryStore()
	svc := NewService(store, nil)
	ctx := context.Background()

	if _, err := svc.Evaluate(ctx, MatchResult{Winners: []string{"Leo"}}); err != nil {
		t.Fatalf("evaluate win: %v", err)
	}
	if _, err := svc.Evaluate(ctx, MatchResult{Points: map[string]int{"Leo": 5}}); err != nil {
		t.Fatalf("evaluate draw: %v", err)
	}
	streak, err := store.WinStreak(ctx, "Leo")
	if err != nil {
		t.Fatalf("streak: %v", err)
	}
	if streak != 1 {
		t.Fatalf("draw changed streak: got %d, want 1", streak)
	}
}

func TestEvaluateMVPAndHotHand(t *testing.T) {
	svc := NewService(NewInMemoryStore(), nil)
	ctx := context.Background()

	earned, err := svc.Evaluate(ctx, MatchResult{
		Winners: []string{"Leo"},
		Losers:  []string{"Rafa"},
		MVP:     "Leo",
		Points:  map[string]int{"Leo": 12, "Rafa": 11},
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !hasBadge(earned["Leo"], MatchMVP) {
		t.Fatalf("expected MVP badge, got %v", earned["Leo"])
	}
	if !hasBadge(earned["Leo"], HotHand) {
		t.Fatalf("expected hot hand at twelve points, got %v", earned["Leo"])
	}
	if hasBadge(earned["Rafa"], HotHand) {
		t.Fatalf("hot hand awarded below twelve points")
	}
}
