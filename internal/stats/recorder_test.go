package stats

import (
	"context"
	"testing"

	"github.com/courtsideapp/courtside/internal/roster"
)

func TestApply(t *testing.T) {
	cases := []struct {
		name      string
		player    roster.Player
		earned    int
		won       bool
		lost      bool
		mvp       bool
		wantLevel int
		wantTotal int
	}{
		{"winner gains a level and points", roster.Player{Level: 3, TotalPoints: 40}, 8, true, false, false, 4, 48},
		{"mvp winner gains two levels", roster.Player{Level: 3, TotalPoints: 40}, 14, true, false, true, 5, 54},
		{"loser drops a level", roster.Player{Level: 3, TotalPoints: 40}, 2, false, true, false, 2, 42},
		{"loser never drops below zero", roster.Player{Level: 0, TotalPoints: 10}, 0, false, true, false, 0, 10},
		{"draw leaves level untouched", roster.Player{Level: 5, TotalPoints: 20}, 6, false, false, false, 5, 26},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Apply(tc.player, tc.earned, tc.won, tc.lost, tc.mvp)
			if got.Level != tc.wantLevel {
				t.Fatalf("level = %d, want %d", got.Level, tc.wantLevel)
			}
			if got.TotalPoints != tc.wantTotal {
				t.Fatalf("total points = %d, want %d", got.TotalPoints, tc.wantTotal)
			}
		})
	}
}

func TestRecordPersistsProgression(t *testing.T) {
	store := roster.NewInMemoryStore()
	store.SetFetchDelay(0)
	ctx := context.Background()

	communities, err := store.Communities(ctx)
	if err != nil {
		t.Fatalf("communities: %v", err)
	}
	communityID := communities[0].ID
	players, err := store.PlayersByCommunity(ctx, communityID)
	if err != nil {
		t.Fatalf("players: %v", err)
	}
	if len(players) < 2 {
		t.Fatalf("seed community too small: %d players", len(players))
	}
	winner, loser := players[0], players[1]

	outcome := Outcome{
		Winners: []string{winner.Name},
		Losers:  []string{loser.Name},
		MVP:     winner.Name,
		Earned:  map[string]int{winner.Name: 14, loser.Name: 9},
	}
	if err := NewRecorder(store).Record(ctx, communityID, outcome); err != nil {
		t.Fatalf("record: %v", err)
	}

	after, err := store.PlayersByCommunity(ctx, communityID)
	if err != nil {
		t.Fatalf("players after: %v", err)
	}
	byName := make(map[string]roster.Player, len(after))
	for _, p := range after {
		byName[p.Name] = p
	}
	if got := byName[winner.Name]; got.Level != winner.Level+2 || got.TotalPoints != winner.TotalPoints+14 {
		t.Fatalf("winner progression wrong: before %+v, after %+v", winner, got)
	}
	wantLoserLevel := loser.Level - 1
	if wantLoserLevel < 0 {
		wantLoserLevel = 0
	}
	if got := byName[loser.Name]; got.Level != wantLoserLevel || got.TotalPoints != loser.TotalPoints+9 {
		t.Fatalf("loser progression wrong: before %+v, after %+v", loser, got)
	}
}
