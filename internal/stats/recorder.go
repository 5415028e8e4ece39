package stats

import (
	"context"
	"fmt"

	"github.com/courtsideapp/courtside/internal/roster"
)

// Outcome summarizes a finished match for progression purposes. Winners
// and Losers are both empty on a draw.
type Outcome struct {
	Winners []string
	Losers  []string
	MVP     string
	Earned  map[string]int
}

// Recorder folds match results back into the roster: earned points
// accumulate on career totals, winners climb a level, the MVP climbs
// one extra, losers drop one but never below zero. Draws leave levels
// untouched.
type Recorder struct {
	store roster.Store
}

func NewRecorder(store roster.Store) *Recorder {
	return &Recorder{store: store}
}

func (r *Recorder) Record(ctx context.Context, communityID string, outcome Outcome) error {
	players, err := r.store.PlayersByCommunity(ctx, communityID)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}

	winners := nameSet(outcome.Winners)
	losers := nameSet(outcome.Losers)

	for _, p := range players {
		earned := outcome.Earned[p.Name]
		won := winners[p.Name]
		lost := losers[p.Name]
		if earned == 0 && !won && !lost {
			continue
		}
		updated := Apply(p, earned, won, lost, p.Name == outcome.MVP)
		if err := r.store.SavePlayer(ctx, communityID, updated); err != nil {
			return fmt.Errorf("save player %s: %w", p.Name, err)
		}
	}
	return nil
}

// Apply returns p with one match's progression folded in.
func Apply(p roster.Player, earned int, won, lost, mvp bool) roster.Player {
	if earned > 0 {
		p.TotalPoints += earned
	}
	if won {
		p.Level++
	}
	if mvp {
		p.Level++
	}
	if lost {
		p.Level--
		if p.Level < 0 {
			p.Level = 0
		}
	}
	return p
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
