package badges

import (
	"context"
	"fmt"

	"github.com/courtsideapp/courtside/internal/observability"
)

// hotHandPoints is the single-match score that earns HotHand.
const hotHandPoints = 12

// streakLength is the run of wins that earns WinStreak3.
const streakLength = 3

// MatchResult carries everything badge rules need from one finished
// match. Winners and Losers are both empty on a draw.
type MatchResult struct {
	Winners []string
	Losers  []string
	MVP     string
	Points  map[string]int
}

// Service evaluates badge rules after each match.
type Service struct {
	store   Store
	metrics *observability.Metrics
}

func NewService(store Store, metrics *observability.Metrics) *Service {
	return &Service{store: store, metrics: metrics}
}

// Evaluate applies the rules to one result and returns badges earned
// for the first time, keyed by player. Win streaks bump for winners and
// reset for losers; a draw touches neither.
func (s *Service) Evaluate(ctx context.Context, res MatchResult) (map[string][]Badge, error) {
	earned := make(map[string][]Badge)
	award := func(player string, b Badge) error {
		fresh, err := s.store.Award(ctx, player, b)
		if err != nil {
			return fmt.Errorf("award %s to %s: %w", b, player, err)
		}
		if fresh {
			earned[player] = append(earned[player], b)
			if s.metrics != nil {
				s.metrics.BadgesEarned.WithLabelValues(string(b)).Inc()
			}
		}
		return nil
	}

	for _, player := range res.Winners {
		if err := award(player, FirstWin); err != nil {
			return earned, err
		}
		streak, err := s.store.BumpWinStreak(ctx, player)
		if err != nil {
			return earned, fmt.Errorf("bump streak for %s: %w", player, err)
		}
		if streak >= streakLength {
			if err := award(player, WinStreak3); err != nil {
				return earned, err
			}
		}
	}
	for _, player := range res.Losers {
		if err := s.store.ResetWinStreak(ctx, player); err != nil {
			return earned, fmt.Errorf("reset streak for %s: %w", player, err)
		}
	}
	if res.MVP != "" {
		if err := award(res.MVP, MatchMVP); err != nil {
			return earned, err
		}
	}
	for player, points := range res.Points {
		if points >= hotHandPoints {
			if err := award(player, HotHand); err != nil {
				return earned, err
			}
		}
	}
	return earned, nil
}
