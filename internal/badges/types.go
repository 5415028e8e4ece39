package badges

import "context"

// Badge identifies one earnable badge.
type Badge string

const (
	// FirstWin marks a player's first match won.
	FirstWin Badge = "first_win"
	// MatchMVP marks being voted the match MVP.
	MatchMVP Badge = "match_mvp"
	// HotHand marks scoring twelve or more points in one match.
	HotHand Badge = "hot_hand"
	// WinStreak3 marks three match wins in a row.
	WinStreak3 Badge = "win_streak_3"
)

// All lists every badge the engine can award.
var All = []Badge{FirstWin, MatchMVP, HotHand, WinStreak3}

// Store persists earned badges and win streaks per player.
type Store interface {
	Earned(ctx context.Context, player string) ([]Badge, error)
	// Award grants a badge and reports whether it was newly earned.
	Award(ctx context.Context, player string, b Badge) (bool, error)
	WinStreak(ctx context.Context, player string) (int, error)
	// BumpWinStreak increments the streak and returns the new value.
	BumpWinStreak(ctx context.Context, player string) (int, error)
	ResetWinStreak(ctx context.Context, player string) error
	Close() error
}
