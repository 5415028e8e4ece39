package coins

import (
	"context"
	"fmt"
)

// Rewards in coins.
const (
	WinReward   = 1
	BadgeReward = 5
)

// Store persists coin balances per player. Balances never go negative.
type Store interface {
	Balance(ctx context.Context, player string) (int, error)
	// Add applies delta to the player's balance, clamping at zero, and
	// returns the new balance.
	Add(ctx context.Context, player string, delta int) (int, error)
	Close() error
}

// Ledger hands out coin rewards after a match: one coin per win, five
// per freshly earned badge.
type Ledger struct {
	store Store
}

func NewLedger(store Store) *Ledger {
	return &Ledger{store: store}
}

func (l *Ledger) Balance(ctx context.Context, player string) (int, error) {
	return l.store.Balance(ctx, player)
}

// RewardMatch credits winners and badge earners. badgeCounts maps each
// player to the number of badges earned this match.
func (l *Ledger) RewardMatch(ctx context.Context, winners []string, badgeCounts map[string]int) error {
	credits := make(map[string]int)
	for _, player := range winners {
		credits[player] += WinReward
	}
	for player, count := range badgeCounts {
		credits[player] += count * BadgeReward
	}
	for player, amount := range credits {
		if amount == 0 {
			continue
		}
		if _, err := l.store.Add(ctx, player, amount); err != nil {
			return fmt.Errorf("credit %d coins to %s: %w", amount, player, err)
		}
	}
	return nil
}

// Spend debits a player, failing when the balance cannot cover it.
func (l *Ledger) Spend(ctx context.Context, player string, amount int) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("spend amount must be positive, got %d", amount)
	}
	balance, err := l.store.Balance(ctx, player)
	if err != nil {
		return 0, err
	}
	if balance < amount {
		return balance, fmt.Errorf("insufficient coins: have %d, need %d", balance, amount)
	}
	return l.store.Add(ctx, player, -amount)
}
