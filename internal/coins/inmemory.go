package coins

import (
	"context"
	"sync"
)

// InMemoryStore keeps balances in process memory.
type InMemoryStore struct {
	mu       sync.Mutex
	balances map[string]int
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{balances: make(map[string]int)}
}

func (s *InMemoryStore) Balance(_ context.Context, player string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[player], nil
}

func (s *InMemoryStore) Add(_ context.Context, player string, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	balance := s.balances[player] + delta
	if balance < 0 {
		balance = 0
	}
	s.balances[player] = balance
	return balance, nil
}

func (s *InMemoryStore) Close() error { return nil }
