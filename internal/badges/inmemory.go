package badges

import (
	"context"
	"sync"
)

// InMemoryStore keeps badges and streaks in process memory. Used when
// no Redis endpoint is configured and by tests.
type InMemoryStore struct {
	mu      sync.Mutex
	earned  map[string]map[Badge]bool
	streaks map[string]int
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		earned:  make(map[string]map[Badge]bool),
		streaks: make(map[string]int),
	}
}

func (s *InMemoryStore) Earned(_ context.Context, player string) ([]Badge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Badge
	for _, b := range All {
		if s.earned[player][b] {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *InMemoryStore) Award(_ context.Context, player string, b Badge) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.earned[player] == nil {
		s.earned[player] = make(map[Badge]bool)
	}
	if s.earned[player][b] {
		return false, nil
	}
	s.earned[player][b] = true
	return true, nil
}

func (s *InMemoryStore) WinStreak(_ context.Context, player string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streaks[player], nil
}

func (s *InMemoryStore) BumpWinStreak(_ context.Context, player string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streaks[player]++
	return s.streaks[player], nil
}

func (s *InMemoryStore) ResetWinStreak(_ context.Context, player string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.streaks, player)
	return nil
}

func (s *InMemoryStore) Close() error { return nil }
