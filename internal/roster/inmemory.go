package roster

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryStore is a seeded in-process roster for local/dev use. Reads
// simulate a network fetch with a small delay.
type InMemoryStore struct {
	mu         sync.RWMutex
	names      map[string]string
	players    map[string][]Player
	fetchDelay time.Duration
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		names:      seedCommunityNames(),
		players:    seedPlayers(),
		fetchDelay: 250 * time.Millisecond,
	}
}

// SetFetchDelay overrides the simulated fetch delay. Zero disables it.
func (s *InMemoryStore) SetFetchDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchDelay = d
}

func (s *InMemoryStore) Communities(ctx context.Context) ([]Community, error) {
	if err := s.simulateFetch(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Community, 0, len(s.names))
	for id, name := range s.names {
		out = append(out, Community{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryStore) PlayersByCommunity(ctx context.Context, communityID string) ([]Player, error) {
	if err := s.simulateFetch(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	src := s.players[communityID]
	out := make([]Player, len(src))
	copy(out, src)
	return out, nil
}

func (s *InMemoryStore) SavePlayer(_ context.Context, communityID string, p Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.players[communityID]
	for i := range list {
		if list[i].Name == p.Name {
			list[i] = p
			return nil
		}
	}
	s.players[communityID] = append(list, p)
	return nil
}

func (s *InMemoryStore) Close() error { return nil }

func (s *InMemoryStore) simulateFetch(ctx context.Context) error {
	s.mu.RLock()
	d := s.fetchDelay
	s.mu.RUnlock()
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func seedCommunityNames() map[string]string {
	return map[string]string{
		"1": "Riverside Court",
		"2": "Eastside Runs",
		"3": "Sunset Park",
	}
}

func seedPlayers() map[string][]Player {
	return map[string][]Player{
		"1": {
			{Name: "Caio", ImageRef: "avatars/caio.jpg", Age: 30},
			{Name: "Marcus", ImageRef: "avatars/marcus.jpg", Age: 27},
			{Name: "Dev", ImageRef: "avatars/dev.jpg", Age: 19},
			{Name: "Al", ImageRef: "avatars/al.jpg", Age: 46},
			{Name: "Nano", ImageRef: "avatars/nano.jpg", Age: 32},
			{Name: "Cass", ImageRef: "avatars/cass.jpg", Age: 30},
			{Name: "Leo", ImageRef: "avatars/leo.jpg", Age: 23},
			{Name: "Rodrigo", ImageRef: "avatars/rodrigo.jpg", Age: 22},
			{Name: "Enzo", ImageRef: "avatars/enzo.jpg", Age: 18},
			{Name: "Frank", ImageRef: "avatars/frank.jpg", Age: 25},
		},
		"2": {
			{Name: "Lucas", ImageRef: "avatars/lucas.jpg", Age: 23},
			{Name: "Bruno", ImageRef: "avatars/bruno.jpg", Age: 29},
			{Name: "Gui", ImageRef: "avatars/gui.jpg", Age: 21},
			{Name: "Rod", ImageRef: "avatars/rod.jpg", Age: 26},
			{Name: "Sam", ImageRef: "avatars/sam.jpg", Age: 24},
			{Name: "Dan", ImageRef: "avatars/dan.jpg", Age: 22},
			{Name: "Thiago", ImageRef: "avatars/thiago.jpg", Age: 27},
			{Name: "Wes", ImageRef: "avatars/wes.jpg", Age: 25},
		},
		"3": {
			{Name: "Matt", ImageRef: "avatars/matt.jpg", Age: 26},
			{Name: "Felipe", ImageRef: "avatars/felipe.jpg", Age: 24},
			{Name: "Diego", ImageRef: "avatars/diego.jpg", Age: 28},
			{Name: "Andre", ImageRef: "avatars/andre.jpg", Age: 22},
			{Name: "Renato", ImageRef: "avatars/renato.jpg", Age: 26},
			{Name: "Alex", ImageRef: "avatars/alex.jpg", Age: 24},
			{Name: "Jon", ImageRef: "avatars/jon.jpg", Age: 27},
			{Name: "Patrick", ImageRef: "avatars/patrick.jpg", Age: 23},
		},
	}
}
