package roster

import "context"

// Player is a community roster entry. Level and TotalPoints are mutated
// only by post-match progression.
type Player struct {
	Name        string `json:"name"`
	ImageRef    string `json:"image_ref"`
	Age         int    `json:"age"`
	Level       int    `json:"level"`
	TotalPoints int    `json:"total_points"`
}

// Community groups a roster of players.
type Community struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Store retrieves and persists community rosters.
type Store interface {
	Communities(ctx context.Context) ([]Community, error)
	PlayersByCommunity(ctx context.Context, communityID string) ([]Player, error)
	SavePlayer(ctx context.Context, communityID string, p Player) error
	Close() error
}
