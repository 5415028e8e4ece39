package roster

import (
	"context"
	"strings"
)

// NewStore creates a postgres-backed roster when configured, otherwise the
// seeded in-memory roster.
func NewStore(ctx context.Context, databaseURL string) (Store, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return NewInMemoryStore(), nil
	}
	return NewPostgresStore(ctx, databaseURL)
}
