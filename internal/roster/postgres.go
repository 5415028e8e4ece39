package roster

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists community rosters in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

func initSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS communities (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS players (
			community_id TEXT NOT NULL REFERENCES communities(id),
			name TEXT NOT NULL,
			image_ref TEXT NOT NULL DEFAULT '',
			age INT NOT NULL DEFAULT 0,
			level INT NOT NULL DEFAULT 0,
			total_points INT NOT NULL DEFAULT 0,
			PRIMARY KEY (community_id, name)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_players_community ON players (community_id);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema failed on %q: %w", stmt, err)
		}
	}
	return nil
}

func (s *PostgresStore) Communities(ctx context.Context) ([]Community, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name FROM communities ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query communities: %w", err)
	}
	defer rows.Close()

	var out []Community
	for rows.Next() {
		var c Community
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan community row: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate community rows: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) PlayersByCommunity(ctx context.Context, communityID string) ([]Player, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT name, image_ref, age, level, total_points
		 FROM players WHERE community_id=$1 ORDER BY name`,
		communityID,
	)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()

	var out []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.Name, &p.ImageRef, &p.Age, &p.Level, &p.TotalPoints); err != nil {
			return nil, fmt.Errorf("scan player row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate player rows: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) SavePlayer(ctx context.Context, communityID string, p Player) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO players (community_id, name, image_ref, age, level, total_points)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (community_id, name) DO UPDATE
		 SET image_ref=EXCLUDED.image_ref, age=EXCLUDED.age,
		     level=EXCLUDED.level, total_points=EXCLUDED.total_points`,
		communityID, p.Name, p.ImageRef, p.Age, p.Level, p.TotalPoints,
	)
	if err != nil {
		return fmt.Errorf("save player: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
