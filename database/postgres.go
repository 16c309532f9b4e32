// database/postgres.go
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trya20205-hub/SpinNRewardsbackend/models"
)

// PostgresStore keeps each user record as a JSONB document in a single
// two-column table, so the record shape stays identical to the other backends.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects, pings and creates the users table if missing.
func NewPostgresStore(ctx context.Context, dbURL string) (*PostgresStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	_, err = pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS users (
            user_id TEXT PRIMARY KEY,
            doc     JSONB NOT NULL
        )
    `)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("create users table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (ps *PostgresStore) Get(ctx context.Context, id string) (*models.User, error) {
	var doc []byte
	err := ps.pool.QueryRow(ctx, "SELECT doc FROM users WHERE user_id=$1", id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user %s: %w", id, err)
	}

	var u models.User
	if err := json.Unmarshal(doc, &u); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", id, err)
	}
	return &u, nil
}

func (ps *PostgresStore) Put(ctx context.Context, id string, user *models.User) error {
	doc, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user %s: %w", id, err)
	}

	_, err = ps.pool.Exec(ctx, `
        INSERT INTO users (user_id, doc) VALUES ($1, $2)
        ON CONFLICT (user_id) DO UPDATE SET doc = $2
    `, id, doc)
	if err != nil {
		return fmt.Errorf("upsert user %s: %w", id, err)
	}
	return nil
}

func (ps *PostgresStore) All(ctx context.Context) (map[string]*models.User, error) {
	rows, err := ps.pool.Query(ctx, "SELECT user_id, doc FROM users")
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*models.User)
	for rows.Next() {
		var id string
		var doc []byte
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		var u models.User
		if err := json.Unmarshal(doc, &u); err != nil {
			return nil, fmt.Errorf("decode user %s: %w", id, err)
		}
		out[id] = &u
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}

func (ps *PostgresStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := ps.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (ps *PostgresStore) Close(ctx context.Context) error {
	ps.pool.Close()
	return nil
}
