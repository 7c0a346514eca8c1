package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Ids are ObjectID hex strings so both stores hand out the same id format.
var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              TEXT COLLATE "C" PRIMARY KEY,
		username        TEXT NOT NULL UNIQUE,
		email           TEXT NOT NULL UNIQUE,
		full_name       TEXT NOT NULL,
		bio             TEXT NOT NULL DEFAULT '',
		avatar          TEXT NOT NULL DEFAULT '',
		liked_tags      TEXT[] NOT NULL DEFAULT '{}',
		followers_count INTEGER NOT NULL DEFAULT 0,
		following_count INTEGER NOT NULL DEFAULT 0,
		posts_count     INTEGER NOT NULL DEFAULT 0,
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id             TEXT COLLATE "C" PRIMARY KEY,
		author_id      TEXT COLLATE "C" NOT NULL REFERENCES users (id),
		content        TEXT NOT NULL,
		image_url      TEXT NOT NULL DEFAULT '',
		tags           TEXT[] NOT NULL DEFAULT '{}',
		likes_count    INTEGER NOT NULL DEFAULT 0 CHECK (likes_count >= 0),
		comments_count INTEGER NOT NULL DEFAULT 0,
		score          DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS likes (
		id         TEXT COLLATE "C" PRIMARY KEY,
		user_id    TEXT COLLATE "C" NOT NULL REFERENCES users (id),
		post_id    TEXT COLLATE "C" NOT NULL REFERENCES posts (id),
		created_at TIMESTAMPTZ NOT NULL,
		UNIQUE (user_id, post_id)
	)`,
	`CREATE INDEX IF NOT EXISTS users_liked_tags_idx ON users USING GIN (liked_tags)`,
	`CREATE INDEX IF NOT EXISTS posts_feed_idx ON posts (created_at DESC, likes_count DESC, id DESC)`,
	`CREATE INDEX IF NOT EXISTS posts_score_idx ON posts (score DESC)`,
	`CREATE INDEX IF NOT EXISTS posts_tags_idx ON posts USING GIN (tags)`,
	`CREATE INDEX IF NOT EXISTS posts_author_idx ON posts (author_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS likes_post_idx ON likes (post_id, created_at)`,
}

// EnsurePostgresSchema is idempotent; it runs on every start.
func EnsurePostgresSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range postgresSchema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
