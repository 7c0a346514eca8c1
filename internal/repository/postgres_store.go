package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// PostgresStore keeps the same ObjectID identifiers as the Mongo store,
// stored as 24-char hex text with "C" collation so that id ordering matches.
type PostgresStore struct {
	pool  *pgxpool.Pool
	users *pgUserRepository
	posts *pgPostRepository
	likes *pgLikeRepository
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		pool:  pool,
		users: &pgUserRepository{pool: pool},
		posts: &pgPostRepository{pool: pool},
		likes: &pgLikeRepository{pool: pool},
	}
}

func (s *PostgresStore) Users() UserRepository { return s.users }
func (s *PostgresStore) Posts() PostRepository { return s.posts }
func (s *PostgresStore) Likes() LikeRepository { return s.likes }

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Reset(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "TRUNCATE likes, posts, users")
	return err
}

func (s *PostgresStore) Close(_ context.Context) error {
	s.pool.Close()
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func pgNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func parseHexID(s string) (bson.ObjectID, error) {
	return bson.ObjectIDFromHex(strings.TrimSpace(s))
}

func hexIDs(ids []bson.ObjectID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Hex()
	}
	return out
}

// likePattern escapes LIKE metacharacters for a substring match.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
