package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/yashwanthsk20/insta-feed-backend/internal/models"
)

type pgUserRepository struct {
	pool *pgxpool.Pool
}

const userColumns = `id, username, email, full_name, bio, avatar, liked_tags,
	followers_count, following_count, posts_count, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var (
		u  models.User
		id string
	)
	err := row.Scan(&id, &u.Username, &u.Email, &u.FullName, &u.Bio, &u.Avatar, &u.LikedTags,
		&u.FollowersCount, &u.FollowingCount, &u.PostsCount, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if u.ID, err = parseHexID(id); err != nil {
		return nil, err
	}
	return &u, nil
}

func collectUsers(rows pgx.Rows) ([]models.User, error) {
	defer rows.Close()
	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *pgUserRepository) Insert(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}
	if u.LikedTags == nil {
		u.LikedTags = []string{}
	}
	_, err := r.pool.Exec(ctx, `INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		u.ID.Hex(), u.Username, u.Email, u.FullName, u.Bio, u.Avatar, u.LikedTags,
		u.FollowersCount, u.FollowingCount, u.PostsCount, u.CreatedAt, u.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *pgUserRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id.Hex())
	u, err := scanUser(row)
	if err != nil {
		return nil, pgNotFound(err)
	}
	return u, nil
}

func (r *pgUserRepository) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, hexIDs(ids))
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (r *pgUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR username = $2)`,
		email, username).Scan(&exists)
	return exists, err
}

func (r *pgUserRepository) List(ctx context.Context, search string, skip, limit int64) ([]models.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users
		WHERE $1 = '' OR username ILIKE $2 OR full_name ILIKE $2
		ORDER BY created_at DESC, id DESC
		OFFSET $3 LIMIT $4`,
		search, likePattern(search), skip, limit)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (r *pgUserRepository) Count(ctx context.Context, search string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users
		WHERE $1 = '' OR username ILIKE $2 OR full_name ILIKE $2`,
		search, likePattern(search)).Scan(&n)
	return n, err
}

func (r *pgUserRepository) SetLikedTags(ctx context.Context, id bson.ObjectID, tags []string) (*models.User, error) {
	if tags == nil {
		tags = []string{}
	}
	row := r.pool.QueryRow(ctx, `UPDATE users SET liked_tags = $2, updated_at = $3
		WHERE id = $1 RETURNING `+userColumns,
		id.Hex(), tags, time.Now().UTC())
	u, err := scanUser(row)
	if err != nil {
		return nil, pgNotFound(err)
	}
	return u, nil
}

func (r *pgUserRepository) AddLikedTags(ctx context.Context, id bson.ObjectID, tags []string) error {
	if len(tags) == 0 {
		return nil
	}
	tag, err := r.pool.Exec(ctx, `UPDATE users SET
			liked_tags = liked_tags || ARRAY(
				SELECT t FROM (
					SELECT t, min(ord) AS ord FROM unnest($2::text[]) WITH ORDINALITY AS u(t, ord)
					GROUP BY t
				) AS first_seen
				WHERE NOT (t = ANY(liked_tags))
				ORDER BY ord
			),
			updated_at = $3
		WHERE id = $1`,
		id.Hex(), tags, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) IncPostsCount(ctx context.Context, id bson.ObjectID, delta int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET posts_count = posts_count + $2, updated_at = $3 WHERE id = $1`,
		id.Hex(), delta, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
