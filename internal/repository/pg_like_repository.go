package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/yashwanthsk20/insta-feed-backend/internal/models"
)

type pgLikeRepository struct {
	pool *pgxpool.Pool
}

func (r *pgLikeRepository) Insert(ctx context.Context, l *models.Like) (dup bool, err error) {
	if l.ID.IsZero() {
		l.ID = bson.NewObjectID()
	}
	tag, err := r.pool.Exec(ctx, `INSERT INTO likes (id, user_id, post_id, created_at)
		VALUES ($1, $2, $3, $4) ON CONFLICT (user_id, post_id) DO NOTHING`,
		l.ID.Hex(), l.UserID.Hex(), l.PostID.Hex(), l.CreatedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 0, nil
}

func (r *pgLikeRepository) Delete(ctx context.Context, userID, postID bson.ObjectID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM likes WHERE user_id = $1 AND post_id = $2`,
		userID.Hex(), postID.Hex())
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *pgLikeRepository) ListByPosts(ctx context.Context, postIDs []bson.ObjectID) (map[bson.ObjectID][]models.Like, error) {
	out := make(map[bson.ObjectID][]models.Like, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT id, user_id, post_id, created_at FROM likes
		WHERE post_id = ANY($1) ORDER BY created_at, id`, hexIDs(postIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			l                  models.Like
			id, userID, postID string
		)
		if err := rows.Scan(&id, &userID, &postID, &l.CreatedAt); err != nil {
			return nil, err
		}
		if l.ID, err = parseHexID(id); err != nil {
			return nil, err
		}
		if l.UserID, err = parseHexID(userID); err != nil {
			return nil, err
		}
		if l.PostID, err = parseHexID(postID); err != nil {
			return nil, err
		}
		out[l.PostID] = append(out[l.PostID], l)
	}
	return out, rows.Err()
}
