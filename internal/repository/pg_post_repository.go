package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/yashwanthsk20/insta-feed-backend/internal/models"
)

type pgPostRepository struct {
	pool *pgxpool.Pool
}

const postColumns = `id, author_id, content, image_url, tags, likes_count,
	comments_count, score, created_at, updated_at`

// postWhere matches the PostFilter; unused arguments are empty strings.
const postWhere = `($1 = '' OR $1 = ANY(tags)) AND ($2 = '' OR author_id = $2)`

func scanPost(row pgx.Row) (*models.Post, error) {
	var (
		p            models.Post
		id, authorID string
	)
	err := row.Scan(&id, &authorID, &p.Content, &p.ImageURL, &p.Tags, &p.LikesCount,
		&p.CommentsCount, &p.Score, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if p.ID, err = parseHexID(id); err != nil {
		return nil, err
	}
	if p.AuthorID, err = parseHexID(authorID); err != nil {
		return nil, err
	}
	return &p, nil
}

func filterArgs(f PostFilter) (string, string) {
	author := ""
	if !f.AuthorID.IsZero() {
		author = f.AuthorID.Hex()
	}
	return f.Tag, author
}

func (r *pgPostRepository) Insert(ctx context.Context, p *models.Post) error {
	if p.ID.IsZero() {
		p.ID = bson.NewObjectID()
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	_, err := r.pool.Exec(ctx, `INSERT INTO posts (`+postColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID.Hex(), p.AuthorID.Hex(), p.Content, p.ImageURL, p.Tags, p.LikesCount,
		p.CommentsCount, p.Score, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *pgPostRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id.Hex())
	p, err := scanPost(row)
	if err != nil {
		return nil, pgNotFound(err)
	}
	return p, nil
}

func (r *pgPostRepository) Find(ctx context.Context, f PostFilter, skip, limit int64) ([]models.Post, error) {
	tag, author := filterArgs(f)
	rows, err := r.pool.Query(ctx, `SELECT `+postColumns+` FROM posts
		WHERE `+postWhere+`
		ORDER BY created_at DESC, likes_count DESC, id DESC
		OFFSET $3 LIMIT $4`,
		tag, author, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func (r *pgPostRepository) Count(ctx context.Context, f PostFilter) (int64, error) {
	tag, author := filterArgs(f)
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM posts WHERE `+postWhere, tag, author).Scan(&n)
	return n, err
}

func (r *pgPostRepository) IncLikesCount(ctx context.Context, id bson.ObjectID, delta int) (*models.Post, error) {
	row := r.pool.QueryRow(ctx, `UPDATE posts
		SET likes_count = GREATEST(likes_count + $2, 0), updated_at = $3
		WHERE id = $1 RETURNING `+postColumns,
		id.Hex(), delta, time.Now().UTC())
	p, err := scanPost(row)
	if err != nil {
		return nil, pgNotFound(err)
	}
	return p, nil
}

func (r *pgPostRepository) SetScore(ctx context.Context, id bson.ObjectID, likesCount int, score float64) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE posts SET score = $3 WHERE id = $1 AND likes_count = $2`,
		id.Hex(), likesCount, score)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
