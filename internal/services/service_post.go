package services

import (
	"context"
	"errors"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/yashwanthsk20/insta-feed-backend/dto"
	"github.com/yashwanthsk20/insta-feed-backend/internal/logging"
	"github.com/yashwanthsk20/insta-feed-backend/internal/metrics"
	"github.com/yashwanthsk20/insta-feed-backend/internal/models"
	"github.com/yashwanthsk20/insta-feed-backend/internal/repository"
	"github.com/yashwanthsk20/insta-feed-backend/internal/utils"
)

type PostService struct {
	store repository.Store
	now   func() time.Time
}

func NewPostService(store repository.Store) *PostService {
	return &PostService{store: store, now: time.Now}
}

// CalculateBaseScore is the stored coarse ranking value: linear hourly
// recency decay plus 10 points per like, capped at 1000.
func CalculateBaseScore(p models.Post, now time.Time) float64 {
	ageH := now.Sub(p.CreatedAt).Hours()
	return math.Max(0, 100-ageH) + float64(min(p.LikesCount*10, 1000))
}

// CreatePost checks the author before anything is written, so an unknown
// author leaves the store untouched.
func (s *PostService) CreatePost(ctx context.Context, body dto.CreatePostDTO) (dto.PostResponse, error) {
	authorID, err := bson.ObjectIDFromHex(body.AuthorID)
	if err != nil {
		return dto.PostResponse{}, ErrAuthorNotFound
	}
	author, err := s.store.Users().FindByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.PostResponse{}, ErrAuthorNotFound
		}
		return dto.PostResponse{}, err
	}

	now := s.now().UTC()
	post := models.Post{
		AuthorID:  authorID,
		Content:   body.Content,
		ImageURL:  body.ImageURL,
		Tags:      utils.NormalizeTags(body.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
	post.Score = CalculateBaseScore(post, now)

	if err := s.store.Posts().Insert(ctx, &post); err != nil {
		return dto.PostResponse{}, err
	}
	metrics.PostsCreatedTotal.Inc()

	if err := s.store.Users().IncPostsCount(ctx, authorID, 1); err != nil {
		logging.Warn().Err(err).Str("author_id", authorID.Hex()).Msg("posts count not incremented")
	}

	return dto.NewPostResponse(post, dto.NewAuthorSummary(*author), nil), nil
}

// GetPost returns the post with its author and likes. A malformed id cannot
// match any post and is reported as not found.
func (s *PostService) GetPost(ctx context.Context, id string) (dto.PostResponse, error) {
	postID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return dto.PostResponse{}, ErrPostNotFound
	}
	post, err := s.store.Posts().FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.PostResponse{}, ErrPostNotFound
		}
		return dto.PostResponse{}, err
	}

	posts := []models.Post{*post}
	authors, err := authorSummaries(ctx, s.store, posts)
	if err != nil {
		return dto.PostResponse{}, err
	}
	likes, err := likesByPost(ctx, s.store, posts)
	if err != nil {
		return dto.PostResponse{}, err
	}
	return dto.NewPostResponse(*post, authors[post.AuthorID], likes[post.ID]), nil
}

// ListPostsByUser pages through one author's posts, newest first.
func (s *PostService) ListPostsByUser(ctx context.Context, userID bson.ObjectID, q dto.PageQuery) (dto.PostListResult, error) {
	filter := repository.PostFilter{AuthorID: userID}
	posts, err := s.store.Posts().Find(ctx, filter, utils.Skip(q.Page, q.Limit), int64(q.Limit))
	if err != nil {
		return dto.PostListResult{}, err
	}
	total, err := s.store.Posts().Count(ctx, filter)
	if err != nil {
		return dto.PostListResult{}, err
	}

	authors, err := authorSummaries(ctx, s.store, posts)
	if err != nil {
		return dto.PostListResult{}, err
	}
	likes, err := likesByPost(ctx, s.store, posts)
	if err != nil {
		return dto.PostListResult{}, err
	}

	out := make([]dto.PostResponse, len(posts))
	for i, p := range posts {
		out[i] = dto.NewPostResponse(p, authors[p.AuthorID], likes[p.ID])
	}
	return dto.PostListResult{
		Posts: out,
		Pagination: dto.PostPagination{
			Page:       utils.Paginate(q.Page, q.Limit, total),
			TotalPosts: total,
		},
	}, nil
}
