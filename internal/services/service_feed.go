package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/yashwanthsk20/insta-feed-backend/dto"
	"github.com/yashwanthsk20/insta-feed-backend/internal/metrics"
	"github.com/yashwanthsk20/insta-feed-backend/internal/models"
	"github.com/yashwanthsk20/insta-feed-backend/internal/repository"
	"github.com/yashwanthsk20/insta-feed-backend/internal/utils"
)

// Personalized score weights.
const (
	recencyBase       = 100.0
	recencyDecayPerH  = 2.0
	likeWeight        = 5
	popularityCap     = 500
	tagMatchBonus     = 50
	freshnessBonus    = 25
	freshnessWindowHr = 24.0
)

type FeedOptions struct {
	Page  int
	Limit int
	Tag   string
}

type FeedService struct {
	store repository.Store
	now   func() time.Time
}

func NewFeedService(store repository.Store) *FeedService {
	return &FeedService{store: store, now: time.Now}
}

// GetPersonalizedFeed returns one page of posts, newest first, re-ranked
// within the page by CalculatePersonalizedScore. userID may be empty; an
// unknown user is treated as one with no liked tags.
func (s *FeedService) GetPersonalizedFeed(ctx context.Context, userID string, opt FeedOptions) (dto.FeedResult, error) {
	start := time.Now()
	res, err := s.feed(ctx, userID, opt)
	metrics.RecordStoreOperation("feed", time.Since(start), err)
	if err != nil {
		return dto.FeedResult{}, fmt.Errorf("feed service error: %w", err)
	}
	metrics.RecordFeedPage(userID != "", len(res.Posts))
	return res, nil
}

func (s *FeedService) feed(ctx context.Context, userID string, opt FeedOptions) (dto.FeedResult, error) {
	if opt.Page < 1 {
		opt.Page = 1
	}
	if opt.Limit < 1 {
		opt.Limit = 10
	}

	var (
		viewer    bson.ObjectID
		likedTags []string
	)
	if userID != "" {
		if id, err := bson.ObjectIDFromHex(userID); err == nil {
			viewer = id
			u, err := s.store.Users().FindByID(ctx, id)
			switch {
			case err == nil:
				likedTags = u.LikedTags
			case !errors.Is(err, repository.ErrNotFound):
				return dto.FeedResult{}, err
			}
		}
	}

	filter := repository.PostFilter{Tag: strings.ToLower(opt.Tag)}
	posts, err := s.store.Posts().Find(ctx, filter, utils.Skip(opt.Page, opt.Limit), int64(opt.Limit))
	if err != nil {
		return dto.FeedResult{}, err
	}
	total, err := s.store.Posts().Count(ctx, filter)
	if err != nil {
		return dto.FeedResult{}, err
	}

	authors, err := authorSummaries(ctx, s.store, posts)
	if err != nil {
		return dto.FeedResult{}, err
	}

	likes, err := likesByPost(ctx, s.store, posts)
	if err != nil {
		return dto.FeedResult{}, err
	}

	now := s.now()
	out := make([]dto.FeedPost, len(posts))
	for i, p := range posts {
		out[i] = dto.FeedPost{
			PostResponse:      dto.NewPostResponse(p, authors[p.AuthorID], likes[p.ID]),
			PersonalizedScore: CalculatePersonalizedScore(p, likedTags, now),
			IsLikedByUser:     !viewer.IsZero() && likedBy(likes[p.ID], viewer),
		}
	}
	slices.SortStableFunc(out, func(a, b dto.FeedPost) int {
		return b.PersonalizedScore - a.PersonalizedScore
	})

	return dto.FeedResult{
		Posts: out,
		Pagination: dto.PostPagination{
			Page:       utils.Paginate(opt.Page, opt.Limit, total),
			TotalPosts: total,
		},
	}, nil
}

// CalculatePersonalizedScore blends recency, popularity, liked-tag matches
// and a freshness bonus into a non-negative integer.
func CalculatePersonalizedScore(p models.Post, likedTags []string, now time.Time) int {
	ageH := now.Sub(p.CreatedAt).Hours()

	score := math.Max(0, recencyBase-recencyDecayPerH*ageH)
	score += float64(min(p.LikesCount*likeWeight, popularityCap))

	if len(likedTags) > 0 {
		for _, t := range p.Tags {
			if slices.Contains(likedTags, t) {
				score += tagMatchBonus
			}
		}
	}

	if ageH < freshnessWindowHr {
		score += freshnessBonus
	}
	return int(math.Round(score))
}

// authorSummaries loads the authors of posts in one query.
func authorSummaries(ctx context.Context, store repository.Store, posts []models.Post) (map[bson.ObjectID]*dto.AuthorSummary, error) {
	out := make(map[bson.ObjectID]*dto.AuthorSummary, len(posts))
	if len(posts) == 0 {
		return out, nil
	}
	ids := make([]bson.ObjectID, 0, len(posts))
	for _, p := range posts {
		if !slices.Contains(ids, p.AuthorID) {
			ids = append(ids, p.AuthorID)
		}
	}
	users, err := store.Users().FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = dto.NewAuthorSummary(u)
	}
	return out, nil
}

func likesByPost(ctx context.Context, store repository.Store, posts []models.Post) (map[bson.ObjectID][]models.Like, error) {
	ids := make([]bson.ObjectID, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return store.Likes().ListByPosts(ctx, ids)
}

func likedBy(likes []models.Like, userID bson.ObjectID) bool {
	return slices.ContainsFunc(likes, func(l models.Like) bool { return l.UserID == userID })
}
