package dto

import (
	"time"

	"github.com/yashwanthsk20/insta-feed-backend/internal/models"
)

type CreatePostDTO struct {
	Content  string   `json:"content"  validate:"required,max=2200"`
	ImageURL string   `json:"imageUrl" validate:"omitempty,uri"`
	Tags     []string `json:"tags"     validate:"max=10,dive,max=50"`
	AuthorID string   `json:"authorId" validate:"required,mongodb"`
}

type LikeEntry struct {
	User      string    `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostResponse is a post with its author populated.
type PostResponse struct {
	ID            string         `json:"_id"`
	Author        *AuthorSummary `json:"author"`
	Content       string         `json:"content"`
	ImageURL      *string        `json:"imageUrl"`
	Tags          []string       `json:"tags"`
	Likes         []LikeEntry    `json:"likes"`
	LikesCount    int            `json:"likesCount"`
	CommentsCount int            `json:"commentsCount"`
	Score         float64        `json:"score"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// NewPostResponse maps a stored post; author may be nil when the author
// record is gone.
func NewPostResponse(p models.Post, author *AuthorSummary, likes []models.Like) PostResponse {
	resp := PostResponse{
		ID:            p.ID.Hex(),
		Author:        author,
		Content:       p.Content,
		Tags:          p.Tags,
		Likes:         make([]LikeEntry, 0, len(likes)),
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
		Score:         p.Score,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.ImageURL != "" {
		img := p.ImageURL
		resp.ImageURL = &img
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	for _, l := range likes {
		resp.Likes = append(resp.Likes, LikeEntry{User: l.UserID.Hex(), CreatedAt: l.CreatedAt})
	}
	return resp
}

type FeedQuery struct {
	Page   int    `query:"page"   validate:"min=1"`
	Limit  int    `query:"limit"  validate:"min=1,max=50"`
	Tag    string `query:"tag"    validate:"max=50"`
	UserID string `query:"userId" validate:"omitempty,mongodb"`
}

func DefaultFeedQuery() FeedQuery {
	return FeedQuery{Page: 1, Limit: 10}
}

// FeedPost is a feed entry with its request-time ranking.
type FeedPost struct {
	PostResponse
	PersonalizedScore int  `json:"personalizedScore"`
	IsLikedByUser     bool `json:"isLikedByUser"`
}

type FeedFilters struct {
	Tag          *string `json:"tag"`
	Personalized bool    `json:"personalized"`
}

type FeedResult struct {
	Posts      []FeedPost
	Pagination PostPagination
}

type PostListResult struct {
	Posts      []PostResponse
	Pagination PostPagination
}
