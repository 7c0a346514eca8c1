package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/yashwanthsk20/insta-feed-backend/internal/models"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)

// PostFilter narrows post queries. Zero values mean "no restriction".
type PostFilter struct {
	Tag      string
	AuthorID bson.ObjectID
}

type UserRepository interface {
	// Insert assigns u.ID and returns ErrDuplicate when username or email
	// is taken.
	Insert(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	// List returns users newest first; search matches username or full name,
	// case-insensitive substring.
	List(ctx context.Context, search string, skip, limit int64) ([]models.User, error)
	Count(ctx context.Context, search string) (int64, error)
	SetLikedTags(ctx context.Context, id bson.ObjectID, tags []string) (*models.User, error)
	// AddLikedTags appends the tags the user does not have yet.
	AddLikedTags(ctx context.Context, id bson.ObjectID, tags []string) error
	IncPostsCount(ctx context.Context, id bson.ObjectID, delta int) error
}

type PostRepository interface {
	Insert(ctx context.Context, p *models.Post) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error)
	// Find orders by created_at desc, likes_count desc, _id desc.
	Find(ctx context.Context, f PostFilter, skip, limit int64) ([]models.Post, error)
	Count(ctx context.Context, f PostFilter) (int64, error)
	// IncLikesCount atomically adds delta, flooring at zero, and returns the
	// updated post.
	IncLikesCount(ctx context.Context, id bson.ObjectID, delta int) (*models.Post, error)
	// SetScore writes score only while likes_count still equals likesCount.
	// It reports whether the write happened.
	SetScore(ctx context.Context, id bson.ObjectID, likesCount int, score float64) (bool, error)
}

type LikeRepository interface {
	// Insert reports dup=true when the user already likes the post.
	Insert(ctx context.Context, l *models.Like) (dup bool, err error)
	// Delete reports whether a like was removed.
	Delete(ctx context.Context, userID, postID bson.ObjectID) (bool, error)
	// ListByPosts groups the likes of postIDs by post, oldest first.
	ListByPosts(ctx context.Context, postIDs []bson.ObjectID) (map[bson.ObjectID][]models.Like, error)
}

// Store is the storage handle shared by every service.
type Store interface {
	Users() UserRepository
	Posts() PostRepository
	Likes() LikeRepository
	Ping(ctx context.Context) error
	// Reset removes every user, post and like. Used by the seeder.
	Reset(ctx context.Context) error
	Close(ctx context.Context) error
}
