package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Collection names used by the MongoDB store.
const (
	CollUsers = "users"
	CollPosts = "posts"
	CollLikes = "likes"
)

type MongoStore struct {
	db    *mongo.Database
	users *mongoUserRepository
	posts *mongoPostRepository
	likes *mongoLikeRepository
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		db:    db,
		users: &mongoUserRepository{col: db.Collection(CollUsers)},
		posts: &mongoPostRepository{col: db.Collection(CollPosts)},
		likes: &mongoLikeRepository{col: db.Collection(CollLikes)},
	}
}

func (s *MongoStore) Users() UserRepository { return s.users }
func (s *MongoStore) Posts() PostRepository { return s.posts }
func (s *MongoStore) Likes() LikeRepository { return s.likes }

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Reset(ctx context.Context) error {
	for _, name := range []string{CollLikes, CollPosts, CollUsers} {
		if _, err := s.db.Collection(name).DeleteMany(ctx, bson.D{}); err != nil {
			return err
		}
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

// isDuplicateKey matches the E11000 family, whichever error type the
// driver wraps it in.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) && len(we.WriteErrors) > 0 && we.WriteErrors[0].Code == 11000 {
		return true
	}
	return mongo.IsDuplicateKeyError(err)
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
