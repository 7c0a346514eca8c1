package bootstrap

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/yashwanthsk20/insta-feed-backend/internal/repository"
)

func EnsureUserIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(repository.CollUsers).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_username"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys:    bson.D{{Key: "liked_tags", Value: 1}},
			Options: options.Index().SetName("liked_tags"),
		},
	})
	return err
}

func EnsurePostIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(repository.CollPosts).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_at_desc"),
		},
		{
			Keys:    bson.D{{Key: "likes_count", Value: -1}},
			Options: options.Index().SetName("likes_count_desc"),
		},
		{
			Keys:    bson.D{{Key: "score", Value: -1}},
			Options: options.Index().SetName("score_desc"),
		},
		{
			Keys:    bson.D{{Key: "tags", Value: 1}},
			Options: options.Index().SetName("tags"),
		},
		{
			Keys:    bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("author_created_at"),
		},
		{
			Keys: bson.D{
				{Key: "tags", Value: 1},
				{Key: "created_at", Value: -1},
				{Key: "likes_count", Value: -1},
			},
			Options: options.Index().SetName("tags_created_at_likes"),
		},
	})
	return err
}

func EnsureLikeIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(repository.CollLikes).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "post_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_user_post"),
		},
		{
			Keys:    bson.D{{Key: "post_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("post_created_at"),
		},
	})
	return err
}

// EnsureMongoIndexes creates every index the store relies on. The unique
// indexes back the duplicate checks in the repositories.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	steps := []struct {
		name string
		fn   func(context.Context, *mongo.Database) error
	}{
		{repository.CollUsers, EnsureUserIndexes},
		{repository.CollPosts, EnsurePostIndexes},
		{repository.CollLikes, EnsureLikeIndexes},
	}
	for _, s := range steps {
		if err := s.fn(ctx, db); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", s.name, err)
		}
	}
	return nil
}
