package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/yashwanthsk20/insta-feed-backend/internal/models"
)

type mongoPostRepository struct {
	col *mongo.Collection
}

// feedSort is the coarse order; _id breaks createdAt/likes ties so that
// offset pages never overlap.
var feedSort = bson.D{
	{Key: "created_at", Value: -1},
	{Key: "likes_count", Value: -1},
	{Key: "_id", Value: -1},
}

func postFilter(f PostFilter) bson.M {
	filter := bson.M{}
	if f.Tag != "" {
		filter["tags"] = bson.M{"$in": bson.A{f.Tag}}
	}
	if !f.AuthorID.IsZero() {
		filter["author_id"] = f.AuthorID
	}
	return filter
}

func (r *mongoPostRepository) Insert(ctx context.Context, p *models.Post) error {
	if p.ID.IsZero() {
		p.ID = bson.NewObjectID()
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	_, err := r.col.InsertOne(ctx, p)
	return err
}

func (r *mongoPostRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *mongoPostRepository) Find(ctx context.Context, f PostFilter, skip, limit int64) ([]models.Post, error) {
	findOpt := options.Find().
		SetSort(feedSort).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, postFilter(f), findOpt)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := []models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *mongoPostRepository) Count(ctx context.Context, f PostFilter) (int64, error) {
	return r.col.CountDocuments(ctx, postFilter(f))
}

func (r *mongoPostRepository) IncLikesCount(ctx context.Context, id bson.ObjectID, delta int) (*models.Post, error) {
	// pipeline update so that the floor is applied in the same atomic write
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "likes_count", Value: bson.D{{Key: "$max", Value: bson.A{
				0,
				bson.D{{Key: "$add", Value: bson.A{bson.D{{Key: "$ifNull", Value: bson.A{"$likes_count", 0}}}, delta}}},
			}}}},
			{Key: "updated_at", Value: time.Now().UTC()},
		}}},
	}
	opt := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.Post
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opt).Decode(&p); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *mongoPostRepository) SetScore(ctx context.Context, id bson.ObjectID, likesCount int, score float64) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "likes_count": likesCount},
		bson.M{"$set": bson.M{"score": score}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}
