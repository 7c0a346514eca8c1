package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/yashwanthsk20/insta-feed-backend/internal/models"
)

type mongoLikeRepository struct {
	col *mongo.Collection
}

// Insert relies on the unique (user_id, post_id) index; a duplicate means
// the like already exists.
func (r *mongoLikeRepository) Insert(ctx context.Context, l *models.Like) (dup bool, err error) {
	if l.ID.IsZero() {
		l.ID = bson.NewObjectID()
	}
	_, err = r.col.InsertOne(ctx, l)
	if err == nil {
		return false, nil
	}
	if isDuplicateKey(err) {
		return true, nil
	}
	return false, err
}

func (r *mongoLikeRepository) Delete(ctx context.Context, userID, postID bson.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"user_id": userID, "post_id": postID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *mongoLikeRepository) ListByPosts(ctx context.Context, postIDs []bson.ObjectID) (map[bson.ObjectID][]models.Like, error) {
	out := make(map[bson.ObjectID][]models.Like, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	findOpt := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"post_id": bson.M{"$in": postIDs}}, findOpt)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var likes []models.Like
	if err := cur.All(ctx, &likes); err != nil {
		return nil, err
	}
	for _, l := range likes {
		out[l.PostID] = append(out[l.PostID], l)
	}
	return out, nil
}
