package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/yashwanthsk20/insta-feed-backend/internal/models"
)

type mongoUserRepository struct {
	col *mongo.Collection
}

func (r *mongoUserRepository) Insert(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}
	// $addToSet refuses to touch a null field
	if u.LikedTags == nil {
		u.LikedTags = []string{}
	}
	if _, err := r.col.InsertOne(ctx, u); err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *mongoUserRepository) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *mongoUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"username": username},
	}}
	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func userSearchFilter(search string) bson.M {
	if search == "" {
		return bson.M{}
	}
	pattern := regexp.QuoteMeta(search)
	return bson.M{"$or": bson.A{
		bson.M{"username": bson.M{"$regex": pattern, "$options": "i"}},
		bson.M{"full_name": bson.M{"$regex": pattern, "$options": "i"}},
	}}
}

func (r *mongoUserRepository) List(ctx context.Context, search string, skip, limit int64) ([]models.User, error) {
	findOpt := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, userSearchFilter(search), findOpt)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *mongoUserRepository) Count(ctx context.Context, search string) (int64, error) {
	return r.col.CountDocuments(ctx, userSearchFilter(search))
}

func (r *mongoUserRepository) SetLikedTags(ctx context.Context, id bson.ObjectID, tags []string) (*models.User, error) {
	if tags == nil {
		tags = []string{}
	}
	update := bson.M{"$set": bson.M{
		"liked_tags": tags,
		"updated_at": time.Now().UTC(),
	}}
	opt := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var u models.User
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opt).Decode(&u); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *mongoUserRepository) AddLikedTags(ctx context.Context, id bson.ObjectID, tags []string) error {
	if len(tags) == 0 {
		return nil
	}
	update := bson.M{
		"$addToSet": bson.M{"liked_tags": bson.M{"$each": tags}},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoUserRepository) IncPostsCount(ctx context.Context, id bson.ObjectID, delta int) error {
	update := bson.M{
		"$inc": bson.M{"posts_count": delta},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
