package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Post struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	AuthorID      bson.ObjectID `bson:"author_id" json:"authorId"`
	Content       string        `bson:"content" json:"content"`
	ImageURL      string        `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	Tags          []string      `bson:"tags" json:"tags"`
	LikesCount    int           `bson:"likes_count" json:"likesCount"`
	CommentsCount int           `bson:"comments_count" json:"commentsCount"`
	// Score is the stored coarse ranking value, see services.CalculateBaseScore.
	Score     float64   `bson:"score" json:"score"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
