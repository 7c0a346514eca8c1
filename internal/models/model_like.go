package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Like is one user's like on one post; (UserID, PostID) is unique.
type Like struct {
	ID        bson.ObjectID `json:"_id"       bson:"_id,omitempty"`
	UserID    bson.ObjectID `json:"user"      bson:"user_id"`
	PostID    bson.ObjectID `json:"-"         bson:"post_id"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
}
