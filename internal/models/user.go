package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const DefaultAvatar = "https://via.placeholder.com/150"

type User struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username  string        `bson:"username" json:"username"`
	Email     string        `bson:"email" json:"email"`
	FullName  string        `bson:"full_name" json:"fullName"`
	Bio       string        `bson:"bio" json:"bio"`
	Avatar    string        `bson:"avatar" json:"avatar"`
	LikedTags []string      `bson:"liked_tags" json:"likedTags"`

	// followers/following are kept for API compatibility, nothing updates them
	FollowersCount int `bson:"followers_count" json:"followersCount"`
	FollowingCount int `bson:"following_count" json:"followingCount"`
	PostsCount     int `bson:"posts_count" json:"postsCount"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
