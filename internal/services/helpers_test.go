package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/yashwanthsk20/insta-feed-backend/internal/models"
	"github.com/yashwanthsk20/insta-feed-backend/internal/repository/repotest"
)

var testNow = time.Date(2025, 8, 14, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func hoursAgo(h float64) time.Time {
	return testNow.Add(-time.Duration(h * float64(time.Hour)))
}

func seedUser(t *testing.T, store *repotest.Store, name string, likedTags ...string) models.User {
	t.Helper()
	u := models.User{
		Username:  name,
		Email:     name + "@example.com",
		FullName:  name,
		Avatar:    models.DefaultAvatar,
		LikedTags: likedTags,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
	if err := store.Users().Insert(context.Background(), &u); err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return u
}

func seedPost(t *testing.T, store *repotest.Store, author models.User, age float64, likes int, tags ...string) models.Post {
	t.Helper()
	p := models.Post{
		AuthorID:   author.ID,
		Content:    fmt.Sprintf("post %.1fh old", age),
		Tags:       tags,
		LikesCount: likes,
		CreatedAt:  hoursAgo(age),
		UpdatedAt:  hoursAgo(age),
	}
	if err := store.Posts().Insert(context.Background(), &p); err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return p
}
