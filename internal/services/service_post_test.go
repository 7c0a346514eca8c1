package services

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/yashwanthsk20/insta-feed-backend/dto"
	"github.com/yashwanthsk20/insta-feed-backend/internal/models"
	"github.com/yashwanthsk20/insta-feed-backend/internal/repository/repotest"
)

func newPostService(store *repotest.Store) *PostService {
	s := NewPostService(store)
	s.now = fixedNow
	return s
}

func TestCalculateBaseScore(t *testing.T) {
	tests := []struct {
		name     string
		ageHours float64
		likes    int
		want     float64
	}{
		{"brand new", 0, 0, 100},
		{"ten hours, five likes", 10, 5, 140},
		{"recency floors at zero", 200, 0, 0},
		{"popularity capped", 200, 150, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := models.Post{CreatedAt: hoursAgo(tt.ageHours), LikesCount: tt.likes}
			if got := CalculateBaseScore(p, testNow); got != tt.want {
				t.Errorf("score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCreatePost(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewStore()
	author := seedUser(t, store, "author")

	resp, err := newPostService(store).CreatePost(ctx, dto.CreatePostDTO{
		Content:  "hello",
		Tags:     []string{" Go ", "FIBER", ""},
		AuthorID: author.ID.Hex(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !slices.Equal(resp.Tags, []string{"go", "fiber"}) {
		t.Errorf("tags = %v", resp.Tags)
	}
	if resp.Author == nil || resp.Author.ID != author.ID.Hex() {
		t.Errorf("author = %+v", resp.Author)
	}
	if resp.Score != 100 || resp.LikesCount != 0 || resp.ImageURL != nil {
		t.Errorf("score=%v likes=%d image=%v", resp.Score, resp.LikesCount, resp.ImageURL)
	}

	u, _ := store.Users().FindByID(ctx, author.ID)
	if u.PostsCount != 1 {
		t.Errorf("postsCount = %d, want 1", u.PostsCount)
	}
}

func TestCreatePostUnknownAuthor(t *testing.T) {
	store := repotest.NewStore()

	_, err := newPostService(store).CreatePost(context.Background(), dto.CreatePostDTO{
		Content:  "orphan",
		AuthorID: "64b7f0c2a1b2c3d4e5f60718",
	})
	if !errors.Is(err, ErrAuthorNotFound) {
		t.Fatalf("err = %v, want ErrAuthorNotFound", err)
	}
	if store.PostCount() != 0 {
		t.Errorf("%d posts persisted for unknown author", store.PostCount())
	}
}

func TestGetPost(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewStore()
	author := seedUser(t, store, "author")
	fan := seedUser(t, store, "fan")
	post := seedPost(t, store, author, 1, 0, "go")
	if _, err := newLikeService(store).ToggleLike(ctx, post.ID.Hex(), fan.ID.Hex()); err != nil {
		t.Fatal(err)
	}

	resp, err := newPostService(store).GetPost(ctx, post.ID.Hex())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if resp.LikesCount != 1 || len(resp.Likes) != 1 || resp.Likes[0].User != fan.ID.Hex() {
		t.Errorf("likes = %+v (count %d)", resp.Likes, resp.LikesCount)
	}

	for _, id := range []string{"64b7f0c2a1b2c3d4e5f60718", "nope"} {
		if _, err := newPostService(store).GetPost(ctx, id); !errors.Is(err, ErrPostNotFound) {
			t.Errorf("GetPost(%q) err = %v, want ErrPostNotFound", id, err)
		}
	}
}

func TestListPostsByUser(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewStore()
	author := seedUser(t, store, "author")
	other := seedUser(t, store, "other")
	for i := range 3 {
		seedPost(t, store, author, float64(i), 0)
	}
	seedPost(t, store, other, 0.5, 0)

	res, err := newPostService(store).ListPostsByUser(ctx, author.ID, dto.PageQuery{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(res.Posts) != 2 || res.Pagination.TotalPosts != 3 || !res.Pagination.HasNextPage {
		t.Errorf("got %d posts, pagination %+v", len(res.Posts), res.Pagination)
	}
	if !res.Posts[0].CreatedAt.After(res.Posts[1].CreatedAt) {
		t.Error("posts are not newest first")
	}
	for _, p := range res.Posts {
		if p.Author == nil || p.Author.ID != author.ID.Hex() {
			t.Errorf("post %s belongs to %+v", p.ID, p.Author)
		}
	}
}
