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

func newUserService(store *repotest.Store) *UserService {
	s := NewUserService(store)
	s.now = fixedNow
	return s
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(repotest.NewStore())

	u, err := svc.CreateUser(ctx, dto.CreateUserDTO{
		Username: "john_doe",
		Email:    "John@Example.com",
		FullName: "John Doe",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Email != "john@example.com" {
		t.Errorf("email = %q, want lowercased", u.Email)
	}
	if u.Avatar != models.DefaultAvatar {
		t.Errorf("avatar = %q", u.Avatar)
	}
	if u.LikedTags == nil || len(u.LikedTags) != 0 {
		t.Errorf("likedTags = %#v, want empty slice", u.LikedTags)
	}

	dupes := []dto.CreateUserDTO{
		{Username: "john_doe", Email: "other@example.com", FullName: "Other"},
		{Username: "someone", Email: "JOHN@example.com", FullName: "Someone"},
	}
	for _, d := range dupes {
		if _, err := svc.CreateUser(ctx, d); !errors.Is(err, ErrUserExists) {
			t.Errorf("CreateUser(%s, %s) err = %v, want ErrUserExists", d.Username, d.Email, err)
		}
	}
}

func TestGetUser(t *testing.T) {
	store := repotest.NewStore()
	u := seedUser(t, store, "jane")
	svc := newUserService(store)

	got, err := svc.GetUser(context.Background(), u.ID.Hex())
	if err != nil || got.Username != "jane" {
		t.Fatalf("GetUser = %+v, %v", got, err)
	}
	for _, id := range []string{"64b7f0c2a1b2c3d4e5f60718", "bad"} {
		if _, err := svc.GetUser(context.Background(), id); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("GetUser(%q) err = %v", id, err)
		}
	}
}

func TestListUsersSearch(t *testing.T) {
	store := repotest.NewStore()
	for _, name := range []string{"alice", "bob", "Malice", "carol"} {
		seedUser(t, store, name)
	}
	svc := newUserService(store)

	tests := []struct {
		search string
		want   int64
	}{
		{"", 4},
		{"ALIC", 2},
		{"bob", 1},
		{".*", 0},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			res, err := svc.ListUsers(context.Background(), dto.UserListQuery{Page: 1, Limit: 10, Search: tt.search})
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if res.Pagination.TotalUsers != tt.want || int64(len(res.Users)) != tt.want {
				t.Errorf("search %q: %d users (total %d), want %d", tt.search, len(res.Users), res.Pagination.TotalUsers, tt.want)
			}
		})
	}
}

func TestUpdateUserTags(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewStore()
	u := seedUser(t, store, "tagger", "old")
	svc := newUserService(store)

	if _, err := svc.UpdateUserTags(ctx, u.ID.Hex(), nil); !errors.Is(err, ErrTagsNotArray) {
		t.Fatalf("nil tags err = %v, want ErrTagsNotArray", err)
	}
	unchanged, _ := store.Users().FindByID(ctx, u.ID)
	if !slices.Equal(unchanged.LikedTags, []string{"old"}) {
		t.Errorf("rejected update mutated tags: %v", unchanged.LikedTags)
	}

	got, err := svc.UpdateUserTags(ctx, u.ID.Hex(), []string{"Go", "GO", "Rust"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if want := []string{"go", "go", "rust"}; !slices.Equal(got.LikedTags, want) {
		t.Errorf("likedTags = %v, want %v", got.LikedTags, want)
	}

	cleared, err := svc.UpdateUserTags(ctx, u.ID.Hex(), []string{})
	if err != nil || len(cleared.LikedTags) != 0 {
		t.Errorf("clear = %v, %v", cleared.LikedTags, err)
	}

	if _, err := svc.UpdateUserTags(ctx, "64b7f0c2a1b2c3d4e5f60718", []string{"x"}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown user err = %v", err)
	}
}
