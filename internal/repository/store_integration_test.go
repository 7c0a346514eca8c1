//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/yashwanthsk20/insta-feed-backend/bootstrap"
	"github.com/yashwanthsk20/insta-feed-backend/database"
	"github.com/yashwanthsk20/insta-feed-backend/internal/models"
	"github.com/yashwanthsk20/insta-feed-backend/internal/repository"
)

func skipIfNoDocker(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

func TestMongoStore(t *testing.T) {
	skipIfNoDocker(t)
	ctx := context.Background()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("27017/tcp"),
				wait.ForLog("Waiting for connections"),
			).WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Fatalf("start mongo: %v", err)
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		t.Fatal(err)
	}
	port, err := ctr.MappedPort(ctx, "27017")
	if err != nil {
		t.Fatal(err)
	}

	client, err := database.ConnectMongo(ctx, fmt.Sprintf("mongodb://%s:%s", host, port.Port()))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	db := client.Database("social_feed_test")
	if err := bootstrap.EnsureMongoIndexes(ctx, db); err != nil {
		t.Fatalf("indexes: %v", err)
	}
	// second run must be a no-op
	if err := bootstrap.EnsureMongoIndexes(ctx, db); err != nil {
		t.Fatalf("indexes again: %v", err)
	}

	store := repository.NewMongoStore(db)
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	runStoreSuite(t, store)
}

func TestPostgresStore(t *testing.T) {
	skipIfNoDocker(t)
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("social_feed"),
		tcpostgres.WithUsername("feed"),
		tcpostgres.WithPassword("feed"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatal(err)
	}
	pool, err := database.ConnectPostgres(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := bootstrap.EnsurePostgresSchema(ctx, pool); err != nil {
		t.Fatalf("schema: %v", err)
	}
	if err := bootstrap.EnsurePostgresSchema(ctx, pool); err != nil {
		t.Fatalf("schema again: %v", err)
	}

	store := repository.NewPostgresStore(pool)
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	runStoreSuite(t, store)
}

// both stores keep at least millisecond precision
var base = time.Now().UTC().Truncate(time.Millisecond)

func runStoreSuite(t *testing.T, store repository.Store) {
	ctx := context.Background()
	if err := store.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	t.Run("users", func(t *testing.T) {
		resetStore(t, store)
		testUsers(t, store)
	})
	t.Run("posts", func(t *testing.T) {
		resetStore(t, store)
		testPosts(t, store)
	})
	t.Run("likes", func(t *testing.T) {
		resetStore(t, store)
		testLikes(t, store)
	})
}

func resetStore(t *testing.T, store repository.Store) {
	t.Helper()
	if err := store.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
}

func newUser(t *testing.T, store repository.Store, name, fullName string, age time.Duration) models.User {
	t.Helper()
	u := models.User{
		Username:  name,
		Email:     name + "@example.com",
		FullName:  fullName,
		Avatar:    models.DefaultAvatar,
		CreatedAt: base.Add(-age),
		UpdatedAt: base.Add(-age),
	}
	if err := store.Users().Insert(context.Background(), &u); err != nil {
		t.Fatalf("insert user %s: %v", name, err)
	}
	return u
}

func newPost(t *testing.T, store repository.Store, author models.User, age time.Duration, likes int, tags ...string) models.Post {
	t.Helper()
	p := models.Post{
		AuthorID:   author.ID,
		Content:    "content",
		Tags:       tags,
		LikesCount: likes,
		CreatedAt:  base.Add(-age),
		UpdatedAt:  base.Add(-age),
	}
	if err := store.Posts().Insert(context.Background(), &p); err != nil {
		t.Fatalf("insert post: %v", err)
	}
	return p
}

func testUsers(t *testing.T, store repository.Store) {
	ctx := context.Background()
	users := store.Users()

	john := newUser(t, store, "johndoe", "John Doe", 2*time.Hour)
	jane := newUser(t, store, "jane", "Jane Johnson", time.Hour)
	newUser(t, store, "mike", "Mike Chen", 0)

	dup := models.User{Username: "johndoe", Email: "other@example.com", FullName: "X", CreatedAt: base, UpdatedAt: base}
	if err := users.Insert(ctx, &dup); !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("duplicate username err = %v", err)
	}
	dup = models.User{Username: "other", Email: "jane@example.com", FullName: "X", CreatedAt: base, UpdatedAt: base}
	if err := users.Insert(ctx, &dup); !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("duplicate email err = %v", err)
	}

	got, err := users.FindByID(ctx, john.ID)
	if err != nil || got.Username != "johndoe" || !got.CreatedAt.Equal(john.CreatedAt) {
		t.Errorf("FindByID = %+v, %v", got, err)
	}
	if got.LikedTags == nil {
		t.Error("likedTags decoded as nil")
	}
	if _, err := users.FindByID(ctx, bson.NewObjectID()); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("missing user err = %v", err)
	}

	found, err := users.FindByIDs(ctx, []bson.ObjectID{john.ID, jane.ID, bson.NewObjectID()})
	if err != nil || len(found) != 2 {
		t.Errorf("FindByIDs = %d users, %v", len(found), err)
	}

	exists, err := users.ExistsByUsernameOrEmail(ctx, "nobody", "jane@example.com")
	if err != nil || !exists {
		t.Errorf("exists by email = %v, %v", exists, err)
	}

	searches := []struct {
		search string
		want   []string
	}{
		{"", []string{"mike", "jane", "johndoe"}},
		{"JOH", []string{"jane", "johndoe"}},
		{"chen", []string{"mike"}},
		{".*", nil},
		{"%", nil},
	}
	for _, s := range searches {
		list, err := users.List(ctx, s.search, 0, 10)
		if err != nil {
			t.Fatalf("List(%q): %v", s.search, err)
		}
		var names []string
		for _, u := range list {
			names = append(names, u.Username)
		}
		if !slices.Equal(names, s.want) {
			t.Errorf("List(%q) = %v, want %v", s.search, names, s.want)
		}
		n, err := users.Count(ctx, s.search)
		if err != nil || n != int64(len(s.want)) {
			t.Errorf("Count(%q) = %d, %v", s.search, n, err)
		}
	}

	page, err := users.List(ctx, "", 1, 1)
	if err != nil || len(page) != 1 || page[0].Username != "jane" {
		t.Errorf("List skip=1 limit=1 = %v, %v", page, err)
	}

	updated, err := users.SetLikedTags(ctx, john.ID, []string{"go", "rust"})
	if err != nil || !slices.Equal(updated.LikedTags, []string{"go", "rust"}) {
		t.Errorf("SetLikedTags = %+v, %v", updated, err)
	}
	if err := users.AddLikedTags(ctx, john.ID, []string{"zig", "rust", "fiber", "zig", "ada"}); err != nil {
		t.Fatalf("AddLikedTags: %v", err)
	}
	got, _ = users.FindByID(ctx, john.ID)
	if !slices.Equal(got.LikedTags, []string{"go", "rust", "zig", "fiber", "ada"}) {
		t.Errorf("likedTags after add = %v", got.LikedTags)
	}
	if _, err := users.SetLikedTags(ctx, bson.NewObjectID(), nil); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("SetLikedTags missing err = %v", err)
	}

	if err := users.IncPostsCount(ctx, john.ID, 1); err != nil {
		t.Fatal(err)
	}
	got, _ = users.FindByID(ctx, john.ID)
	if got.PostsCount != 1 {
		t.Errorf("postsCount = %d", got.PostsCount)
	}
	if err := users.IncPostsCount(ctx, bson.NewObjectID(), 1); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("IncPostsCount missing err = %v", err)
	}
}

func testPosts(t *testing.T, store repository.Store) {
	ctx := context.Background()
	posts := store.Posts()
	author := newUser(t, store, "author", "Author", 0)
	other := newUser(t, store, "other", "Other", 0)

	oldest := newPost(t, store, author, 3*time.Hour, 0, "go")
	tiedLow := newPost(t, store, author, time.Hour, 1, "rust")
	tiedHigh := newPost(t, store, other, time.Hour, 5, "go", "rust")
	newest := newPost(t, store, other, 0, 0)

	all, err := posts.Find(ctx, repository.PostFilter{}, 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	var order []bson.ObjectID
	for _, p := range all {
		order = append(order, p.ID)
	}
	if want := []bson.ObjectID{newest.ID, tiedHigh.ID, tiedLow.ID, oldest.ID}; !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}

	goPosts, err := posts.Find(ctx, repository.PostFilter{Tag: "go"}, 0, 10)
	if err != nil || len(goPosts) != 2 {
		t.Errorf("tag filter = %d posts, %v", len(goPosts), err)
	}
	n, err := posts.Count(ctx, repository.PostFilter{Tag: "rust", AuthorID: author.ID})
	if err != nil || n != 1 {
		t.Errorf("count rust by author = %d, %v", n, err)
	}
	paged, err := posts.Find(ctx, repository.PostFilter{}, 3, 2)
	if err != nil || len(paged) != 1 || paged[0].ID != oldest.ID {
		t.Errorf("last page = %v, %v", paged, err)
	}

	p, err := posts.IncLikesCount(ctx, oldest.ID, 1)
	if err != nil || p.LikesCount != 1 {
		t.Fatalf("inc = %+v, %v", p, err)
	}
	for range 3 {
		if p, err = posts.IncLikesCount(ctx, oldest.ID, -1); err != nil {
			t.Fatal(err)
		}
	}
	if p.LikesCount != 0 {
		t.Errorf("likesCount = %d, want floored at 0", p.LikesCount)
	}
	if _, err := posts.IncLikesCount(ctx, bson.NewObjectID(), 1); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("inc missing err = %v", err)
	}

	ok, err := posts.SetScore(ctx, oldest.ID, 7, 42)
	if err != nil || ok {
		t.Errorf("stale SetScore = %v, %v", ok, err)
	}
	ok, err = posts.SetScore(ctx, oldest.ID, 0, 42)
	if err != nil || !ok {
		t.Errorf("SetScore = %v, %v", ok, err)
	}
	got, _ := posts.FindByID(ctx, oldest.ID)
	if got.Score != 42 {
		t.Errorf("score = %v", got.Score)
	}
	if _, err := posts.FindByID(ctx, bson.NewObjectID()); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("missing post err = %v", err)
	}
}

func testLikes(t *testing.T, store repository.Store) {
	ctx := context.Background()
	likes := store.Likes()
	author := newUser(t, store, "author", "Author", 0)
	fan := newUser(t, store, "fan", "Fan", 0)
	p1 := newPost(t, store, author, time.Hour, 0)
	p2 := newPost(t, store, author, 0, 0)

	for _, l := range []models.Like{
		{UserID: fan.ID, PostID: p1.ID, CreatedAt: base.Add(-time.Minute)},
		{UserID: author.ID, PostID: p1.ID, CreatedAt: base},
		{UserID: fan.ID, PostID: p2.ID, CreatedAt: base},
	} {
		dup, err := likes.Insert(ctx, &l)
		if err != nil || dup {
			t.Fatalf("insert like = %v, %v", dup, err)
		}
	}

	dup, err := likes.Insert(ctx, &models.Like{UserID: fan.ID, PostID: p1.ID, CreatedAt: base})
	if err != nil || !dup {
		t.Errorf("duplicate like = %v, %v", dup, err)
	}

	grouped, err := likes.ListByPosts(ctx, []bson.ObjectID{p1.ID, p2.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(grouped[p1.ID]) != 2 || len(grouped[p2.ID]) != 1 {
		t.Errorf("grouped = %d, %d", len(grouped[p1.ID]), len(grouped[p2.ID]))
	}
	if grouped[p1.ID][0].UserID != fan.ID {
		t.Error("likes not ordered oldest first")
	}

	removed, err := likes.Delete(ctx, fan.ID, p1.ID)
	if err != nil || !removed {
		t.Errorf("delete = %v, %v", removed, err)
	}
	removed, err = likes.Delete(ctx, fan.ID, p1.ID)
	if err != nil || removed {
		t.Errorf("second delete = %v, %v", removed, err)
	}

	empty, err := likes.ListByPosts(ctx, nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("ListByPosts(nil) = %v, %v", empty, err)
	}
}
