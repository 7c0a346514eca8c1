// Package repotest provides an in-memory repository.Store for service and
// handler tests. It follows the same ordering, uniqueness and atomicity
// rules as the MongoDB and Postgres stores.
package repotest

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/yashwanthsk20/insta-feed-backend/internal/models"
	"github.com/yashwanthsk20/insta-feed-backend/internal/repository"
)

type Store struct {
	mu    sync.Mutex
	users map[bson.ObjectID]models.User
	posts map[bson.ObjectID]models.Post
	likes []models.Like

	// Err, when set, is returned by every repository call.
	Err error
}

func NewStore() *Store {
	return &Store{
		users: map[bson.ObjectID]models.User{},
		posts: map[bson.ObjectID]models.Post{},
	}
}

func (s *Store) Users() repository.UserRepository { return userRepo{s} }
func (s *Store) Posts() repository.PostRepository { return postRepo{s} }
func (s *Store) Likes() repository.LikeRepository { return likeRepo{s} }

func (s *Store) Ping(context.Context) error { return s.Err }

func (s *Store) Reset(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = map[bson.ObjectID]models.User{}
	s.posts = map[bson.ObjectID]models.Post{}
	s.likes = nil
	return s.Err
}

func (s *Store) Close(context.Context) error { return nil }

// PostCount and LikeCount let tests assert on raw state.
func (s *Store) PostCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

func (s *Store) LikeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.likes)
}

func cloneUser(u models.User) models.User {
	u.LikedTags = slices.Clone(u.LikedTags)
	return u
}

func clonePost(p models.Post) models.Post {
	p.Tags = slices.Clone(p.Tags)
	return p
}

type userRepo struct{ s *Store }

func (r userRepo) Insert(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for _, existing := range r.s.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}
	if u.LikedTags == nil {
		u.LikedTags = []string{}
	}
	r.s.users[u.ID] = cloneUser(*u)
	return nil
}

func (r userRepo) FindByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u = cloneUser(u)
	return &u, nil
}

func (r userRepo) FindByIDs(_ context.Context, ids []bson.ObjectID) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var out []models.User
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r userRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return false, r.s.Err
	}
	for _, u := range r.s.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r userRepo) matching(search string) []models.User {
	needle := strings.ToLower(search)
	var out []models.User
	for _, u := range r.s.users {
		if needle == "" ||
			strings.Contains(strings.ToLower(u.Username), needle) ||
			strings.Contains(strings.ToLower(u.FullName), needle) {
			out = append(out, cloneUser(u))
		}
	}
	slices.SortFunc(out, func(a, b models.User) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return b.ID.Compare(a.ID)
	})
	return out
}

func (r userRepo) List(_ context.Context, search string, skip, limit int64) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return window(r.matching(search), skip, limit), nil
}

func (r userRepo) Count(_ context.Context, search string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	return int64(len(r.matching(search))), nil
}

func (r userRepo) SetLikedTags(_ context.Context, id bson.ObjectID, tags []string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.LikedTags = slices.Clone(tags)
	if u.LikedTags == nil {
		u.LikedTags = []string{}
	}
	u.UpdatedAt = time.Now().UTC()
	r.s.users[id] = u
	u = cloneUser(u)
	return &u, nil
}

func (r userRepo) AddLikedTags(_ context.Context, id bson.ObjectID, tags []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	for _, t := range tags {
		if !slices.Contains(u.LikedTags, t) {
			u.LikedTags = append(u.LikedTags, t)
		}
	}
	u.UpdatedAt = time.Now().UTC()
	r.s.users[id] = u
	return nil
}

func (r userRepo) IncPostsCount(_ context.Context, id bson.ObjectID, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PostsCount += delta
	r.s.users[id] = u
	return nil
}

type postRepo struct{ s *Store }

func (r postRepo) Insert(_ context.Context, p *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if p.ID.IsZero() {
		p.ID = bson.NewObjectID()
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	r.s.posts[p.ID] = clonePost(*p)
	return nil
}

func (r postRepo) FindByID(_ context.Context, id bson.ObjectID) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	p, ok := r.s.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = clonePost(p)
	return &p, nil
}

func (r postRepo) matching(f repository.PostFilter) []models.Post {
	var out []models.Post
	for _, p := range r.s.posts {
		if f.Tag != "" && !slices.Contains(p.Tags, f.Tag) {
			continue
		}
		if !f.AuthorID.IsZero() && p.AuthorID != f.AuthorID {
			continue
		}
		out = append(out, clonePost(p))
	}
	slices.SortFunc(out, func(a, b models.Post) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		if c := cmp.Compare(b.LikesCount, a.LikesCount); c != 0 {
			return c
		}
		return b.ID.Compare(a.ID)
	})
	return out
}

func (r postRepo) Find(_ context.Context, f repository.PostFilter, skip, limit int64) ([]models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return window(r.matching(f), skip, limit), nil
}

func (r postRepo) Count(_ context.Context, f repository.PostFilter) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	return int64(len(r.matching(f))), nil
}

func (r postRepo) IncLikesCount(_ context.Context, id bson.ObjectID, delta int) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	p, ok := r.s.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.LikesCount = max(0, p.LikesCount+delta)
	p.UpdatedAt = time.Now().UTC()
	r.s.posts[id] = p
	p = clonePost(p)
	return &p, nil
}

func (r postRepo) SetScore(_ context.Context, id bson.ObjectID, likesCount int, score float64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return false, r.s.Err
	}
	p, ok := r.s.posts[id]
	if !ok || p.LikesCount != likesCount {
		return false, nil
	}
	p.Score = score
	r.s.posts[id] = p
	return true, nil
}

type likeRepo struct{ s *Store }

func (r likeRepo) Insert(_ context.Context, l *models.Like) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return false, r.s.Err
	}
	for _, existing := range r.s.likes {
		if existing.UserID == l.UserID && existing.PostID == l.PostID {
			return true, nil
		}
	}
	if l.ID.IsZero() {
		l.ID = bson.NewObjectID()
	}
	r.s.likes = append(r.s.likes, *l)
	return false, nil
}

func (r likeRepo) Delete(_ context.Context, userID, postID bson.ObjectID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return false, r.s.Err
	}
	for i, l := range r.s.likes {
		if l.UserID == userID && l.PostID == postID {
			r.s.likes = slices.Delete(r.s.likes, i, i+1)
			return true, nil
		}
	}
	return false, nil
}

func (r likeRepo) ListByPosts(_ context.Context, postIDs []bson.ObjectID) (map[bson.ObjectID][]models.Like, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make(map[bson.ObjectID][]models.Like, len(postIDs))
	for _, l := range r.s.likes {
		if slices.Contains(postIDs, l.PostID) {
			out[l.PostID] = append(out[l.PostID], l)
		}
	}
	return out, nil
}

func window[T any](items []T, skip, limit int64) []T {
	out := []T{}
	if skip >= int64(len(items)) {
		return out
	}
	end := int64(len(items))
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return append(out, items[skip:end]...)
}
