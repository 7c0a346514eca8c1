package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/yashwanthsk20/insta-feed-backend/dto"
	"github.com/yashwanthsk20/insta-feed-backend/internal/metrics"
	"github.com/yashwanthsk20/insta-feed-backend/internal/models"
	"github.com/yashwanthsk20/insta-feed-backend/internal/repository"
	"github.com/yashwanthsk20/insta-feed-backend/internal/utils"
)

type UserService struct {
	store repository.Store
	now   func() time.Time
}

func NewUserService(store repository.Store) *UserService {
	return &UserService{store: store, now: time.Now}
}

func (s *UserService) CreateUser(ctx context.Context, body dto.CreateUserDTO) (*models.User, error) {
	body.Normalize()

	exists, err := s.store.Users().ExistsByUsernameOrEmail(ctx, body.Username, body.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	now := s.now().UTC()
	u := &models.User{
		Username:  body.Username,
		Email:     body.Email,
		FullName:  body.FullName,
		Bio:       body.Bio,
		Avatar:    body.Avatar,
		LikedTags: []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if u.Avatar == "" {
		u.Avatar = models.DefaultAvatar
	}

	// the unique indexes still catch a racing insert
	if err := s.store.Users().Insert(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	metrics.UsersCreatedTotal.Inc()
	return u, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	u, err := s.store.Users().FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) ListUsers(ctx context.Context, q dto.UserListQuery) (dto.UserListResult, error) {
	search := strings.TrimSpace(q.Search)
	users, err := s.store.Users().List(ctx, search, utils.Skip(q.Page, q.Limit), int64(q.Limit))
	if err != nil {
		return dto.UserListResult{}, err
	}
	total, err := s.store.Users().Count(ctx, search)
	if err != nil {
		return dto.UserListResult{}, err
	}
	if users == nil {
		users = []models.User{}
	}
	return dto.UserListResult{
		Users: users,
		Pagination: dto.UserPagination{
			Page:       utils.Paginate(q.Page, q.Limit, total),
			TotalUsers: total,
		},
	}, nil
}

// UpdateUserTags replaces the user's liked tags. A nil slice means the
// request carried no array and nothing is written.
func (s *UserService) UpdateUserTags(ctx context.Context, id string, tags []string) (*models.User, error) {
	if tags == nil {
		return nil, ErrTagsNotArray
	}
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	u, err := s.store.Users().SetLikedTags(ctx, oid, utils.LowercaseTags(tags))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
