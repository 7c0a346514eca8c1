package dto

import (
	"strings"

	"github.com/yashwanthsk20/insta-feed-backend/internal/models"
)

type CreateUserDTO struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email"    validate:"required,email"`
	FullName string `json:"fullName" validate:"required,max=100"`
	Bio      string `json:"bio"      validate:"max=500"`
	Avatar   string `json:"avatar"   validate:"omitempty,uri"`
}

// Normalize trims the identity fields and lowercases the email. Call it
// before validation so length rules apply to the stored values.
func (d *CreateUserDTO) Normalize() {
	d.Username = strings.TrimSpace(d.Username)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.FullName = strings.TrimSpace(d.FullName)
}

// UpdateTagsDTO carries the replacement liked-tag set. A nil Tags means the
// field was missing, null or not an array.
type UpdateTagsDTO struct {
	Tags []string `json:"tags"`
}

type UserListQuery struct {
	Page   int    `query:"page"   validate:"min=1"`
	Limit  int    `query:"limit"  validate:"min=1,max=100"`
	Search string `query:"search" validate:"max=100"`
}

func DefaultUserListQuery() UserListQuery {
	return UserListQuery{Page: 1, Limit: 10}
}

type UserListResult struct {
	Users      []models.User
	Pagination UserPagination
}

// AuthorSummary is the populated author of a post.
type AuthorSummary struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

func NewAuthorSummary(u models.User) *AuthorSummary {
	return &AuthorSummary{
		ID:       u.ID.Hex(),
		Username: u.Username,
		FullName: u.FullName,
		Avatar:   u.Avatar,
	}
}
