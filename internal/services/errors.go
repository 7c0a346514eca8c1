package services

import "errors"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrPostNotFound   = errors.New("post not found")
	ErrAuthorNotFound = errors.New("author not found")
	ErrUserExists     = errors.New("user with this email or username already exists")
	ErrTagsNotArray   = errors.New("tags must be an array")
)
