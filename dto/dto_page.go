package dto

import "github.com/yashwanthsk20/insta-feed-backend/internal/utils"

// PageQuery is the common ?page=&limit= pair of list endpoints.
type PageQuery struct {
	Page  int `query:"page"  validate:"min=1"`
	Limit int `query:"limit" validate:"min=1,max=100"`
}

func DefaultPageQuery() PageQuery {
	return PageQuery{Page: 1, Limit: 10}
}

type PostPagination struct {
	utils.Page
	TotalPosts int64 `json:"totalPosts"`
}

type UserPagination struct {
	utils.Page
	TotalUsers int64 `json:"totalUsers"`
}
