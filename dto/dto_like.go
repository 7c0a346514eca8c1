package dto

const (
	ActionLiked   = "liked"
	ActionUnliked = "unliked"
)

type LikeRequestDTO struct {
	UserID string `json:"userId" validate:"required,mongodb"`
}

type LikeToggleResponse struct {
	PostID     string `json:"postId"`
	LikesCount int    `json:"likesCount"`
	Action     string `json:"action"`
	IsLiked    bool   `json:"isLiked"`
}
