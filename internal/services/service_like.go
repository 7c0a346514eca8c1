package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/yashwanthsk20/insta-feed-backend/dto"
	"github.com/yashwanthsk20/insta-feed-backend/internal/logging"
	"github.com/yashwanthsk20/insta-feed-backend/internal/metrics"
	"github.com/yashwanthsk20/insta-feed-backend/internal/models"
	"github.com/yashwanthsk20/insta-feed-backend/internal/repository"
	"github.com/yashwanthsk20/insta-feed-backend/internal/utils"
)

type LikeService struct {
	store repository.Store
	now   func() time.Time
}

func NewLikeService(store repository.Store) *LikeService {
	return &LikeService{store: store, now: time.Now}
}

// ToggleLike flips userID's like on postID.
//
// The like record decides the direction: a successful delete means the user
// had liked the post, otherwise the unique insert adds it. The counter moves
// with an atomic floored increment and the stored score is only written
// while likes_count still matches the value it was computed from, so
// concurrent toggles never lose an update.
func (s *LikeService) ToggleLike(ctx context.Context, postID, userID string) (dto.LikeToggleResponse, error) {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return dto.LikeToggleResponse{}, ErrUserNotFound
	}
	user, err := s.store.Users().FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.LikeToggleResponse{}, ErrUserNotFound
		}
		return dto.LikeToggleResponse{}, err
	}

	pid, err := bson.ObjectIDFromHex(postID)
	if err != nil {
		return dto.LikeToggleResponse{}, ErrPostNotFound
	}
	post, err := s.store.Posts().FindByID(ctx, pid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.LikeToggleResponse{}, ErrPostNotFound
		}
		return dto.LikeToggleResponse{}, err
	}

	removed, err := s.store.Likes().Delete(ctx, uid, pid)
	if err != nil {
		return dto.LikeToggleResponse{}, err
	}

	action := dto.ActionUnliked
	if removed {
		if post, err = s.store.Posts().IncLikesCount(ctx, pid, -1); err != nil {
			s.undoLike(ctx, uid, pid, true)
			return dto.LikeToggleResponse{}, postErr(err)
		}
	} else {
		action = dto.ActionLiked
		dup, err := s.store.Likes().Insert(ctx, &models.Like{
			UserID:    uid,
			PostID:    pid,
			CreatedAt: s.now().UTC(),
		})
		if err != nil {
			return dto.LikeToggleResponse{}, err
		}
		if !dup {
			if post, err = s.store.Posts().IncLikesCount(ctx, pid, 1); err != nil {
				s.undoLike(ctx, uid, pid, false)
				return dto.LikeToggleResponse{}, postErr(err)
			}
			if missing := utils.MissingTags(user.LikedTags, post.Tags); len(missing) > 0 {
				if err := s.store.Users().AddLikedTags(ctx, uid, missing); err != nil {
					return dto.LikeToggleResponse{}, err
				}
			}
		}
	}

	s.refreshScore(ctx, post)
	metrics.RecordLikeToggle(action)

	return dto.LikeToggleResponse{
		PostID:     postID,
		LikesCount: post.LikesCount,
		Action:     action,
		IsLiked:    action == dto.ActionLiked,
	}, nil
}

// refreshScore skips the write when another toggle already moved
// likes_count; that toggle stores its own score.
func (s *LikeService) refreshScore(ctx context.Context, post *models.Post) {
	score := CalculateBaseScore(*post, s.now())
	written, err := s.store.Posts().SetScore(ctx, post.ID, post.LikesCount, score)
	switch {
	case err != nil:
		logging.Warn().Err(err).Str("post_id", post.ID.Hex()).Msg("score not updated")
	case !written:
		logging.Debug().Str("post_id", post.ID.Hex()).Int("likes_count", post.LikesCount).Msg("score superseded by concurrent toggle")
	default:
		post.Score = score
	}
}

// undoLike reverts the like write of a toggle whose counter update failed,
// keeping likes_count equal to the number of like records. A restored like
// gets a fresh created_at.
func (s *LikeService) undoLike(ctx context.Context, uid, pid bson.ObjectID, removed bool) {
	var err error
	if removed {
		_, err = s.store.Likes().Insert(ctx, &models.Like{UserID: uid, PostID: pid, CreatedAt: s.now().UTC()})
	} else {
		_, err = s.store.Likes().Delete(ctx, uid, pid)
	}
	if err != nil {
		logging.Error().Err(err).
			Str("post_id", pid.Hex()).
			Str("user_id", uid.Hex()).
			Msg("like not reverted after counter update failed")
	}
}

func postErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPostNotFound
	}
	return err
}
