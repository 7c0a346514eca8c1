package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/yashwanthsk20/insta-feed-backend/dto"
	"github.com/yashwanthsk20/insta-feed-backend/internal/services"
	"github.com/yashwanthsk20/insta-feed-backend/internal/validation"
)

// GetFeedHandler godoc
// @Summary      Personalized feed
// @Description  Newest posts first, re-ranked within the page by personalized score.
// @Description  With userId, posts matching the user's liked tags rank higher.
// @Tags         feed
// @Produce      json
// @Param        page    query     int     false  "Page (default 1)"
// @Param        limit   query     int     false  "Page size (default 10, max 50)"
// @Param        tag     query     string  false  "Only posts carrying this tag"
// @Param        userId  query     string  false  "Requesting user id"
// @Success      200     {object}  dto.Response{data=[]dto.FeedPost,pagination=dto.PostPagination,filters=dto.FeedFilters}
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /api/posts/feed [get]
func GetFeedHandler(svc *services.FeedService, timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := dto.DefaultFeedQuery()
		if err := c.QueryParser(&q); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid query parameters")
		}
		if verr := validation.ValidateStruct(&q); verr != nil {
			return fail(c, fiber.StatusBadRequest, verr.First())
		}

		ctx, cancel := requestContext(c, timeout)
		defer cancel()

		res, err := svc.GetPersonalizedFeed(ctx, q.UserID, services.FeedOptions{
			Page:  q.Page,
			Limit: q.Limit,
			Tag:   q.Tag,
		})
		if err != nil {
			return serverError(c, err)
		}

		filters := dto.FeedFilters{Personalized: q.UserID != ""}
		if q.Tag != "" {
			filters.Tag = &q.Tag
		}
		return c.JSON(dto.Response{
			Success:    true,
			Data:       res.Posts,
			Pagination: res.Pagination,
			Filters:    filters,
		})
	}
}
