package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/yashwanthsk20/insta-feed-backend/dto"
	"github.com/yashwanthsk20/insta-feed-backend/internal/services"
	"github.com/yashwanthsk20/insta-feed-backend/internal/validation"
)

// ToggleLikeHandler godoc
// @Summary      Like or unlike a post
// @Description  Likes the post when the user has not liked it yet, otherwise removes the like.
// @Tags         likes
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Post id"
// @Param        body  body      dto.LikeRequestDTO  true  "Acting user"
// @Success      200   {object}  dto.Response{data=dto.LikeToggleResponse}
// @Failure      400   {object}  dto.ErrorResponse  "User ID is required"
// @Failure      404   {object}  dto.ErrorResponse  "User or post not found"
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/posts/{id}/like [post]
func ToggleLikeHandler(svc *services.LikeService, timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body dto.LikeRequestDTO
		if err := c.BodyParser(&body); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid request body")
		}
		if body.UserID == "" {
			return fail(c, fiber.StatusBadRequest, "User ID is required")
		}
		if verr := validation.ValidateStruct(&body); verr != nil {
			return fail(c, fiber.StatusBadRequest, verr.First())
		}

		ctx, cancel := requestContext(c, timeout)
		defer cancel()

		res, err := svc.ToggleLike(ctx, c.Params("id"), body.UserID)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(dto.Response{
			Success: true,
			Data:    res,
			Message: fmt.Sprintf("Post %s successfully", res.Action),
		})
	}
}
