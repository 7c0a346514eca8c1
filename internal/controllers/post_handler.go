package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/yashwanthsk20/insta-feed-backend/dto"
	"github.com/yashwanthsk20/insta-feed-backend/internal/services"
	"github.com/yashwanthsk20/insta-feed-backend/internal/validation"
)

// CreatePostHandler godoc
// @Summary      Create a post
// @Description  Tags are trimmed and lowercased. The author's postsCount is incremented.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreatePostDTO  true  "New post"
// @Success      201   {object}  dto.Response{data=dto.PostResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse  "Author not found"
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/posts [post]
func CreatePostHandler(svc *services.PostService, timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body dto.CreatePostDTO
		if err := c.BodyParser(&body); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid request body")
		}
		if verr := validation.ValidateStruct(&body); verr != nil {
			return fail(c, fiber.StatusBadRequest, verr.First())
		}

		ctx, cancel := requestContext(c, timeout)
		defer cancel()

		post, err := svc.CreatePost(ctx, body)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(dto.Response{
			Success: true,
			Data:    post,
			Message: "Post created successfully",
		})
	}
}

// GetPostHandler godoc
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  dto.Response{data=dto.PostResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/posts/{id} [get]
func GetPostHandler(svc *services.PostService, timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := requestContext(c, timeout)
		defer cancel()

		post, err := svc.GetPost(ctx, c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(dto.Response{Success: true, Data: post})
	}
}

// ListPostsByUserHandler godoc
// @Summary      List a user's posts
// @Tags         posts
// @Produce      json
// @Param        userId  path      string  true   "Author id"
// @Param        page    query     int     false  "Page (default 1)"
// @Param        limit   query     int     false  "Page size (default 10, max 100)"
// @Success      200     {object}  dto.Response{data=[]dto.PostResponse,pagination=dto.PostPagination}
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /api/posts/user/{userId} [get]
func ListPostsByUserHandler(svc *services.PostService, timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := bson.ObjectIDFromHex(c.Params("userId"))
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "userId must be a valid id")
		}

		q := dto.DefaultPageQuery()
		if err := c.QueryParser(&q); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid query parameters")
		}
		if verr := validation.ValidateStruct(&q); verr != nil {
			return fail(c, fiber.StatusBadRequest, verr.First())
		}

		ctx, cancel := requestContext(c, timeout)
		defer cancel()

		res, err := svc.ListPostsByUser(ctx, userID, q)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(dto.Response{
			Success:    true,
			Data:       res.Posts,
			Pagination: res.Pagination,
		})
	}
}
