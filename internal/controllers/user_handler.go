package controllers

import (
	"bytes"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"

	"github.com/yashwanthsk20/insta-feed-backend/dto"
	"github.com/yashwanthsk20/insta-feed-backend/internal/services"
	"github.com/yashwanthsk20/insta-feed-backend/internal/validation"
)

// CreateUserHandler godoc
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateUserDTO  true  "New user"
// @Success      201   {object}  dto.Response{data=models.User}
// @Failure      400   {object}  dto.ErrorResponse  "Validation failed or user exists"
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func CreateUserHandler(svc *services.UserService, timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body dto.CreateUserDTO
		if err := c.BodyParser(&body); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid request body")
		}
		body.Normalize()
		if verr := validation.ValidateStruct(&body); verr != nil {
			return fail(c, fiber.StatusBadRequest, verr.First())
		}

		ctx, cancel := requestContext(c, timeout)
		defer cancel()

		user, err := svc.CreateUser(ctx, body)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(dto.Response{
			Success: true,
			Data:    user,
			Message: "User created successfully",
		})
	}
}

// ListUsersHandler godoc
// @Summary      List users
// @Description  Newest first. search matches username or full name, case-insensitive.
// @Tags         users
// @Produce      json
// @Param        page    query     int     false  "Page (default 1)"
// @Param        limit   query     int     false  "Page size (default 10, max 100)"
// @Param        search  query     string  false  "Username or full name substring"
// @Success      200     {object}  dto.Response{data=[]models.User,pagination=dto.UserPagination}
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /api/users [get]
func ListUsersHandler(svc *services.UserService, timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := dto.DefaultUserListQuery()
		if err := c.QueryParser(&q); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid query parameters")
		}
		if verr := validation.ValidateStruct(&q); verr != nil {
			return fail(c, fiber.StatusBadRequest, verr.First())
		}

		ctx, cancel := requestContext(c, timeout)
		defer cancel()

		res, err := svc.ListUsers(ctx, q)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(dto.Response{
			Success:    true,
			Data:       res.Users,
			Pagination: res.Pagination,
		})
	}
}

// GetUserHandler godoc
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  dto.Response{data=models.User}
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func GetUserHandler(svc *services.UserService, timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := requestContext(c, timeout)
		defer cancel()

		user, err := svc.GetUser(ctx, c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(dto.Response{Success: true, Data: user})
	}
}

// UpdateUserTagsHandler godoc
// @Summary      Replace a user's liked tags
// @Description  Tags are lowercased; an empty array clears them.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User id"
// @Param        body  body      dto.UpdateTagsDTO  true  "Liked tags"
// @Success      200   {object}  dto.Response{data=models.User}
// @Failure      400   {object}  dto.ErrorResponse  "Tags must be an array"
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/tags [put]
func UpdateUserTagsHandler(svc *services.UserService, timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := requestContext(c, timeout)
		defer cancel()

		user, err := svc.UpdateUserTags(ctx, c.Params("id"), tagsFromBody(c.Body()))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(dto.Response{
			Success: true,
			Data:    user,
			Message: "User tags updated successfully",
		})
	}
}

// tagsFromBody returns nil unless body is an object whose "tags" field is
// an array of strings.
func tagsFromBody(body []byte) []string {
	var probe struct {
		Tags json.RawMessage `json:"tags"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil
	}
	raw := bytes.TrimSpace(probe.Tags)
	if len(raw) == 0 || raw[0] != '[' {
		return nil
	}

	var req dto.UpdateTagsDTO
	if err := json.Unmarshal(body, &req); err != nil {
		return nil
	}
	if req.Tags == nil {
		req.Tags = []string{}
	}
	return req.Tags
}
