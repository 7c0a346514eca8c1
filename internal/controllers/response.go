package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/yashwanthsk20/insta-feed-backend/dto"
	"github.com/yashwanthsk20/insta-feed-backend/internal/logging"
	"github.com/yashwanthsk20/insta-feed-backend/internal/middleware"
	"github.com/yashwanthsk20/insta-feed-backend/internal/services"
)

const msgServerError = "Server error"

func requestContext(c *fiber.Ctx, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), timeout)
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.Response{Success: false, Message: message})
}

func serverError(c *fiber.Ctx, err error) error {
	logging.Error().Err(err).
		Str("request_id", middleware.RequestIDFromLocals(c)).
		Str("path", c.Path()).
		Msg("request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Response{
		Success: false,
		Message: msgServerError,
		Error:   err.Error(),
	})
}

// serviceError maps service sentinels to their status and client message.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return fail(c, fiber.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrPostNotFound):
		return fail(c, fiber.StatusNotFound, "Post not found")
	case errors.Is(err, services.ErrAuthorNotFound):
		return fail(c, fiber.StatusNotFound, "Author not found")
	case errors.Is(err, services.ErrUserExists):
		return fail(c, fiber.StatusBadRequest, "User with this email or username already exists")
	case errors.Is(err, services.ErrTagsNotArray):
		return fail(c, fiber.StatusBadRequest, "Tags must be an array")
	default:
		return serverError(c, err)
	}
}

// ErrorHandler renders errors that escape a handler, including recovered
// panics and fiber's own errors, in the response envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code == fiber.StatusNotFound {
			return fail(c, fe.Code, "Route not found")
		}
		if fe.Code < fiber.StatusInternalServerError {
			return fail(c, fe.Code, fe.Message)
		}
	}
	return serverError(c, err)
}

// NotFound answers every request no route matched.
func NotFound(c *fiber.Ctx) error {
	return fail(c, fiber.StatusNotFound, "Route not found")
}
