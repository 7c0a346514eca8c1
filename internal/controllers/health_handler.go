package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/yashwanthsk20/insta-feed-backend/dto"
	"github.com/yashwanthsk20/insta-feed-backend/internal/repository"
)

// HealthHandler godoc
// @Summary      Liveness and store check
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /health [get]
func HealthHandler(store repository.Store, timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := requestContext(c, timeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			return serverError(c, err)
		}
		return c.JSON(dto.HealthResponse{
			Success:   true,
			Message:   "Social Feed API is running",
			Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		})
	}
}
