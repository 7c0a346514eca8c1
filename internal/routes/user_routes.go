package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/yashwanthsk20/insta-feed-backend/internal/controllers"
	"github.com/yashwanthsk20/insta-feed-backend/internal/services"
)

func SetupRoutesUser(api fiber.Router, svc *services.UserService, timeout time.Duration) {
	users := api.Group("/users")

	users.Post("/", controllers.CreateUserHandler(svc, timeout))
	users.Get("/", controllers.ListUsersHandler(svc, timeout))
	users.Get("/:id", controllers.GetUserHandler(svc, timeout))
	users.Put("/:id/tags", controllers.UpdateUserTagsHandler(svc, timeout))
}
