package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/yashwanthsk20/insta-feed-backend/internal/controllers"
	"github.com/yashwanthsk20/insta-feed-backend/internal/services"
)

// SetupRoutesPost registers /feed and /user/:userId ahead of /:id.
func SetupRoutesPost(api fiber.Router, posts *services.PostService, feed *services.FeedService, likes *services.LikeService, timeout time.Duration) {
	p := api.Group("/posts")

	p.Post("/", controllers.CreatePostHandler(posts, timeout))
	p.Get("/feed", controllers.GetFeedHandler(feed, timeout))
	p.Get("/user/:userId", controllers.ListPostsByUserHandler(posts, timeout))
	p.Get("/:id", controllers.GetPostHandler(posts, timeout))
	p.Post("/:id/like", controllers.ToggleLikeHandler(likes, timeout))
}
