package routes

import (
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yashwanthsk20/insta-feed-backend/config"
	"github.com/yashwanthsk20/insta-feed-backend/dto"
	"github.com/yashwanthsk20/insta-feed-backend/internal/controllers"
	"github.com/yashwanthsk20/insta-feed-backend/internal/logging"
	"github.com/yashwanthsk20/insta-feed-backend/internal/middleware"
	"github.com/yashwanthsk20/insta-feed-backend/internal/repository"
	"github.com/yashwanthsk20/insta-feed-backend/internal/services"
)

type Deps struct {
	Config config.Config
	Store  repository.Store
	Users  *services.UserService
	Posts  *services.PostService
	Likes  *services.LikeService
	Feed   *services.FeedService
}

// NewDeps wires every service onto one store.
func NewDeps(cfg config.Config, store repository.Store) Deps {
	return Deps{
		Config: cfg,
		Store:  store,
		Users:  services.NewUserService(store),
		Posts:  services.NewPostService(store),
		Likes:  services.NewLikeService(store),
		Feed:   services.NewFeedService(store),
	}
}

// NewApp builds the fiber app with the full middleware stack and routes.
func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "insta-feed-backend",
		BodyLimit:    d.Config.BodyLimit,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: controllers.ErrorHandler,
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.AccessLog())
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(cors.New(corsConfig(d.Config)))
	if d.Config.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        d.Config.RateLimitMax,
			Expiration: d.Config.RateLimitWindow,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(dto.Response{
					Success: false,
					Message: "Too many requests from this IP, please try again later.",
				})
			},
		}))
	}

	Register(app, d)
	return app
}

func Register(app *fiber.App, d Deps) {
	timeout := d.Config.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	app.Get("/health", controllers.HealthHandler(d.Store, timeout))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/docs/*", swagger.HandlerDefault)

	api := app.Group("/api")
	SetupRoutesUser(api, d.Users, timeout)
	SetupRoutesPost(api, d.Posts, d.Feed, d.Likes, timeout)

	app.Use(controllers.NotFound)
}

func corsConfig(cfg config.Config) cors.Config {
	origins := strings.TrimSpace(cfg.CORSOrigins)
	if origins == "" {
		origins = "*"
	}
	if origins == "*" && cfg.IsProduction() {
		logging.Warn().Msg("CORS_ORIGINS is * in production")
	}
	return cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
	}
}
