// Command seed clears the configured store and loads sample users, posts
// and likes.
package main

import (
	"context"
	"flag"
	"math/rand/v2"
	"time"

	"github.com/yashwanthsk20/insta-feed-backend/config"
	"github.com/yashwanthsk20/insta-feed-backend/database"
	"github.com/yashwanthsk20/insta-feed-backend/dto"
	"github.com/yashwanthsk20/insta-feed-backend/internal/logging"
	"github.com/yashwanthsk20/insta-feed-backend/internal/models"
	"github.com/yashwanthsk20/insta-feed-backend/internal/repository"
	"github.com/yashwanthsk20/insta-feed-backend/internal/services"
	"github.com/yashwanthsk20/insta-feed-backend/internal/utils"
)

type sampleUser struct {
	body      dto.CreateUserDTO
	likedTags []string
}

var sampleUsers = []sampleUser{
	{
		body: dto.CreateUserDTO{
			Username: "johndoe",
			Email:    "john@example.com",
			FullName: "John Doe",
			Bio:      "Software developer and photography enthusiast",
		},
		likedTags: []string{"javascript", "react", "photography"},
	},
	{
		body: dto.CreateUserDTO{
			Username: "sarahjones",
			Email:    "sarah@example.com",
			FullName: "Sarah Jones",
			Bio:      "Digital marketing expert and travel lover",
		},
		likedTags: []string{"marketing", "travel", "food"},
	},
	{
		body: dto.CreateUserDTO{
			Username: "mikechen",
			Email:    "mike@example.com",
			FullName: "Mike Chen",
			Bio:      "UI/UX Designer creating beautiful experiences",
		},
		likedTags: []string{"design", "ui", "ux", "art"},
	},
	{
		body: dto.CreateUserDTO{
			Username: "emilysmith",
			Email:    "emily@example.com",
			FullName: "Emily Smith",
			Bio:      "Fitness trainer and nutrition coach",
		},
		likedTags: []string{"fitness", "health", "nutrition"},
	},
}

var samplePosts = []dto.CreatePostDTO{
	{
		Content:  "Just finished building my first React app! The feeling of seeing everything come together is incredible. #javascript #react #coding",
		Tags:     []string{"javascript", "react", "coding"},
		ImageURL: "https://images.unsplash.com/photo-1633356122544-f134324a6cee?w=500",
	},
	{
		Content:  "Beautiful sunset from my hiking trip today. Nature never fails to amaze me! #nature #hiking #photography",
		Tags:     []string{"nature", "hiking", "photography"},
		ImageURL: "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=500",
	},
	{
		Content:  "New UI design for a mobile banking app. Clean, modern, and user-friendly. What do you think? #design #ui #mobile",
		Tags:     []string{"design", "ui", "mobile"},
		ImageURL: "https://images.unsplash.com/photo-1512941937669-90a1b58e7e9c?w=500",
	},
	{
		Content: "Morning workout complete! Remember, consistency is key. Your future self will thank you. #fitness #motivation #health",
		Tags:    []string{"fitness", "motivation", "health"},
	},
	{
		Content:  "Exploring the best coffee shops in the city. This latte art is too beautiful to drink! #coffee #food #city",
		Tags:     []string{"coffee", "food", "city"},
		ImageURL: "https://images.unsplash.com/photo-1495474472287-4d71bcdd2085?w=500",
	},
	{
		Content: "Working on a new JavaScript framework comparison. The ecosystem keeps evolving! #javascript #development #tech",
		Tags:    []string{"javascript", "development", "tech"},
	},
}

const week = 7 * 24 * time.Hour

func main() {
	likeChance := flag.Float64("like-chance", 0.5, "probability that a sample user likes a sample post")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("load config")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := database.Open(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("open store")
	}
	defer func() {
		_ = store.Close(context.Background())
	}()

	if err := seed(ctx, store, *likeChance); err != nil {
		logging.Fatal().Err(err).Msg("seed failed")
	}
	logging.Info().Str("driver", cfg.StoreDriver).Msg("database seeded")
}

func seed(ctx context.Context, store repository.Store, likeChance float64) error {
	if err := store.Reset(ctx); err != nil {
		return err
	}
	logging.Info().Msg("cleared existing data")

	userSvc := services.NewUserService(store)
	users := make([]*models.User, 0, len(sampleUsers))
	for _, su := range sampleUsers {
		u, err := userSvc.CreateUser(ctx, su.body)
		if err != nil {
			return err
		}
		if u, err = userSvc.UpdateUserTags(ctx, u.ID.Hex(), su.likedTags); err != nil {
			return err
		}
		users = append(users, u)
	}
	logging.Info().Int("count", len(users)).Msg("created sample users")

	now := time.Now().UTC()
	likes := 0
	for i, sp := range samplePosts {
		author := users[i%len(users)]
		createdAt := now.Add(-time.Duration(rand.Int64N(int64(week))))
		post := models.Post{
			AuthorID:  author.ID,
			Content:   sp.Content,
			ImageURL:  sp.ImageURL,
			Tags:      utils.NormalizeTags(sp.Tags),
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		}
		post.Score = services.CalculateBaseScore(post, now)
		if err := store.Posts().Insert(ctx, &post); err != nil {
			return err
		}
		if err := store.Users().IncPostsCount(ctx, author.ID, 1); err != nil {
			return err
		}

		for _, u := range users {
			if rand.Float64() >= likeChance {
				continue
			}
			n, err := addLike(ctx, store, u, &post, createdAt, now)
			if err != nil {
				return err
			}
			likes += n
		}
	}
	logging.Info().Int("posts", len(samplePosts)).Int("likes", likes).Msg("created sample posts")
	return nil
}

// addLike records a like at a random time after the post was created. It
// leaves the user's liked tags alone so the sample preferences stay as
// listed.
func addLike(ctx context.Context, store repository.Store, u *models.User, post *models.Post, createdAt, now time.Time) (int, error) {
	likedAt := createdAt.Add(time.Duration(rand.Int64N(int64(now.Sub(createdAt)) + 1)))
	dup, err := store.Likes().Insert(ctx, &models.Like{UserID: u.ID, PostID: post.ID, CreatedAt: likedAt})
	if err != nil || dup {
		return 0, err
	}
	updated, err := store.Posts().IncLikesCount(ctx, post.ID, 1)
	if err != nil {
		return 0, err
	}
	*post = *updated
	if _, err := store.Posts().SetScore(ctx, post.ID, post.LikesCount, services.CalculateBaseScore(*post, now)); err != nil {
		return 0, err
	}
	return 1, nil
}
