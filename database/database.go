package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/yashwanthsk20/insta-feed-backend/bootstrap"
	"github.com/yashwanthsk20/insta-feed-backend/config"
	"github.com/yashwanthsk20/insta-feed-backend/internal/logging"
	"github.com/yashwanthsk20/insta-feed-backend/internal/repository"
)

const connectTimeout = 10 * time.Second

func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(connectTimeout)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}
	return client, nil
}

func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	cfg.MaxConns = 20
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheStatement

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return pool, nil
}

// Open connects the configured driver and makes sure its indexes or schema
// exist before handing out the store.
func Open(ctx context.Context, cfg config.Config) (repository.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := ConnectPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := bootstrap.EnsurePostgresSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		logging.Info().Str("driver", cfg.StoreDriver).Msg("connected to postgres")
		return repository.NewPostgresStore(pool), nil

	case config.DriverMongo, "":
		client, err := ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDB)
		if err := bootstrap.EnsureMongoIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		logging.Info().Str("driver", config.DriverMongo).Str("db", cfg.MongoDB).Msg("connected to mongodb")
		return repository.NewMongoStore(db), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
