package database

import (
	"context"
	"fmt"

	"catalogapi/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Stores owns every pooled connection of the process. It is opened once at
// startup and closed at shutdown.
type Stores struct {
	Mongo *mongo.Client
	DB    *mongo.Database
	Pool  *pgxpool.Pool
	Redis *redis.Client // nil unless the category cache is enabled

	log *zap.SugaredLogger
}

func Open(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (*Stores, error) {
	client, err := NewMongoClient(ctx, cfg.MongoURL)
	if err != nil {
		return nil, err
	}
	s := &Stores{Mongo: client, DB: client.Database(cfg.MongoDB), log: log}
	log.Infow("document store connected", "database", cfg.MongoDB)

	if err := EnsureIndexes(ctx, s.DB); err != nil {
		s.Close(ctx)
		return nil, err
	}

	s.Pool, err = NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		s.Close(ctx)
		return nil, err
	}
	log.Info("postgres connected")

	if err := EnsureSchema(ctx, s.Pool); err != nil {
		s.Close(ctx)
		return nil, err
	}

	if cfg.CategoryCacheEnabled {
		s.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisURL,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := s.Redis.Ping(ctx).Err(); err != nil {
			// the cache degrades to direct lookups, so an unreachable redis is not fatal
			log.Warnw("redis ping failed", "addr", cfg.RedisURL, "error", err)
		}
	}

	return s, nil
}

func (s *Stores) Close(ctx context.Context) {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			s.log.Warnw("closing redis", "error", err)
		}
	}
	if s.Pool != nil {
		s.Pool.Close()
	}
	if s.Mongo != nil {
		if err := s.Mongo.Disconnect(ctx); err != nil {
			s.log.Warnw("disconnecting mongo", "error", err)
		}
	}
	s.log.Info("stores closed")
}

// String is used in startup logs.
func (s *Stores) String() string {
	return fmt.Sprintf("stores(mongo=%t postgres=%t redis=%t)", s.Mongo != nil, s.Pool != nil, s.Redis != nil)
}
