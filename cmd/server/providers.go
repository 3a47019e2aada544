package main

import (
	"context"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/category"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/certificate"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/config"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/contact"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/middleware"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/platform/database"
	platformRedis "github.com/ZekeHyperByte/seltronik-website-sub000/internal/platform/redis"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/product"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/project"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/search"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/user"

	platformElasticsearch "github.com/ZekeHyperByte/seltronik-website-sub000/internal/platform/elasticsearch"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// models lists every table managed by AutoMigrate. The products, projects
// and certificates tables hold text[] columns and so need PostgreSQL.
func models() []interface{} {
	return []interface{}{
		&user.User{},
		&category.Category{},
		&product.Product{},
		&project.Project{},
		&certificate.Certificate{},
		&contact.Message{},
	}
}

func provideDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.NewGORM(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { database.Close(db, logger) }

	if cfg.DBAutoMigrate {
		if err := database.AutoMigrate(db, logger, models()...); err != nil {
			cleanup()
			return nil, nil, err
		}
	}
	return db, cleanup, nil
}

func provideRedis(cfg *config.Config, logger *zap.Logger) (*redis.Client, func(), error) {
	client, err := platformRedis.NewClient(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { platformRedis.Close(client, logger) }, nil
}

func provideProductIndex(client *platformElasticsearch.ESClientWrapper, logger *zap.Logger) (*search.ProductIndex, error) {
	return search.NewProductIndex(context.Background(), client, logger)
}

// provideFormLimiter starts the limiter's cleanup loop, stopped by the
// returned cleanup.
func provideFormLimiter(cfg *config.Config) (*middleware.RateLimiter, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	return middleware.NewRateLimiter(ctx, cfg), cancel
}
