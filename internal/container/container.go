// Package container holds the process-wide components built at startup.
// main constructs one Container and hands it to the router; nothing in the
// tree reaches for package-level singletons.
package container

import (
	"context"
	"errors"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-backend/config"
	"github.com/oksasatya/go-blog-backend/internal/application"
	repo "github.com/oksasatya/go-blog-backend/internal/domain/repository"
	"github.com/oksasatya/go-blog-backend/internal/infrastructure/gcs"
	"github.com/oksasatya/go-blog-backend/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-blog-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/go-blog-backend/internal/infrastructure/search"
	"github.com/oksasatya/go-blog-backend/pkg/helpers"
)

type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	JWT    *helpers.JWTManager
	Hasher *helpers.PasswordHasher

	Users      repo.UserRepository
	Posts      repo.PostRepository
	Categories repo.CategoryRepository

	// Optional integrations; nil when not configured.
	PostIndex application.PostIndexer
	Avatars   application.AvatarStore

	PGPool *pgxpool.Pool
	ES     *elasticsearch.Client
	GCS    *storage.Client
}

// NewInMemory builds a container backed by the memory store with no external
// services. Used by tests and STORAGE_DRIVER=memory.
func NewInMemory(cfg *config.Config, logger *logrus.Logger) *Container {
	store := memory.NewStore()
	return &Container{
		Config:     cfg,
		Logger:     logger,
		JWT:        helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
		Hasher:     helpers.NewPasswordHasher(cfg.BcryptCost),
		Users:      store.Users(),
		Posts:      store.Posts(),
		Categories: store.Categories(),
	}
}

// Build connects the configured storage driver and optional integrations.
// Elasticsearch and GCS failures are logged and leave the feature disabled.
func Build(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := NewInMemory(cfg, logger)

	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Warn("using in-memory storage; data is lost on restart")
	case config.StoragePostgres:
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return nil, err
		}
		c.PGPool = pool
		c.Users = pginfra.NewUserRepository(pool)
		c.Posts = pginfra.NewPostRepository(pool)
		c.Categories = pginfra.NewCategoryRepository(pool)
	default:
		return nil, errors.New("unknown STORAGE_DRIVER " + cfg.StorageDriver)
	}

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(helpers.ESConfig{Addresses: addrs, Username: cfg.ElasticsearchUser, Password: cfg.ElasticsearchPass})
		if err != nil {
			helpers.LogError(logger, "elasticsearch disabled", err, nil)
		} else {
			idx := search.NewPostIndex(es, cfg.ESPostsIndex)
			if err := idx.EnsureIndex(ctx); err != nil {
				helpers.LogError(logger, "elasticsearch index not ready; search uses database until it is", err, logrus.Fields{"index": cfg.ESPostsIndex})
			}
			c.ES = es
			c.PostIndex = idx
		}
	}

	if cfg.GCSBucket != "" {
		client, err := helpers.NewGCSClient(ctx, cfg.GCSCredentials)
		if err != nil {
			helpers.LogError(logger, "gcs disabled", err, nil)
		} else {
			c.GCS = client
			c.Avatars = gcs.NewAvatarStore(client, cfg.GCSBucket)
		}
	}
	return c, nil
}

// Close releases external connections.
func (c *Container) Close() {
	if c.PGPool != nil {
		c.PGPool.Close()
	}
	if c.GCS != nil {
		_ = c.GCS.Close()
	}
}
