// Package container wires the application dependency graph: config,
// infrastructure, repositories, services, handlers, in that order.
package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"itemize/internal/config"
	"itemize/internal/infrastructure/cache"
	"itemize/internal/infrastructure/database"
	"itemize/pkg/jwt"

	"itemize/internal/domains/itemize"
	itemizeHandler "itemize/internal/domains/itemize/handler"
	itemizeRepo "itemize/internal/domains/itemize/repository"
	itemizeService "itemize/internal/domains/itemize/service"
	"itemize/internal/domains/metadata"
	metadataHandler "itemize/internal/domains/metadata/handler"
	metadataRepo "itemize/internal/domains/metadata/repository"
	metadataService "itemize/internal/domains/metadata/service"
	"itemize/internal/domains/user"
	userHandler "itemize/internal/domains/user/handler"
	userRepo "itemize/internal/domains/user/repository"
	userService "itemize/internal/domains/user/service"
)

type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      *cache.RedisCache
	JWTManager *jwt.Manager

	UserRepo     user.Repository
	MetadataRepo metadata.Repository
	ItemizeRepo  itemize.Repository

	UserService     user.Service
	MetadataService metadata.Service
	ItemizeService  itemize.Service

	UserHandler    *userHandler.UserHandler
	ImageHandler   *metadataHandler.ImageHandler
	ItemizeHandler *itemizeHandler.ItemizeHandler
}

// NewContainer initializes the whole dependency graph. A database
// failure aborts startup; a redis failure does not, the metadata cache
// just stays cold.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	c.Config = cfg

	db := database.NewPostgresDB(&cfg.Database)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db
	log.Info().Msg("database connected")

	redisCache := cache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(context.Background()); err != nil {
		log.Warn().Err(err).Msg("redis connection failed, metadata cache disabled")
		redisCache = nil
	} else {
		log.Info().Msg("redis connected")
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool
	c.UserRepo = userRepo.NewRepository(pool)
	c.MetadataRepo = metadataRepo.NewRepository(pool)
	c.ItemizeRepo = itemizeRepo.NewRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.MetadataService = metadataService.NewMetadataService(
		c.MetadataRepo, metadata.ProvisionalFetcher{}, c.Cache)
	c.ItemizeService = itemizeService.NewItemizeService(
		c.ItemizeRepo, c.UserRepo, c.MetadataService, c.Config.App.ServerURL)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.ImageHandler = metadataHandler.NewImageHandler(c.MetadataService)
	c.ItemizeHandler = itemizeHandler.NewItemizeHandler(c.ItemizeService)
}

// Cleanup releases infrastructure connections on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		}
	}
}
