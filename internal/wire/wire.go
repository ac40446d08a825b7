// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/gin-gonic/gin"

	"content-gen-api/internal/application/generation"
	"content-gen-api/internal/config"
	"content-gen-api/internal/infrastructure/llm"
	"content-gen-api/internal/infrastructure/persistence/postgres"
	"content-gen-api/internal/infrastructure/persistence/redis"
	"content-gen-api/internal/infrastructure/research"
	"content-gen-api/internal/interfaces/http/handler"
	"content-gen-api/internal/interfaces/http/middleware"
	"content-gen-api/internal/interfaces/http/router"
	"content-gen-api/internal/workflow/chain"
	"content-gen-api/internal/workflow/prompt"
)

// DataLayer 数据层依赖容器
type DataLayer struct {
	// PostgreSQL
	PgClient     *postgres.Client
	TxManager    *postgres.TxManager
	UserRepo     *postgres.UserRepository
	PrefRepo     *postgres.PreferenceRepository
	TemplateRepo *postgres.TemplateRepository
	PromptRepo   *postgres.CustomPromptRepository
	ContentRepo  *postgres.ContentRepository
	TagRepo      *postgres.TagRepository

	// Redis
	RedisClient *redis.Client
	Cache       *redis.Cache
}

// InitializeDataLayer 初始化数据层
func InitializeDataLayer(ctx context.Context, cfg *config.Config) (*DataLayer, func(), error) {
	pgClient, pgCleanup, err := ProvidePostgresClient(cfg)
	if err != nil {
		return nil, nil, err
	}

	redisClient, redisCleanup, err := ProvideRedisClient(cfg)
	if err != nil {
		pgCleanup()
		return nil, nil, err
	}

	dl := &DataLayer{
		PgClient:     pgClient,
		TxManager:    postgres.NewTxManager(pgClient),
		UserRepo:     postgres.NewUserRepository(pgClient),
		PrefRepo:     postgres.NewPreferenceRepository(pgClient),
		TemplateRepo: postgres.NewTemplateRepository(pgClient),
		PromptRepo:   postgres.NewCustomPromptRepository(pgClient),
		ContentRepo:  postgres.NewContentRepository(pgClient),
		TagRepo:      postgres.NewTagRepository(pgClient),
		RedisClient:  redisClient,
		Cache:        redis.NewCache(redisClient),
	}

	cleanup := func() {
		redisCleanup()
		pgCleanup()
	}
	return dl, cleanup, nil
}

// InitializePostgresOnly 仅初始化 PostgreSQL 数据层（用于种子程序）
func InitializePostgresOnly(ctx context.Context, cfg *config.Config) (*postgres.Client, func(), error) {
	return ProvidePostgresClient(cfg)
}

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	dl, cleanup, err := InitializeDataLayer(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// 工作流与生成服务
	factory := llm.NewEinoFactory(cfg)
	generateChain := chain.NewGenerateChain(factory)
	registry := prompt.NewRegistry()
	webExtractor := research.NewWebExtractor(&cfg.Research)
	genService := generation.NewService(cfg, generateChain, registry, webExtractor, dl.ContentRepo)

	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(cfg, dl.UserRepo, dl.PrefRepo, dl.TxManager),
		User:       handler.NewUserHandler(cfg, dl.UserRepo, dl.PrefRepo),
		Template:   handler.NewTemplateHandler(cfg, dl.TemplateRepo, dl.Cache),
		Prompt:     handler.NewCustomPromptHandler(dl.PromptRepo),
		Generation: handler.NewGenerationHandler(cfg, genService, dl.PrefRepo),
		Content:    handler.NewContentHandler(dl.ContentRepo, dl.TagRepo),
		Tag:        handler.NewTagHandler(dl.TagRepo),
		Health:     handler.NewHealthHandler(dl.PgClient, dl.RedisClient),
	}

	rateLimit := ProvideRateLimitMiddleware(cfg, dl.RedisClient)

	return router.New(cfg, handlers, rateLimit), cleanup, nil
}

// ProvidePostgresClient 提供 PostgreSQL 客户端
func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClient 提供 Redis 客户端
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideRateLimitMiddleware 提供限流中间件
func ProvideRateLimitMiddleware(cfg *config.Config, redisClient *redis.Client) gin.HandlerFunc {
	return middleware.NewRateLimitMiddleware(middleware.RateLimitConfig{
		Enabled:           cfg.Security.RateLimit.Enabled,
		RequestsPerSecond: cfg.Security.RateLimit.RequestsPerSecond,
		Burst:             cfg.Security.RateLimit.Burst,
	}, redisClient.Redis())
}
