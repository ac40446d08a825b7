// Package main 系统提示词模板种子程序
package main

import (
	"context"
	"embed"
	"fmt"
	"os"
	"strings"

	"content-gen-api/internal/config"
	"content-gen-api/internal/domain/entity"
	"content-gen-api/internal/infrastructure/persistence/postgres"
	"content-gen-api/internal/infrastructure/persistence/redis"
	"content-gen-api/internal/wire"
	"content-gen-api/pkg/logger"

	"github.com/joho/godotenv"
)

//go:embed templates/*.txt
var templateFS embed.FS

// seedSpec 一条待写入的模板定义
type seedSpec struct {
	File        string
	Module      entity.ContentModule
	ArticleType *entity.ArticleType
	StyleKey    string
	DisplayName string
}

func articleType(t entity.ArticleType) *entity.ArticleType {
	return &t
}

// 基础模板清单，按 template_name 幂等写入
var seedSpecs = []seedSpec{
	{File: "linkedin_default.txt", Module: entity.ContentModuleLinkedIn, StyleKey: "default", DisplayName: "LinkedIn - Guía Manual"},
	{File: "linkedin_leadership.txt", Module: entity.ContentModuleLinkedIn, StyleKey: "leadership", DisplayName: "LinkedIn - Leadership"},
	{File: "linkedin_behind_the_scenes.txt", Module: entity.ContentModuleLinkedIn, StyleKey: "behindTheScenes", DisplayName: "LinkedIn - Behind The Scenes"},
	{File: "linkedin_wins.txt", Module: entity.ContentModuleLinkedIn, StyleKey: "wins", DisplayName: "LinkedIn - Wins"},
	{File: "linkedin_ceo_journey.txt", Module: entity.ContentModuleLinkedIn, StyleKey: "ceoJourney", DisplayName: "LinkedIn - CEO Journey"},
	{File: "linkedin_hot_takes.txt", Module: entity.ContentModuleLinkedIn, StyleKey: "hotTakes", DisplayName: "LinkedIn - Hot Takes"},
	{File: "blog_default.txt", Module: entity.ContentModuleBlog, StyleKey: "default", DisplayName: "Blog - Guía Manual"},
	{File: "blog_standard_article.txt", Module: entity.ContentModuleBlog, ArticleType: articleType(entity.ArticleTypeGeneralInterest), StyleKey: "standardArticle", DisplayName: "Blog - Artículo Estándar"},
	{File: "blog_success_story.txt", Module: entity.ContentModuleBlog, ArticleType: articleType(entity.ArticleTypeSuccessCase), StyleKey: "successStory", DisplayName: "Blog - Caso de Éxito"},
}

// templateName 生成唯一模板名，如 linkedin_leadership_base_v1
func templateName(spec seedSpec) string {
	key := strings.ToLower(strings.ReplaceAll(spec.StyleKey, " ", "_"))
	return fmt.Sprintf("%s_%s_base_v1", spec.Module, key)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(
		cfg.Observability.Logging.Level,
		cfg.Observability.Logging.Format,
	)

	ctx := context.Background()
	log := logger.FromContext(ctx)
	log.Info("starting seed-prompts")

	pgClient, cleanup, err := wire.InitializePostgresOnly(ctx, cfg)
	if err != nil {
		logger.Fatal(ctx, "failed to connect to postgres", err)
	}
	defer cleanup()

	if err := pgClient.AutoMigrate(); err != nil {
		logger.Fatal(ctx, "failed to run migrations", err)
	}

	templateRepo := postgres.NewTemplateRepository(pgClient)

	seeded := 0
	for _, spec := range seedSpecs {
		text, err := templateFS.ReadFile("templates/" + spec.File)
		if err != nil {
			logger.Fatal(ctx, "failed to read embedded template", err, "file", spec.File)
		}

		template := &entity.SystemPromptTemplate{
			TemplateName:  templateName(spec),
			ContentModule: spec.Module,
			ArticleType:   spec.ArticleType,
			StyleKey:      spec.StyleKey,
			DisplayName:   spec.DisplayName,
			PromptText:    strings.TrimSpace(string(text)),
			IsActive:      true,
		}

		if err := templateRepo.Upsert(ctx, template); err != nil {
			logger.Fatal(ctx, "failed to upsert template", err, "template_name", template.TemplateName)
		}
		seeded++
	}

	log.Info("templates seeded", "count", seeded)

	// 缓存失效尽力而为，Redis 不可达时只告警
	redisClient, redisCleanup, err := wire.ProvideRedisClient(cfg)
	if err != nil {
		logger.Warn(ctx, "redis not available, skipping template cache invalidation", "error", err.Error())
		return
	}
	defer redisCleanup()

	if err := redis.NewCache(redisClient).InvalidateTemplates(ctx); err != nil {
		logger.Warn(ctx, "failed to invalidate template cache", "error", err.Error())
		return
	}
	log.Info("template cache invalidated")
}
