package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-gen-api/internal/domain/entity"
	"content-gen-api/internal/domain/repository"
)

func seedTemplates(t *testing.T, repo *TemplateRepository) {
	t.Helper()

	ctx := context.Background()
	general := entity.ArticleTypeGeneralInterest
	success := entity.ArticleTypeSuccessCase

	templates := []*entity.SystemPromptTemplate{
		{
			TemplateName:  "linkedin_default_base_v1",
			ContentModule: entity.ContentModuleLinkedIn,
			StyleKey:      "default",
			DisplayName:   "LinkedIn - Guía Manual",
			PromptText:    "Eres un experto en LinkedIn.",
			IsActive:      true,
		},
		{
			TemplateName:  "blog_general_interest_base_v1",
			ContentModule: entity.ContentModuleBlog,
			ArticleType:   &general,
			StyleKey:      "standardArticle",
			DisplayName:   "Blog - Artículo Estándar",
			PromptText:    "Eres un redactor de blog.",
			IsActive:      true,
		},
		{
			TemplateName:  "blog_success_case_base_v1",
			ContentModule: entity.ContentModuleBlog,
			ArticleType:   &success,
			StyleKey:      "successStory",
			DisplayName:   "Blog - Caso de Éxito",
			PromptText:    "Eres un redactor de casos de éxito.",
			IsActive:      false,
		},
	}
	for _, tpl := range templates {
		require.NoError(t, repo.Upsert(ctx, tpl))
	}
}

func TestTemplateRepositoryListFilters(t *testing.T) {
	client := newTestClient(t)
	repo := NewTemplateRepository(client)
	ctx := context.Background()
	seedTemplates(t, repo)

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	blog, err := repo.List(ctx, &repository.TemplateFilter{ContentModule: entity.ContentModuleBlog})
	require.NoError(t, err)
	assert.Len(t, blog, 2)

	general := entity.ArticleTypeGeneralInterest
	byType, err := repo.List(ctx, &repository.TemplateFilter{ArticleType: &general})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "blog_general_interest_base_v1", byType[0].TemplateName)

	active, err := repo.List(ctx, &repository.TemplateFilter{OnlyActive: true})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	byStyle, err := repo.List(ctx, &repository.TemplateFilter{StyleKey: "successStory"})
	require.NoError(t, err)
	require.Len(t, byStyle, 1)
	assert.Equal(t, "Blog - Caso de Éxito", byStyle[0].DisplayName)
}

func TestTemplateRepositoryGet(t *testing.T) {
	client := newTestClient(t)
	repo := NewTemplateRepository(client)
	ctx := context.Background()
	seedTemplates(t, repo)

	byName, err := repo.GetByName(ctx, "linkedin_default_base_v1")
	require.NoError(t, err)
	require.NotNil(t, byName)

	byID, err := repo.GetByID(ctx, byName.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, byName.TemplateName, byID.TemplateName)

	missing, err := repo.GetByName(ctx, "inexistente")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTemplateRepositoryUpsertIsIdempotent(t *testing.T) {
	client := newTestClient(t)
	repo := NewTemplateRepository(client)
	ctx := context.Background()
	seedTemplates(t, repo)

	// 同名再次写入更新而不是新增
	updated := &entity.SystemPromptTemplate{
		TemplateName:  "linkedin_default_base_v1",
		ContentModule: entity.ContentModuleLinkedIn,
		StyleKey:      "default",
		DisplayName:   "LinkedIn - Guía Manual",
		PromptText:    "Prompt revisado.",
		IsActive:      true,
	}
	require.NoError(t, repo.Upsert(ctx, updated))

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	got, err := repo.GetByName(ctx, "linkedin_default_base_v1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Prompt revisado.", got.PromptText)
}
