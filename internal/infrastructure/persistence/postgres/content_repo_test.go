package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"content-gen-api/internal/domain/entity"
	"content-gen-api/internal/domain/repository"
)

func newContent(userID string, ctype entity.ContentType, prompt string, createdAt time.Time) *entity.GeneratedContent {
	return &entity.GeneratedContent{
		UserID:        userID,
		ContentType:   ctype,
		HumanPrompt:   prompt,
		SystemPrompt:  "system prompt",
		StyleKey:      "Default",
		ModelUsed:     "gpt-4o",
		Temperature:   0.7,
		GeneratedText: "texto generado para " + prompt,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}

func TestContentRepositoryCreateAndGet(t *testing.T) {
	client := newTestClient(t)
	repo := NewContentRepository(client)
	ctx := context.Background()
	userID := seedUser(t, client, "alice@example.com")

	content := newContent(userID, entity.ContentTypeLinkedInPost, "un post sobre liderazgo", time.Now())
	require.NoError(t, repo.Create(ctx, content))
	require.NotEmpty(t, content.ID)
	assert.Equal(t, "un post sobre liderazgo", content.CustomTitle)

	got, err := repo.GetByID(ctx, userID, content.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, content.GeneratedText, got.GeneratedText)
}

func TestContentRepositoryOwnershipScope(t *testing.T) {
	client := newTestClient(t)
	repo := NewContentRepository(client)
	ctx := context.Background()
	owner := seedUser(t, client, "owner@example.com")
	other := seedUser(t, client, "other@example.com")

	content := newContent(owner, entity.ContentTypeLinkedInPost, "privado", time.Now())
	require.NoError(t, repo.Create(ctx, content))

	got, err := repo.GetByID(ctx, other, content.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.ErrorIs(t, repo.UpdateTitle(ctx, other, content.ID, "robado"), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.SoftDelete(ctx, other, content.ID), gorm.ErrRecordNotFound)
}

func TestContentRepositoryListOrderAndPaging(t *testing.T) {
	client := newTestClient(t)
	repo := NewContentRepository(client)
	ctx := context.Background()
	userID := seedUser(t, client, "alice@example.com")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		c := newContent(userID, entity.ContentTypeLinkedInPost, "post", base.Add(time.Duration(i)*time.Minute))
		c.GeneratedText = string(rune('a' + i))
		require.NoError(t, repo.Create(ctx, c))
	}

	page, err := repo.ListByUser(ctx, userID, nil, repository.NewPageQuery(0, 2))
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.Total)
	require.Len(t, page.Items, 2)
	// created_at 倒序，最新在前
	assert.Equal(t, "e", page.Items[0].GeneratedText)
	assert.Equal(t, "d", page.Items[1].GeneratedText)

	page, err = repo.ListByUser(ctx, userID, nil, repository.NewPageQuery(4, 2))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "a", page.Items[0].GeneratedText)
}

func TestContentRepositoryListFilters(t *testing.T) {
	client := newTestClient(t)
	repo := NewContentRepository(client)
	tags := NewTagRepository(client)
	ctx := context.Background()
	userID := seedUser(t, client, "alice@example.com")

	linkedin := newContent(userID, entity.ContentTypeLinkedInPost, "post", time.Now())
	blog := newContent(userID, entity.ContentTypeBlogGeneralInterest, "artículo", time.Now())
	require.NoError(t, repo.Create(ctx, linkedin))
	require.NoError(t, repo.Create(ctx, blog))

	tag := entity.NewTag(userID, "clientes")
	require.NoError(t, tags.Create(ctx, tag))
	require.NoError(t, repo.AttachTag(ctx, userID, blog.ID, tag.ID))

	page, err := repo.ListByUser(ctx, userID, &repository.ContentFilter{ContentType: entity.ContentTypeLinkedInPost}, repository.NewPageQuery(0, 20))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, linkedin.ID, page.Items[0].ID)

	page, err = repo.ListByUser(ctx, userID, &repository.ContentFilter{TagID: tag.ID}, repository.NewPageQuery(0, 20))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, blog.ID, page.Items[0].ID)
	require.Len(t, page.Items[0].Tags, 1)
	assert.Equal(t, "clientes", page.Items[0].Tags[0].TagName)
}

func TestContentRepositorySoftDeleteKeepsRow(t *testing.T) {
	client := newTestClient(t)
	repo := NewContentRepository(client)
	ctx := context.Background()
	userID := seedUser(t, client, "alice@example.com")

	content := newContent(userID, entity.ContentTypeBlogSuccessCase, "caso", time.Now())
	require.NoError(t, repo.Create(ctx, content))
	require.NoError(t, repo.SoftDelete(ctx, userID, content.ID))

	// 读路径不再可见
	got, err := repo.GetByID(ctx, userID, content.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	page, err := repo.ListByUser(ctx, userID, nil, repository.NewPageQuery(0, 20))
	require.NoError(t, err)
	assert.EqualValues(t, 0, page.Total)

	// 行仍保留在表中
	var count int64
	require.NoError(t, client.DB().Model(&entity.GeneratedContent{}).Where("id = ?", content.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// 重复删除视为未找到
	assert.ErrorIs(t, repo.SoftDelete(ctx, userID, content.ID), gorm.ErrRecordNotFound)
}

func TestContentRepositoryUpdateTitle(t *testing.T) {
	client := newTestClient(t)
	repo := NewContentRepository(client)
	ctx := context.Background()
	userID := seedUser(t, client, "alice@example.com")

	content := newContent(userID, entity.ContentTypeLinkedInPost, "post", time.Now())
	require.NoError(t, repo.Create(ctx, content))

	require.NoError(t, repo.UpdateTitle(ctx, userID, content.ID, "Mi título"))

	got, err := repo.GetByID(ctx, userID, content.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mi título", got.CustomTitle)
}

func TestContentRepositoryAttachDetachTag(t *testing.T) {
	client := newTestClient(t)
	repo := NewContentRepository(client)
	tags := NewTagRepository(client)
	ctx := context.Background()
	userID := seedUser(t, client, "alice@example.com")

	content := newContent(userID, entity.ContentTypeLinkedInPost, "post", time.Now())
	require.NoError(t, repo.Create(ctx, content))
	tag := entity.NewTag(userID, "ideas")
	require.NoError(t, tags.Create(ctx, tag))

	require.NoError(t, repo.AttachTag(ctx, userID, content.ID, tag.ID))

	got, err := repo.GetByID(ctx, userID, content.ID)
	require.NoError(t, err)
	require.Len(t, got.Tags, 1)

	require.NoError(t, repo.DetachTag(ctx, userID, content.ID, tag.ID))

	got, err = repo.GetByID(ctx, userID, content.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Tags)

	// 不存在的内容返回未找到
	assert.ErrorIs(t, repo.AttachTag(ctx, userID, "missing-id", tag.ID), gorm.ErrRecordNotFound)
}
