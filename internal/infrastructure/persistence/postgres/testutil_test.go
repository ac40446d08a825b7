package postgres

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"content-gen-api/internal/domain/entity"
)

// newTestClient 打开共享内存 SQLite 并迁移全部领域表
func newTestClient(t *testing.T) *Client {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	client := NewClientWithDB(db)
	require.NoError(t, client.AutoMigrate())
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// seedUser 插入一个测试用户并返回其 ID
func seedUser(t *testing.T, client *Client, email string) string {
	t.Helper()

	user := entity.NewUser(email, "Tester")
	require.NoError(t, user.SetPassword("test-password"))
	require.NoError(t, client.DB().Create(user).Error)
	return user.ID
}
