package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"content-gen-api/internal/config"
	"content-gen-api/internal/domain/entity"
	"content-gen-api/internal/infrastructure/persistence/postgres"
	"content-gen-api/pkg/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Init("error", "text")
	os.Exit(m.Run())
}

// newTestClient 打开共享内存 SQLite 并迁移全部领域表
func newTestClient(t *testing.T) *postgres.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:handler_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	client := postgres.NewClientWithDB(db)
	require.NoError(t, client.AutoMigrate())
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func testConfig() *config.Config {
	return &config.Config{
		Security: config.SecurityConfig{
			JWT: config.JWTConfig{
				Secret:            "test-secret",
				Issuer:            "content-gen-api",
				Expiration:        30 * time.Minute,
				RefreshExpiration: 168 * time.Hour,
			},
		},
	}
}

// asUser 测试用中间件，模拟认证后注入的用户 ID
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func seedUser(t *testing.T, client *postgres.Client, email string) *entity.User {
	t.Helper()

	user := entity.NewUser(email, "Tester")
	require.NoError(t, user.SetPassword("test-password"))
	require.NoError(t, client.DB().Create(user).Error)
	return user
}

// seedUserWithID 插入一个指定 ID 的测试用户
func seedUserWithID(t *testing.T, client *postgres.Client, id string) {
	t.Helper()

	user := entity.NewUser(id+"@example.com", "Tester")
	user.ID = id
	require.NoError(t, user.SetPassword("test-password"))
	require.NoError(t, client.DB().Create(user).Error)
}

func performJSON(r http.Handler, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func dataField(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	data, ok := decodeBody(t, w)["data"].(map[string]any)
	require.True(t, ok, "response has no data object: %s", w.Body.String())
	return data
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	detail, ok := decodeBody(t, w)["error"].(map[string]any)
	require.True(t, ok, "response has no error object: %s", w.Body.String())
	code, _ := detail["error_code"].(string)
	return code
}
