package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-gen-api/internal/infrastructure/persistence/postgres"
)

type authTestEnv struct {
	router *gin.Engine
	client *postgres.Client
	prefs  *postgres.PreferenceRepository
}

func newAuthTestEnv(t *testing.T) *authTestEnv {
	t.Helper()

	client := newTestClient(t)
	users := postgres.NewUserRepository(client)
	prefs := postgres.NewPreferenceRepository(client)
	h := NewAuthHandler(testConfig(), users, prefs, postgres.NewTxManager(client))

	r := gin.New()
	r.POST("/v1/auth/register", h.Register)
	r.POST("/v1/auth/login", h.Login)
	r.POST("/v1/auth/refresh", h.RefreshToken)
	r.POST("/v1/auth/logout", h.Logout)

	return &authTestEnv{router: r, client: client, prefs: prefs}
}

func refreshCookie(t *testing.T, w interface{ Result() *http.Response }) *http.Cookie {
	t.Helper()

	for _, ck := range w.Result().Cookies() {
		if ck.Name == "refresh_token" {
			return ck
		}
	}
	t.Fatal("refresh_token cookie not set")
	return nil
}

func TestRegister(t *testing.T) {
	env := newAuthTestEnv(t)

	w := performJSON(env.router, http.MethodPost, "/v1/auth/register", gin.H{
		"email":          "alice@example.com",
		"password":       "secret-password",
		"preferred_name": "Alice",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := dataField(t, w)
	assert.NotEmpty(t, data["access_token"])
	assert.Equal(t, "bearer", data["token_type"])

	user, ok := data["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", user["email"])
	assert.Equal(t, "Alice", user["preferred_name"])
	assert.NotContains(t, user, "password_hash")

	// RefreshToken 写入 HttpOnly Cookie，作用域限定刷新路径
	ck := refreshCookie(t, w)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, "/v1/auth/refresh", ck.Path)

	// 注册同时初始化默认偏好
	pref, err := env.prefs.GetByUserID(t.Context(), user["id"].(string))
	require.NoError(t, err)
	require.NotNil(t, pref)
	assert.Equal(t, "Default", pref.DefaultLinkedInStyle)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newAuthTestEnv(t)
	seedUser(t, env.client, "alice@example.com")

	w := performJSON(env.router, http.MethodPost, "/v1/auth/register", gin.H{
		"email":    "alice@example.com",
		"password": "secret-password",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "2005", errorCode(t, w))
}

func TestRegisterRejectsBadBody(t *testing.T) {
	env := newAuthTestEnv(t)

	// 密码少于 8 个字符
	w := performJSON(env.router, http.MethodPost, "/v1/auth/register", gin.H{
		"email":    "alice@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 非法邮箱
	w = performJSON(env.router, http.MethodPost, "/v1/auth/register", gin.H{
		"email":    "not-an-email",
		"password": "secret-password",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	env := newAuthTestEnv(t)
	seedUser(t, env.client, "alice@example.com")

	w := performJSON(env.router, http.MethodPost, "/v1/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "test-password",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, dataField(t, w)["access_token"])
}

func TestLoginWrongCredentials(t *testing.T) {
	env := newAuthTestEnv(t)
	seedUser(t, env.client, "alice@example.com")

	w := performJSON(env.router, http.MethodPost, "/v1/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "2004", errorCode(t, w))

	// 未注册邮箱返回同一错误，不泄露存在性
	w = performJSON(env.router, http.MethodPost, "/v1/auth/login", gin.H{
		"email":    "nobody@example.com",
		"password": "test-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "2004", errorCode(t, w))
}

func TestRefreshToken(t *testing.T) {
	env := newAuthTestEnv(t)
	seedUser(t, env.client, "alice@example.com")

	login := performJSON(env.router, http.MethodPost, "/v1/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "test-password",
	})
	require.Equal(t, http.StatusOK, login.Code)
	ck := refreshCookie(t, login)

	w := performJSON(env.router, http.MethodPost, "/v1/auth/refresh", nil, ck)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, dataField(t, w)["access_token"])
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	env := newAuthTestEnv(t)
	seedUser(t, env.client, "alice@example.com")

	login := performJSON(env.router, http.MethodPost, "/v1/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "test-password",
	})
	require.Equal(t, http.StatusOK, login.Code)
	access, _ := dataField(t, login)["access_token"].(string)

	// AccessToken 放进刷新 Cookie 必须被拒绝
	w := performJSON(env.router, http.MethodPost, "/v1/auth/refresh", nil, &http.Cookie{Name: "refresh_token", Value: access})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshTokenMissingCookie(t *testing.T) {
	env := newAuthTestEnv(t)

	w := performJSON(env.router, http.MethodPost, "/v1/auth/refresh", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	env := newAuthTestEnv(t)

	w := performJSON(env.router, http.MethodPost, "/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	ck := refreshCookie(t, w)
	assert.Empty(t, ck.Value)
	assert.Less(t, ck.MaxAge, 0)
}
