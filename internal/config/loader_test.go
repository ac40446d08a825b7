package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("TEST_EXPAND_HOST", "db.internal")

	// 已定义变量取环境值
	assert.Equal(t, "host: db.internal", expandEnv("host: ${TEST_EXPAND_HOST:localhost}"))

	// 未定义变量取默认值
	assert.Equal(t, "port: 5432", expandEnv("port: ${TEST_EXPAND_PORT:5432}"))

	// 默认值允许为空
	assert.Equal(t, "key: ", expandEnv("key: ${TEST_EXPAND_MISSING:}"))

	// 默认值允许包含冒号，模型名场景
	assert.Equal(t, "model: ft:gpt-4o:org:suffix", expandEnv("model: ${TEST_EXPAND_MODEL:ft:gpt-4o:org:suffix}"))

	// 无默认值且未定义时原样保留
	assert.Equal(t, "raw: ${TEST_EXPAND_RAW}", expandEnv("raw: ${TEST_EXPAND_RAW}"))
}

func TestValidate(t *testing.T) {
	valid := &Config{
		Security: SecurityConfig{JWT: JWTConfig{Secret: "secret"}},
		LLM: LLMConfig{
			APIKey:       "sk-test",
			DefaultStyle: "Default",
			Styles: map[string]StyleConfig{
				"Default": {Model: "gpt-4o"},
				"Pablo":   {Model: "ft:gpt-4o-2024-08-06:disia:pablo-estilo-v1:BS3tYmqt"},
			},
		},
	}
	assert.NoError(t, valid.Validate())

	noSecret := *valid
	noSecret.Security.JWT.Secret = ""
	assert.Error(t, noSecret.Validate())

	noKey := *valid
	noKey.LLM.APIKey = ""
	assert.Error(t, noKey.Validate())

	badDefault := *valid
	badDefault.LLM.DefaultStyle = "Inexistente"
	assert.Error(t, badDefault.Validate())

	emptyModel := *valid
	emptyModel.LLM.Styles = map[string]StyleConfig{"Default": {}}
	assert.Error(t, emptyModel.Validate())
}

func TestStyleModel(t *testing.T) {
	cfg := &LLMConfig{Styles: map[string]StyleConfig{
		"Default": {Model: "gpt-4o"},
	}}

	model, ok := cfg.StyleModel("Default")
	assert.True(t, ok)
	assert.Equal(t, "gpt-4o", model)

	_, ok = cfg.StyleModel("Aitor")
	assert.False(t, ok)
}
