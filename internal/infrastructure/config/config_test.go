package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "http://127.0.0.1:11434", cfg.Ollama.BaseURL)
	assert.Equal(t, "llama3", cfg.Ollama.Model)
	assert.Equal(t, 120*time.Second, cfg.Ollama.Timeout)
	// 寫入逾時需涵蓋首次請求加一次菜系重試
	assert.Greater(t, cfg.Server.WriteTimeout, 2*cfg.Ollama.Timeout)
	assert.InDelta(t, 0.3, cfg.Ollama.Temperature, 1e-9)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowOrigins)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("OLLAMA_BASE_URL", "http://ollama:11434")
	t.Setenv("OLLAMA_MODEL", "mistral")
	t.Setenv("ALLOW_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("PORT", "9090")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://ollama:11434", cfg.Ollama.BaseURL)
	assert.Equal(t, "mistral", cfg.Ollama.Model)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowOrigins)
}

func TestLoadConfig_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: 8000},
			Ollama:    OllamaConfig{BaseURL: "http://x", Model: "m", Timeout: time.Second},
			Database:  DatabaseConfig{Driver: "postgres", DSN: "host=localhost"},
			RateLimit: RateLimitConfig{Enabled: true, Requests: 1, Window: time.Minute},
		}
	}

	require.NoError(t, validateConfig(valid()))

	cfg := valid()
	cfg.Redis.Enabled = true
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.RateLimit.Window = 0
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.Ollama.Timeout = 0
	assert.Error(t, validateConfig(cfg))
}
