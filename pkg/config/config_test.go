package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("INFERENCE_API_KEY", "sk-test")
	t.Setenv("INFERENCE_PROVIDER", "Anthropic")
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("WORKER_COUNT", "4")
	t.Setenv("INFERENCE_CALL_TIMEOUT", "15s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderAnthropic, cfg.Inference.Provider)
	assert.Equal(t, StoreDriverMongo, cfg.Store.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 4, cfg.Worker.Count)
	assert.Equal(t, 15*time.Second, cfg.Inference.CallTimeout)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Dashboard.DefaultPeriodDays)
	assert.Equal(t, LockBackendRedis, cfg.Worker.LockBackend)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Store:     StoreConfig{Driver: "postgres"},
			Inference: InferenceConfig{Provider: "openai", APIKey: "k", CallTimeout: time.Second},
			Worker:    WorkerConfig{LockBackend: "Memory"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Store.Driver = "sqlite" }, wantErr: true},
		{name: "unknown provider", mutate: func(c *Config) { c.Inference.Provider = "llama" }, wantErr: true},
		{name: "missing key", mutate: func(c *Config) { c.Inference.APIKey = "" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.Inference.CallTimeout = 0 }, wantErr: true},
		{name: "unknown lock backend", mutate: func(c *Config) { c.Worker.LockBackend = "etcd" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, 1, c.Worker.Count)
			assert.Equal(t, LockBackendMemory, c.Worker.LockBackend)
			assert.Equal(t, 1, c.Dashboard.DefaultTrendCount)
		})
	}
}
