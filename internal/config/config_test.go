package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Storage: StorageConfig{Type: StorageTypeMemory},
		JWT:     JWTConfig{Secret: "unit-test-secret-key-at-least-32-chars", ExpiryHours: 72},
		Agent:   AgentConfig{GeminiAPIKey: "test-key", Model: "gemini-1.5-pro"},
	}
}

func TestValidateMemoryStorage(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidatePostgresRequiresStores(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Type = StorageTypePostgres
	require.Error(t, cfg.Validate())

	cfg.Database = DatabaseConfig{Host: "localhost", User: "app", DBName: "app"}
	require.Error(t, cfg.Validate(), "redis host still missing")

	cfg.Redis.Host = "localhost"
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Type = "cloud"
	require.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.JWT.Secret = "short"
	require.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Agent.GeminiAPIKey = ""
	require.Error(t, cfg.Validate())
}

func TestGetDSN(t *testing.T) {
	db := &DatabaseConfig{Host: "localhost", Port: 5432, User: "app", Password: "pw", DBName: "app", SSLMode: "disable"}
	require.Equal(t, "host=localhost port=5432 user=app password=pw dbname=app sslmode=disable", db.GetDSN())
}
