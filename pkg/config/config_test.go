package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "DB_DRIVER", "MONGO_DATABASE", "RELATION_BACKEND", "AUTH_PROVIDER"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, BackendPostgres, cfg.RelationBackend)
	assert.Equal(t, AuthJWT, cfg.AuthProvider)
	assert.Equal(t, "microposts", cfg.MongoDatabase)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", DriverSQLite)
	t.Setenv("RELATION_BACKEND", BackendMongo)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("ENV", "production")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, BackendMongo, cfg.RelationBackend)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.False(t, cfg.IsDevelopment())
}

func validConfig() *Config {
	return &Config{
		DBDriver:        DriverSQLite,
		SQLitePath:      "test.db",
		RelationBackend: BackendPostgres,
		AuthProvider:    AuthJWT,
		JWTSecret:       "secret",
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"postgres without url", func(c *Config) { c.DBDriver = DriverPostgres }, "POSTGRES_CONN_STR"},
		{"unknown driver", func(c *Config) { c.DBDriver = "oracle" }, "DB_DRIVER"},
		{"mongo without uri", func(c *Config) { c.RelationBackend = BackendMongo }, "MONGO_URI"},
		{"unknown backend", func(c *Config) { c.RelationBackend = "redis" }, "RELATION_BACKEND"},
		{"jwt without secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET"},
		{"firebase without credentials", func(c *Config) { c.AuthProvider = AuthFirebase }, "FIREBASE_CREDENTIALS_PATH"},
		{"unknown provider", func(c *Config) { c.AuthProvider = "saml" }, "AUTH_PROVIDER"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("memory backend", func(t *testing.T) {
		cfg := validConfig()
		cfg.RelationBackend = BackendMemory
		assert.NoError(t, cfg.Validate())
	})
}

func TestOpenSQLite(t *testing.T) {
	cfg := validConfig()
	cfg.SQLitePath = t.TempDir() + "/nested/microposts.db"

	db, err := OpenSQL(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
	assert.NoError(t, sqlDB.Close())
}
