package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"MOTODMS_APP_NAME":                os.Getenv("MOTODMS_APP_NAME"),
		"MOTODMS_APP_ENV":                 os.Getenv("MOTODMS_APP_ENV"),
		"MOTODMS_APP_PORT":                os.Getenv("MOTODMS_APP_PORT"),
		"MOTODMS_DATABASE_HOST":           os.Getenv("MOTODMS_DATABASE_HOST"),
		"MOTODMS_DATABASE_PORT":           os.Getenv("MOTODMS_DATABASE_PORT"),
		"MOTODMS_DATABASE_USER":           os.Getenv("MOTODMS_DATABASE_USER"),
		"MOTODMS_DATABASE_PASSWORD":       os.Getenv("MOTODMS_DATABASE_PASSWORD"),
		"MOTODMS_DATABASE_DBNAME":         os.Getenv("MOTODMS_DATABASE_DBNAME"),
		"MOTODMS_DATABASE_SSLMODE":        os.Getenv("MOTODMS_DATABASE_SSLMODE"),
		"MOTODMS_DATABASE_MAX_OPEN_CONNS": os.Getenv("MOTODMS_DATABASE_MAX_OPEN_CONNS"),
		"MOTODMS_DATABASE_MAX_IDLE_CONNS": os.Getenv("MOTODMS_DATABASE_MAX_IDLE_CONNS"),
		"MOTODMS_REDIS_HOST":              os.Getenv("MOTODMS_REDIS_HOST"),
		"MOTODMS_LOG_LEVEL":               os.Getenv("MOTODMS_LOG_LEVEL"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "motodms-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "", cfg.Database.Password)
		assert.Equal(t, "motodms", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "localhost", cfg.Redis.Host)
		assert.Equal(t, 6379, cfg.Redis.Port)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
		assert.Equal(t, 60*time.Second, cfg.HTTP.IdleTimeout)
	})

	t.Run("loads values from environment variables with MOTODMS prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("MOTODMS_APP_NAME", "dms-test")
		os.Setenv("MOTODMS_APP_ENV", "testing")
		os.Setenv("MOTODMS_APP_PORT", "9000")
		os.Setenv("MOTODMS_DATABASE_HOST", "testdb.local")
		os.Setenv("MOTODMS_DATABASE_PORT", "5433")
		os.Setenv("MOTODMS_DATABASE_USER", "testuser")
		os.Setenv("MOTODMS_DATABASE_PASSWORD", "testpass")
		os.Setenv("MOTODMS_DATABASE_DBNAME", "testdb")
		os.Setenv("MOTODMS_DATABASE_SSLMODE", "require")
		os.Setenv("MOTODMS_DATABASE_MAX_OPEN_CONNS", "50")
		os.Setenv("MOTODMS_DATABASE_MAX_IDLE_CONNS", "10")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "dms-test", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("MOTODMS_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("MOTODMS_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("zero MaxOpenConns uses default", func(t *testing.T) {
		clearEnv()
		os.Setenv("MOTODMS_DATABASE_MAX_OPEN_CONNS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		// 0 is treated as "not set", so default (25) is used
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})

	t.Run("production requires database password", func(t *testing.T) {
		clearEnv()
		os.Setenv("MOTODMS_APP_ENV", "production")
		os.Setenv("MOTODMS_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password")
	})

	t.Run("production rejects sslmode disable", func(t *testing.T) {
		clearEnv()
		os.Setenv("MOTODMS_APP_ENV", "production")
		os.Setenv("MOTODMS_DATABASE_PASSWORD", "secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "dms",
		Password: "p@ss/word",
		DBName:   "motodms",
		SSLMode:  "disable",
	}

	dsn := d.DSN()

	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	// special characters must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}
