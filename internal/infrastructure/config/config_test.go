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
		"POS_APP_NAME":                  os.Getenv("POS_APP_NAME"),
		"POS_APP_ENV":                   os.Getenv("POS_APP_ENV"),
		"POS_APP_PORT":                  os.Getenv("POS_APP_PORT"),
		"POS_DATABASE_DRIVER":           os.Getenv("POS_DATABASE_DRIVER"),
		"POS_DATABASE_HOST":             os.Getenv("POS_DATABASE_HOST"),
		"POS_DATABASE_PORT":             os.Getenv("POS_DATABASE_PORT"),
		"POS_DATABASE_USER":             os.Getenv("POS_DATABASE_USER"),
		"POS_DATABASE_PASSWORD":         os.Getenv("POS_DATABASE_PASSWORD"),
		"POS_DATABASE_DBNAME":           os.Getenv("POS_DATABASE_DBNAME"),
		"POS_DATABASE_SSLMODE":          os.Getenv("POS_DATABASE_SSLMODE"),
		"POS_LEDGER_PAYMENT_TERMS_DAYS": os.Getenv("POS_LEDGER_PAYMENT_TERMS_DAYS"),
		"POS_LEDGER_COSTING_POLICY":     os.Getenv("POS_LEDGER_COSTING_POLICY"),
		"POS_OPENAI_ENABLED":            os.Getenv("POS_OPENAI_ENABLED"),
		"POS_OPENAI_API_KEY":            os.Getenv("POS_OPENAI_API_KEY"),
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

		assert.Equal(t, "poslite-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "poslite", cfg.Database.DBName)
		assert.Equal(t, 30, cfg.Ledger.PaymentTermsDays)
		assert.Equal(t, "weighted_average", cfg.Ledger.CostingPolicy)
		assert.Equal(t, 24*time.Hour, cfg.Ledger.IdempotencyTTL)
	})

	t.Run("env vars override defaults", func(t *testing.T) {
		clearEnv()
		os.Setenv("POS_APP_NAME", "till-1")
		os.Setenv("POS_DATABASE_DRIVER", "sqlite")
		os.Setenv("POS_LEDGER_PAYMENT_TERMS_DAYS", "14")
		os.Setenv("POS_LEDGER_COSTING_POLICY", "master_override")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "till-1", cfg.App.Name)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, 14, cfg.Ledger.PaymentTermsDays)
		assert.Equal(t, "master_override", cfg.Ledger.CostingPolicy)
	})

	t.Run("rejects unknown database driver", func(t *testing.T) {
		clearEnv()
		os.Setenv("POS_DATABASE_DRIVER", "oracle")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects unknown costing policy", func(t *testing.T) {
		clearEnv()
		os.Setenv("POS_LEDGER_COSTING_POLICY", "fifo")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("production requires database password", func(t *testing.T) {
		clearEnv()
		os.Setenv("POS_APP_ENV", "production")
		os.Setenv("POS_DATABASE_SSLMODE", "require")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "database.password")
	})

	t.Run("openai enabled requires api key", func(t *testing.T) {
		clearEnv()
		os.Setenv("POS_OPENAI_ENABLED", "true")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "openai.api_key")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "pos",
		Password: "p@ss/word",
		DBName:   "poslite",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}
