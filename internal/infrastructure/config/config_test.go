package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "foodhub-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "foodhub", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.False(t, cfg.Redis.Enabled)
		assert.NotEmpty(t, cfg.JWT.Secret)
		assert.Equal(t, time.Hour, cfg.JWT.AccessTokenExpiration)

		assert.True(t, cfg.Ordering.StrictTransitions)
		assert.False(t, cfg.Ordering.EnforceCartTotal)
		assert.False(t, cfg.Ordering.EnforceSingleRestaurant)
		assert.Equal(t, 24*time.Hour, cfg.Ordering.IdempotencyTTL)

		assert.True(t, cfg.Review.ReconcileEnabled)
		assert.Equal(t, 5*time.Minute, cfg.Review.ReconcileInterval)
		assert.Equal(t, 2*time.Hour, cfg.Cart.IdleTTL)
		assert.Equal(t, MessagingDriverNone, cfg.Messaging.Driver)
		assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
	})

	t.Run("loads values from environment variables with FOODHUB prefix", func(t *testing.T) {
		t.Setenv("FOODHUB_APP_PORT", "9000")
		t.Setenv("FOODHUB_DATABASE_HOST", "testdb.local")
		t.Setenv("FOODHUB_DATABASE_PORT", "5433")
		t.Setenv("FOODHUB_REDIS_ENABLED", "true")
		t.Setenv("FOODHUB_ORDERING_STRICT_TRANSITIONS", "false")
		t.Setenv("FOODHUB_ORDERING_ENFORCE_CART_TOTAL", "true")
		t.Setenv("FOODHUB_CART_IDLE_TTL", "30m")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.True(t, cfg.Redis.Enabled)
		assert.False(t, cfg.Ordering.StrictTransitions)
		assert.True(t, cfg.Ordering.EnforceCartTotal)
		assert.Equal(t, 30*time.Minute, cfg.Cart.IdleTTL)
	})

	t.Run("rejects unknown messaging driver", func(t *testing.T) {
		t.Setenv("FOODHUB_MESSAGING_DRIVER", "carrier-pigeon")
		_, err := Load()
		assert.ErrorContains(t, err, "messaging.driver")
	})

	t.Run("kafka requires brokers", func(t *testing.T) {
		t.Setenv("FOODHUB_MESSAGING_DRIVER", "kafka")
		_, err := Load()
		assert.ErrorContains(t, err, "kafka_brokers")
	})

	t.Run("production requires secrets", func(t *testing.T) {
		t.Setenv("FOODHUB_APP_ENV", "production")
		_, err := Load()
		assert.ErrorContains(t, err, "jwt.secret")
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, base().validate())
	})

	t.Run("idle conns cannot exceed open conns", func(t *testing.T) {
		cfg := base()
		cfg.Database.MaxIdleConns = 100
		assert.Error(t, cfg.validate())
	})

	t.Run("bad log level", func(t *testing.T) {
		cfg := base()
		cfg.Log.Level = "verbose"
		assert.Error(t, cfg.validate())
	})

	t.Run("sampling ratio range", func(t *testing.T) {
		cfg := base()
		cfg.Telemetry.SamplingRatio = 1.5
		assert.Error(t, cfg.validate())
	})

	t.Run("production wildcard cors", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		cfg.Database.Password = "pw"
		cfg.Database.SSLMode = "require"
		assert.NoError(t, cfg.validate())

		cfg.HTTP.CORSAllowOrigins = []string{"*"}
		assert.Error(t, cfg.validate())
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss word", DBName: "foodhub", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/foodhub?sslmode=disable", d.DSN())
}
