package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gormLogger "gorm.io/gorm/logger"
)

func TestGetEnvFallsBackWhenEmpty(t *testing.T) {
	t.Setenv("QB_TEST_VALUE", "")
	assert.Equal(t, "fallback", GetEnv("QB_TEST_VALUE", "fallback"))
	assert.Equal(t, "", GetEnv("QB_TEST_VALUE"))

	t.Setenv("QB_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("QB_TEST_VALUE", "fallback"))
}

func TestTypedAccessors(t *testing.T) {
	t.Setenv("QB_INT", "42")
	t.Setenv("QB_BAD_INT", "forty")
	assert.Equal(t, 42, GetEnvInt("QB_INT", 1))
	assert.Equal(t, 1, GetEnvInt("QB_BAD_INT", 1))
	assert.Equal(t, 7, GetEnvInt("QB_UNSET_INT", 7))

	t.Setenv("QB_BOOL", "false")
	assert.False(t, GetEnvBool("QB_BOOL", true))
	assert.True(t, GetEnvBool("QB_UNSET_BOOL", true))

	t.Setenv("QB_DUR", "250ms")
	t.Setenv("QB_SECS", "3")
	t.Setenv("QB_BAD_DUR", "soon")
	assert.Equal(t, 250*time.Millisecond, GetEnvDuration("QB_DUR", time.Second))
	assert.Equal(t, 3*time.Second, GetEnvDuration("QB_SECS", time.Second))
	assert.Equal(t, time.Second, GetEnvDuration("QB_BAD_DUR", time.Second))
}

func TestLoadEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DB_AUTO_MIGRATE", "CORS_ALLOW_ORIGINS", "RATE_LIMIT_MAX", "HTTP_REQUEST_TIMEOUT", "SEED_FILE"} {
		t.Setenv(k, "")
	}
	t.Setenv("DB_DRIVER", "Memory")

	LoadEnv()
	assert.Equal(t, "5000", Port)
	assert.Equal(t, "memory", DBDriver)
	assert.True(t, DBAutoMigrate)
	assert.Equal(t, "*", CorsAllowOrigins)
	assert.Equal(t, 100, RateLimitMax)
	assert.Equal(t, 5*time.Second, HTTPRequestTimeout)
	assert.Empty(t, SeedFile)
}

func TestGormLoggerLevels(t *testing.T) {
	t.Setenv("DB_LOG_QUERIES", "")
	l := NewGormLogger().(*GormLogger)
	assert.Equal(t, gormLogger.Warn, l.LogLevel)

	silent := l.LogMode(gormLogger.Silent).(*GormLogger)
	assert.Equal(t, gormLogger.Silent, silent.LogLevel)
	assert.Equal(t, gormLogger.Warn, l.LogLevel, "LogMode must not mutate the receiver")

	t.Setenv("DB_LOG_QUERIES", "true")
	assert.Equal(t, gormLogger.Info, NewGormLogger().(*GormLogger).LogLevel)
}
