package config

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "https://api.cal.com", cfg.CalBaseURL)
	assert.Equal(t, "2024-08-13", cfg.CalAPIVersion)
	assert.Equal(t, 10*time.Second, cfg.CalTimeout)
	assert.Equal(t, "static", cfg.SlotSource)
	assert.Equal(t, []string{"10:00", "11:00", "12:00", "15:00", "16:00", "17:00"}, cfg.SlotTimes())
	assert.Equal(t, 5*time.Minute, cfg.EventTypesCacheTTL)
	assert.Nil(t, cfg.SessionHashKey)
	assert.False(t, cfg.IsProduction())

	assert.EqualError(t, cfg.RequireCal(), "CAL_API_KEY, CAL_EVENT_SLUG, CAL_USERNAME required")
}

func TestLoad_FromEnvironment(t *testing.T) {
	hash := base64.StdEncoding.EncodeToString(make([]byte, 32))
	block := base64.RawStdEncoding.EncodeToString(make([]byte, 16))

	t.Setenv("ENV", "production")
	t.Setenv("CAL_BASE_URL", "http://localhost:9999/")
	t.Setenv("CAL_API_KEY", "cal_live_x")
	t.Setenv("CAL_EVENT_SLUG", "30min")
	t.Setenv("CAL_USERNAME", "salon")
	t.Setenv("CAL_TIMEOUT", "2s")
	t.Setenv("CAL_RATE_PER_MINUTE", "30")
	t.Setenv("SLOT_GRID", "09:00, 13:30")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SESSION_HASH_KEY", hash)
	t.Setenv("SESSION_BLOCK_KEY", block)

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "http://localhost:9999", cfg.CalBaseURL)
	assert.Equal(t, 2*time.Second, cfg.CalTimeout)
	assert.Equal(t, 30, cfg.CalRatePerMinute)
	assert.Equal(t, []string{"09:00", "13:30"}, cfg.SlotTimes())
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Len(t, cfg.SessionHashKey, 32)
	assert.Len(t, cfg.SessionBlockKey, 16)
	assert.NoError(t, cfg.RequireCal())
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("postgres needs a database", func(t *testing.T) {
		t.Setenv("SLOT_SOURCE", "postgres")
		_, err := load(viper.New())
		assert.ErrorContains(t, err, "DATABASE_URL")
	})
	t.Run("unknown slot source", func(t *testing.T) {
		t.Setenv("SLOT_SOURCE", "mongo")
		_, err := load(viper.New())
		assert.ErrorContains(t, err, "SLOT_SOURCE")
	})
	t.Run("zero timeout", func(t *testing.T) {
		t.Setenv("CAL_TIMEOUT", "0s")
		_, err := load(viper.New())
		assert.ErrorContains(t, err, "CAL_TIMEOUT")
	})
	t.Run("bad block key", func(t *testing.T) {
		t.Setenv("SESSION_BLOCK_KEY", base64.StdEncoding.EncodeToString(make([]byte, 7)))
		_, err := load(viper.New())
		assert.ErrorContains(t, err, "SESSION_BLOCK_KEY")
	})
	t.Run("not base64", func(t *testing.T) {
		t.Setenv("SESSION_HASH_KEY", "%%%")
		_, err := load(viper.New())
		assert.ErrorContains(t, err, "invalid base64")
	})
}
