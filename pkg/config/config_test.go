package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, 90, c.Data.TestDays)
	assert.Equal(t, "file", c.Model.Store)
	assert.True(t, c.Model.YearlySeasonality)
	assert.True(t, c.Model.WeeklySeasonality)
	assert.False(t, c.Model.DailySeasonality)
	assert.InDelta(t, 0.95, c.Model.IntervalWidth, 1e-12)
	assert.InDelta(t, 0.05, c.Model.ChangepointPriorScale, 1e-12)
	assert.Equal(t, time.Hour, c.Cache.TTL)
}

func TestParseOverridesDefaults(t *testing.T) {
	c, err := Parse([]byte(`
environment: production
server:
  port: 9090
data:
  test_days: 30
model:
  weekly_seasonality: false
  interval_width: 0.8
kafka:
  enabled: true
  brokers: ["k1:9092", "k2:9092"]
`))
	require.NoError(t, err)
	assert.Equal(t, "production", c.Environment)
	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, 30, c.Data.TestDays)
	assert.False(t, c.Model.WeeklySeasonality)
	assert.True(t, c.Model.YearlySeasonality)
	assert.InDelta(t, 0.8, c.Model.IntervalWidth, 1e-12)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.Kafka.Brokers)
	assert.Equal(t, 15*time.Second, c.Server.ReadTimeout)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]string{
		"bad interval":     "model:\n  interval_width: 1.5\n",
		"bad test days":    "data:\n  test_days: 0\n",
		"redis store":      "model:\n  store: redis\n",
		"unknown store":    "model:\n  store: s3\n",
		"kafka no brokers": "kafka:\n  enabled: true\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadWithEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("environment: test\n"), 0o600))

	t.Setenv("PORT", "7070")
	t.Setenv("CSV_PATH", "/tmp/prices.csv")
	t.Setenv("REDIS_ADDR", "redis:6379")

	c, err := LoadWithEnv(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, c.Server.Port)
	assert.Equal(t, "/tmp/prices.csv", c.Data.CSVPath)
	assert.True(t, c.Cache.Redis.Enabled)
	assert.Equal(t, "redis:6379", c.Cache.Redis.Addr)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
