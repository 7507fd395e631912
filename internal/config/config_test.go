package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
host = "db"
user = "clinic"
dbname = "clinic"

[auth]
jwt_secret = "from-file"

[schedule]
timezone = "Europe/Moscow"
opening_time = "10:00"
last_slot_start = "15:30"
closing_time = "17:00"
slot_step_minutes = 30
weekday_from = 1
weekday_to = 6
daily_request_limit = 2
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvJWTSecret, "")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port, "default must survive partial file")
	assert.Equal(t, "/metrics", cfg.Metrics.Path)

	settings, err := cfg.ScheduleSettings()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", settings.Location.String())
	assert.Equal(t, types.TimeString("10:00"), settings.OpeningTime)
	assert.Equal(t, time.Monday, settings.WeekdayFrom)
	assert.Equal(t, time.Saturday, settings.WeekdayTo)
	assert.Equal(t, 2, settings.DailyRequestLimit)
}

func TestLoad_EnvOverridesSecret(t *testing.T) {
	t.Setenv(EnvJWTSecret, "from-env")
	t.Setenv(EnvDBPassword, "s3cret")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Contains(t, cfg.Database.DSN(), "password=s3cret")
}

func TestLoad_InvalidSchedule(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	cfg.Schedule.ClosingTime = "12:00"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg.Schedule.ClosingTime = "17:00"
	cfg.Schedule.Timezone = "Mars/Olympus"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestLoad_MissingSecret(t *testing.T) {
	content := `
[database]
host = "db"
user = "clinic"
dbname = "clinic"
`
	t.Setenv(EnvJWTSecret, "")

	_, err := Load(writeConfig(t, content))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestValidate_RateLimitNeedsRedis(t *testing.T) {
	t.Setenv(EnvJWTSecret, "")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.RateLimit.Requests)
	assert.True(t, cfg.RateLimit.FailOpen)

	cfg.RateLimit.Enabled = true
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg.Redis.Enabled = true
	assert.NoError(t, cfg.Validate())

	cfg.RateLimit.Window = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg.RateLimit.Window = 60
	cfg.RateLimit.TrustedProxies = []string{"10.0.0.0/8", "192.168.1.5"}
	assert.NoError(t, cfg.Validate())

	cfg.RateLimit.TrustedProxies = []string{"proxy.local"}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestValidate_Tracing(t *testing.T) {
	t.Setenv(EnvJWTSecret, "")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, 1.0, cfg.Tracing.SampleRatio)

	cfg.Tracing.Enabled = true
	assert.NoError(t, cfg.Validate())

	cfg.Tracing.SampleRatio = 2
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg.Tracing.SampleRatio = 0.1
	cfg.Tracing.OTLPEndpoint = ""
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
