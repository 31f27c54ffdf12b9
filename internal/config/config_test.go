package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, int64(4), cfg.App.PickWorkerLimit)
	assert.Equal(t, 300, cfg.Sync.Window)
	assert.Equal(t, "60m0s", cfg.Sync.Interval.String())
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("CHANNEL_ID", "123456789")
	t.Setenv("EMOJI_READ_LATER_ID", "111")
	t.Setenv("SYNC_WINDOW", "50")

	cfg := Load()

	assert.Equal(t, int64(123456789), cfg.Channel.ChannelId)
	assert.Equal(t, int64(111), cfg.Emoji.ReadLaterId)
	assert.Equal(t, 50, cfg.Sync.Window)
}

func TestValidateRejectsIncompleteConfig(t *testing.T) {
	cfg := Load()
	// Missing DSN, channel id, emoji ids, platform credentials.
	assert.Error(t, cfg.Validate())
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	t.Setenv("DB_CONNECTION_STRING", "host=localhost user=app dbname=app")
	t.Setenv("GATEWAY_TOKEN", "secret")
	t.Setenv("CHANNEL_ID", "1")
	t.Setenv("CURATOR_ID", "2")
	t.Setenv("EMOJI_READ_LATER_ID", "100")
	t.Setenv("EMOJI_FAVORITE_ID", "200")
	t.Setenv("EMOJI_SELF_EXCLUDE_ID", "300")
	t.Setenv("PLATFORM_BASE_URL", "https://platform.example.com/api")
	t.Setenv("PLATFORM_TOKEN", "bot-token")

	cfg := Load()
	assert.NoError(t, cfg.Validate())
}
