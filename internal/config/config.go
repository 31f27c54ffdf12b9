package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Channel  ChannelConfig
	Emoji    EmojiConfig
	Platform PlatformConfig
	Sync     SyncConfig
}

type AppConfig struct {
	Port         string
	Environment  string
	LogFilePath  string
	GatewayToken string `validate:"required"`
	// Interactive picks in flight at once; extra requests fail fast.
	PickWorkerLimit int64 `validate:"min=1"`
}

type DatabaseConfig struct {
	Connection string `validate:"required"`
}

type ChannelConfig struct {
	// The single mirrored channel.
	ChannelId int64 `validate:"required"`
	// Allow-listed actor for panel/update_db.
	CuratorId int64 `validate:"required"`
	// Author whose messages never appear in picks.
	ExcludedAuthorId int64
}

type EmojiConfig struct {
	ReadLaterId   int64 `validate:"required"`
	FavoriteId    int64 `validate:"required"`
	SelfExcludeId int64 `validate:"required"`
}

type PlatformConfig struct {
	BaseURL string `validate:"required,url"`
	Token   string `validate:"required"`
}

type SyncConfig struct {
	Window   int `validate:"min=1"`
	Interval time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:            getEnv("APP_PORT", "3000"),
			Environment:     getEnv("GO_ENV", "development"),
			LogFilePath:     getEnv("LOG_FILE_PATH", "logs/app.log"),
			GatewayToken:    getEnv("GATEWAY_TOKEN", ""),
			PickWorkerLimit: int64(getEnvAsInt("PICK_WORKER_LIMIT", 4)),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Channel: ChannelConfig{
			ChannelId:        getEnvAsInt64("CHANNEL_ID", 0),
			CuratorId:        getEnvAsInt64("CURATOR_ID", 0),
			ExcludedAuthorId: getEnvAsInt64("EXCLUDED_AUTHOR_ID", 0),
		},
		Emoji: EmojiConfig{
			ReadLaterId:   getEnvAsInt64("EMOJI_READ_LATER_ID", 0),
			FavoriteId:    getEnvAsInt64("EMOJI_FAVORITE_ID", 0),
			SelfExcludeId: getEnvAsInt64("EMOJI_SELF_EXCLUDE_ID", 0),
		},
		Platform: PlatformConfig{
			BaseURL: getEnv("PLATFORM_BASE_URL", ""),
			Token:   getEnv("PLATFORM_TOKEN", ""),
		},
		Sync: SyncConfig{
			Window:   getEnvAsInt("SYNC_WINDOW", 300),
			Interval: time.Duration(getEnvAsInt("SYNC_INTERVAL_MINUTES", 60)) * time.Minute,
		},
	}
}

// Validate checks required fields before the container is wired.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c.App); err != nil {
		return err
	}
	if err := v.Struct(c.Database); err != nil {
		return err
	}
	if err := v.Struct(c.Channel); err != nil {
		return err
	}
	if err := v.Struct(c.Emoji); err != nil {
		return err
	}
	if err := v.Struct(c.Platform); err != nil {
		return err
	}
	return v.Struct(c.Sync)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseInt(strValue, 10, 64); err == nil {
		return value
	}
	return fallback
}
