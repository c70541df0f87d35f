// Package config provides configuration loading, validation, and management
// for the notification bot. It reads an optional .env file, a YAML config
// file, and BOT_* environment variables, then validates the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-telegram/bot/models"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config defines the application configuration parameters for all components
// of the bot: logging, Telegram transport, database, moderation settings,
// and the scheduler.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Bot       BotConfig       `mapstructure:"bot"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// LogConfig controls log verbosity and output format.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the bot credential and runtime bot identity.
type TelegramConfig struct {
	Token string `mapstructure:"token" validate:"required"`

	// BotInfo is populated at startup from GetMe and is not read from config.
	BotInfo *models.User `mapstructure:"-"`
}

// DatabaseConfig holds the SQLite database location.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// BotConfig holds moderation-specific settings.
type BotConfig struct {
	// AdminsGroupChatName is the title of the moderator group chat. Messages
	// originating from this chat are never logged as monitorable content, and
	// sweep notifications are delivered to it.
	AdminsGroupChatName string `mapstructure:"admins_group_chat_name" validate:"required"`

	// MonitoredGroups optionally restricts reaction monitoring to the named
	// group chats. Empty means all group chats.
	MonitoredGroups []string `mapstructure:"monitored_groups"`
}

// SchedulerConfig holds per-task scheduling settings keyed by task name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// TaskConfig enables a scheduled task and sets its cron schedule.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// LoadConfig loads and validates configuration from:
// 1. Default values
// 2. An optional .env file in the working directory
// 3. The YAML config file at configPath
// 4. BOT_* environment variables
func LoadConfig(configPath string) (*Config, error) {
	// .env is optional; environment variables from it feed the viper layer below.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is allowed; env vars and defaults may suffice.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// setDefaults sets default values for optional configuration parameters.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetDefault("database.path", "storage.db")

	// The message sweep runs every minute by default. Schedules use the
	// six-field cron format with a leading seconds field.
	v.SetDefault("scheduler.tasks.check_messages.enabled", true)
	v.SetDefault("scheduler.tasks.check_messages.schedule", "0 * * * * *")
}
