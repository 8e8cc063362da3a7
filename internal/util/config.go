package util

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	FirebaseDatabaseURL     string `mapstructure:"FIREBASE_DATABASE_URL"`
	HTTPServerAddress       string `mapstructure:"HTTP_SERVER_ADDRESS"`
	RedisServerAddress      string `mapstructure:"REDIS_SERVER_ADDRESS"`
	DigestCronSpec          string `mapstructure:"DIGEST_CRON_SPEC"`
	DiscordBotToken         string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordChannelID        string `mapstructure:"DISCORD_CHANNEL_ID"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	// Set defaults for non-sensitive config
	viper.SetDefault("HTTP_SERVER_ADDRESS", "0.0.0.0:8080")
	// Production schedule: every monday 09:30
	viper.SetDefault("DIGEST_CRON_SPEC", "30 9 * * 1")

	// Prefer environment variables over config file
	viper.AutomaticEnv()

	// Load config file
	viper.SetConfigFile(path)
	if err = viper.ReadInConfig(); err != nil {
		return
	}

	// Unmarshal config into struct
	err = viper.UnmarshalExact(&config)
	if err != nil {
		return
	}

	// Validate required configuration
	err = validateConfig(config)
	return
}

func validateConfig(config Config) error {
	if config.FirebaseCredentialsFile == "" {
		return fmt.Errorf("FIREBASE_CREDENTIALS_FILE is required")
	}
	if config.FirebaseDatabaseURL == "" {
		return fmt.Errorf("FIREBASE_DATABASE_URL is required")
	}
	if config.RedisServerAddress == "" {
		return fmt.Errorf("REDIS_SERVER_ADDRESS is required")
	}
	// Discord reporting is optional, but a token without a channel is a misconfiguration.
	if config.DiscordBotToken != "" && config.DiscordChannelID == "" {
		return fmt.Errorf("DISCORD_CHANNEL_ID is required when DISCORD_BOT_TOKEN is set")
	}

	return nil
}
