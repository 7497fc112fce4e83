package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DBPath              string
	Port                string
	IsProduction        bool
	SeedDefaultAccounts bool
}

// LoadConfig loads configuration from environment variables and a .env
// file if present. Real environment variables win over .env values.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("DB_PATH", "bookease.db")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("SEED_DEFAULT_ACCOUNTS", true)

	viper.AutomaticEnv()

	cfg := &Config{
		DBPath:              viper.GetString("DB_PATH"),
		Port:                viper.GetString("PORT"),
		IsProduction:        viper.GetBool("IS_PRODUCTION"),
		SeedDefaultAccounts: viper.GetBool("SEED_DEFAULT_ACCOUNTS"),
	}
	return cfg, nil
}
