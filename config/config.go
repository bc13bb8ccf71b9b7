package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Redis struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Server struct {
		Port         string `mapstructure:"port"`
		MaxPageLimit int    `mapstructure:"max_page_limit"`
	} `mapstructure:"server"`
	Auth struct {
		BcryptCost        int    `mapstructure:"bcrypt_cost"`
		AccessSecret      string `mapstructure:"access_secret"`
		RefreshSecret     string `mapstructure:"refresh_secret"`
		AccessTTLSeconds  int    `mapstructure:"access_ttl_seconds"`
		RefreshTTLSeconds int    `mapstructure:"refresh_ttl_seconds"`
		SignupSecretCode  string `mapstructure:"signup_secret_code"`
		RevokeOnRefresh   bool   `mapstructure:"revoke_on_refresh"`
	} `mapstructure:"auth"`
	Storage struct {
		Endpoint      string `mapstructure:"endpoint"`
		Region        string `mapstructure:"region"`
		Bucket        string `mapstructure:"bucket"`
		AccessKey     string `mapstructure:"access_key"`
		SecretKey     string `mapstructure:"secret_key"`
		PublicBaseURL string `mapstructure:"public_base_url"`
	} `mapstructure:"storage"`
}

// LoadConfig reads config.yml from the given path and overlays environment
// variables (e.g. AUTH_ACCESS_SECRET overrides auth.access_secret). The loaded
// configuration is returned so callers can inject it where needed instead of
// reading global state.
func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.max_page_limit", 100)
	viper.SetDefault("auth.bcrypt_cost", 12)
	viper.SetDefault("auth.access_ttl_seconds", 900)
	viper.SetDefault("auth.refresh_ttl_seconds", 604800)
	viper.SetDefault("auth.revoke_on_refresh", false)
	viper.SetDefault("storage.region", "us-east-1")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return cfg, nil
}
