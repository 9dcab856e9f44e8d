package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the console and the stub backend.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Backend BackendConfig `mapstructure:"backend"`
	Login   LoginConfig   `mapstructure:"login"`
	Log     LogConfig     `mapstructure:"log"`
	Server  ServerConfig  `mapstructure:"server"`
	JWT     JWTConfig     `mapstructure:"jwt"`
}

// BackendConfig points the console at the gym API it consumes.
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LoginConfig carries the credentials cmd/console logs in with.
type LoginConfig struct {
	Role     string `mapstructure:"role"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ServerConfig configures cmd/stubserver.
type ServerConfig struct {
	Address string `mapstructure:"address"`
	Seed    bool   `mapstructure:"seed"`
}

// JWTConfig defines token settings for the stub backend.
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	// Nested keys map to env vars, e.g. backend.base_url -> BACKEND_BASE_URL.
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("backend.base_url", "http://localhost:3000")
	viper.SetDefault("backend.timeout", "15s")
	viper.SetDefault("login.role", "manager")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("server.address", ":3000")
	viper.SetDefault("server.seed", false)
	viper.SetDefault("jwt.secret", "dev-only-secret")
	viper.SetDefault("jwt.expiration", "1h")

	err = viper.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// No config file is fine; env vars and defaults carry it.
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
