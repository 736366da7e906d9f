package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/viper"
)

// InsecureDefaultSecret is the development fallback for the signing secret.
// Running with it is a deployment error; main refuses to start in release
// mode when the secret resolves to this value.
const InsecureDefaultSecret = "your-secret-key"

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
}

var (
	appConfig *Config
	once      sync.Once
)

// Load loads configuration from the given file path (e.g. "config.yaml").
// If path is empty it defaults to "config.yaml" in the working directory.
// The JWT secret resolves from the JWT_SECRET environment variable first,
// then the config file, then the insecure default.
func Load(path string) (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		v.SetDefault("server.address", "0.0.0.0")
		v.SetDefault("server.port", 8080)
		v.SetDefault("server.mode", "debug")
		v.SetDefault("database.path", "data/budget.db")

		// environment overrides, e.g. BUDGET_SERVER_PORT=9000
		v.SetEnvPrefix("BUDGET")
		v.AutomaticEnv()

		if err = v.ReadInConfig(); err != nil {
			err = fmt.Errorf("read config: %w", err)
			return
		}

		var c Config
		if err = v.Unmarshal(&c); err != nil {
			err = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		if s := os.Getenv("JWT_SECRET"); s != "" {
			c.JWT.Secret = s
		}
		if c.JWT.Secret == "" {
			c.JWT.Secret = InsecureDefaultSecret
		}

		appConfig = &c
	})

	if err != nil {
		return nil, err
	}
	return appConfig, nil
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}
