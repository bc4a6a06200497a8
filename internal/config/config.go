// Package config loads the relaypager CLI configuration from a YAML file,
// RELAYPAGER_* environment variables and defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Alp4ka/relaypager"
)

const envPrefix = "RELAYPAGER"

// Config represents the configuration implementation.
type Config struct {
	Database *Database
	Logger   *Logger
	Paging   *Paging
}

// Database connection settings. Driver is one of sqlite, mysql, postgres.
type Database struct {
	Driver string
	DSN    string
}

// Logger logger config struct.
type Logger struct {
	Level  string
	Format string
	Output string
}

// Paging pagination settings.
type Paging struct {
	MaxLimit int
	Order    relaypager.Direction
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "relaypager.db")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "text")
	v.SetDefault("logger.output", "stderr")
	v.SetDefault("paging.max_limit", relaypager.MaxLimit)
	v.SetDefault("paging.order", "desc")
}

// LoadConfig loads the configuration. An empty configPath skips the file and
// uses environment variables and defaults only.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	paging, err := getPagingConfig(v)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Database: getDatabaseConfig(v),
		Logger:   getLoggerConfig(v),
		Paging:   paging,
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getDatabaseConfig(v *viper.Viper) *Database {
	return &Database{
		Driver: strings.ToLower(v.GetString("database.driver")),
		DSN:    v.GetString("database.dsn"),
	}
}

func getLoggerConfig(v *viper.Viper) *Logger {
	return &Logger{
		Level:  v.GetString("logger.level"),
		Format: v.GetString("logger.format"),
		Output: v.GetString("logger.output"),
	}
}

func getPagingConfig(v *viper.Viper) (*Paging, error) {
	order, err := relaypager.ParseDirection(v.GetString("paging.order"))
	if err != nil {
		return nil, fmt.Errorf("paging.order: %w", err)
	}

	return &Paging{
		MaxLimit: v.GetInt("paging.max_limit"),
		Order:    order,
	}, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("database.driver: unsupported driver '%s'", c.Database.Driver)
	}

	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn: must not be empty")
	}

	if c.Paging.MaxLimit <= 0 {
		return fmt.Errorf("paging.max_limit: must be positive, got %d", c.Paging.MaxLimit)
	}

	return nil
}
