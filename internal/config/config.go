// Package config loads command line settings from defaults, an optional file
// and CLIENTFORM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all settings of the clientform binary.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Forms    FormsConfig    `mapstructure:"forms"`
	Log      LogConfig      `mapstructure:"log"`
	Input    InputConfig    `mapstructure:"input"`
}

// DatabaseConfig locates the entity database.
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// FormsConfig points at extra form definitions.
type FormsConfig struct {
	// Dir holds YAML/JSON definition files; empty means built-ins only.
	Dir string `mapstructure:"dir"`
}

// LogConfig selects the logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// InputConfig tunes how edited values enter a form.
type InputConfig struct {
	// Sanitize strips markup from every edit before it is validated.
	Sanitize bool `mapstructure:"sanitize"`
}

// Load reads configuration from path (optional) and the environment.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("database.dsn", "./clientform.db")
	v.SetDefault("forms.dir", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("input.sanitize", true)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var parseErr viper.ConfigParseError
			if errors.As(err, &parseErr) {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("CLIENTFORM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}
