// Package config loads the dndemo configuration from dnd.yaml, DND_*
// environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/mod/semver"
)

// SchemaVersion is the configuration schema this build understands. Files
// with the same major version load; others are rejected.
const SchemaVersion = "v1.0.0"

// Config represents the optional dnd.yaml configuration.
type Config struct {
	Schema string       `mapstructure:"schema" yaml:"schema"`
	Drag   DragConfig   `mapstructure:"drag" yaml:"drag"`
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
}

// DragConfig tunes the drag controller.
type DragConfig struct {
	Distance       float64 `mapstructure:"distance" yaml:"distance"`
	PreviewOpacity float64 `mapstructure:"preview_opacity" yaml:"preview_opacity"`
	// Transparent renders previews without a background fill.
	Transparent bool `mapstructure:"transparent" yaml:"transparent"`
	// Strict makes broken invariants fatal.
	Strict bool `mapstructure:"strict" yaml:"strict"`
}

// LoggerConfig configures console and rotated file logging.
type LoggerConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("schema", SchemaVersion)

	v.SetDefault("drag.distance", 20)
	v.SetDefault("drag.preview_opacity", 0.4)
	v.SetDefault("drag.transparent", false)
	v.SetDefault("drag.strict", false)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)
}

// NewViper returns a viper instance reading path, or dnd.yaml in the working
// directory when path is empty, with DND_ environment overrides.
func NewViper(path string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("dnd")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix("DND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration. A missing dnd.yaml is not an error; an
// explicitly named file that is missing is.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the schema version and value ranges.
func (c *Config) Validate() error {
	schema := strings.TrimSpace(c.Schema)
	if !strings.HasPrefix(schema, "v") {
		schema = "v" + schema
	}
	if !semver.IsValid(schema) {
		return fmt.Errorf("invalid schema version %q", c.Schema)
	}
	if semver.Major(schema) != semver.Major(SchemaVersion) {
		return fmt.Errorf("unsupported schema version %s (this build reads %s.x)", schema, semver.Major(SchemaVersion))
	}
	c.Schema = schema

	if c.Drag.Distance <= 0 {
		return fmt.Errorf("drag.distance must be positive, got %v", c.Drag.Distance)
	}
	if c.Drag.PreviewOpacity <= 0 || c.Drag.PreviewOpacity > 1 {
		return fmt.Errorf("drag.preview_opacity must be within (0, 1], got %v", c.Drag.PreviewOpacity)
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format must be console or json, got %q", c.Logger.Format)
	}
	return nil
}
