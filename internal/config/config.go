package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g.
// L14_VIEWPORT_WIDTH.
const EnvPrefix = "L14"

// Measurer names accepted by text.measurer.
const (
	MeasurerFace  = "face"
	MeasurerFixed = "fixed"
)

// Config holds the whole tool configuration.
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Viewport ViewportConfig `mapstructure:"viewport" yaml:"viewport"`
	Text     TextConfig     `mapstructure:"text" yaml:"text"`
	Batch    BatchConfig    `mapstructure:"batch" yaml:"batch"`
	Paint    PaintConfig    `mapstructure:"paint" yaml:"paint"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// ViewportConfig is the initial containing block, in px.
type ViewportConfig struct {
	Width  float64 `mapstructure:"width" yaml:"width"`
	Height float64 `mapstructure:"height" yaml:"height"`
}

// TextConfig selects how text is measured.
type TextConfig struct {
	Measurer     string  `mapstructure:"measurer" yaml:"measurer"`
	FontPath     string  `mapstructure:"font_path" yaml:"font_path"`
	FixedAdvance float64 `mapstructure:"fixed_advance" yaml:"fixed_advance"`
}

// BatchConfig bounds concurrent layout passes. Zero means one per CPU.
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// PaintConfig tunes the debug painter.
type PaintConfig struct {
	Text      bool    `mapstructure:"text" yaml:"text"`
	LineWidth float64 `mapstructure:"line_width" yaml:"line_width"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "l14layout")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Viewport --
	v.SetDefault("viewport.width", 800.0)
	v.SetDefault("viewport.height", 600.0)

	// -- Text --
	v.SetDefault("text.measurer", MeasurerFace)
	v.SetDefault("text.font_path", "")
	v.SetDefault("text.fixed_advance", 0.6)

	// -- Batch --
	v.SetDefault("batch.concurrency", 0)

	// -- Paint --
	v.SetDefault("paint.text", true)
	v.SetDefault("paint.line_width", 1.0)
}

// NewViper returns a viper instance with defaults and L14_ environment
// overrides bound. path, when set, names a YAML config file.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}
	return v, nil
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport.width and viewport.height must be positive")
	}
	switch c.Text.Measurer {
	case MeasurerFace:
	case MeasurerFixed:
		if c.Text.FixedAdvance <= 0 {
			return fmt.Errorf("text.fixed_advance must be positive for the fixed measurer")
		}
	default:
		return fmt.Errorf("text.measurer must be %q or %q, got %q", MeasurerFace, MeasurerFixed, c.Text.Measurer)
	}
	if c.Batch.Concurrency < 0 {
		return fmt.Errorf("batch.concurrency must not be negative")
	}
	if c.Paint.LineWidth < 0 {
		return fmt.Errorf("paint.line_width must not be negative")
	}
	return nil
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("error marshaling config: %w", err)
	}
	return out, nil
}
