// Package config loads msysprefix settings from defaults, an optional YAML
// file, and MSYSPREFIX_* environment variables.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/dorcha-inc/msysprefix/internal/core"
	"github.com/dorcha-inc/msysprefix/internal/msys"
)

const (
	DefaultLogLevel  = LogLevelWarn
	DefaultLogFormat = LogFormatJSON
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
	LogLevelFatal LogLevel = "fatal"
)

func ValidLogLevels() map[LogLevel]struct{} {
	return map[LogLevel]struct{}{
		LogLevelDebug: {},
		LogLevelInfo:  {},
		LogLevelWarn:  {},
		LogLevelError: {},
		LogLevelFatal: {},
	}
}

func IsValidLogLevel(level LogLevel) bool {
	_, ok := ValidLogLevels()[level]
	return ok
}

type LogFormat string

const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

func ValidLogFormats() map[LogFormat]struct{} {
	return map[LogFormat]struct{}{
		LogFormatPretty: {},
		LogFormatJSON:   {},
	}
}

func IsValidLogFormat(format LogFormat) bool {
	_, ok := ValidLogFormats()[format]
	return ok
}

// Config holds the settings for a single msysprefix run.
type Config struct {
	LogLevel  LogLevel  `yaml:"log_level" mapstructure:"log_level" validate:"required"`
	LogFormat LogFormat `yaml:"log_format" mapstructure:"log_format" validate:"required"`
	Strict    bool      `yaml:"strict" mapstructure:"strict"`                                       // unknown MSYSTEM values are errors
	Variable  string    `yaml:"variable" mapstructure:"variable" validate:"required,excludesall=="` // environment variable to read
}

// Pretty reports whether human readable logs were requested.
func (cfg *Config) Pretty() bool {
	return cfg.LogFormat == LogFormatPretty
}

var validate = newValidator()

// newValidator reports field errors by their yaml key rather than the Go field name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// newViper builds a viper instance with defaults and environment overrides.
// If configPath is non-empty the file is read and must exist.
func newViper(configPath string) (*viper.Viper, error) {
	v := viper.New()
	setViperDefaults(v)
	v.SetEnvPrefix(core.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return v, nil
}

func setViperDefaults(v *viper.Viper) {
	v.SetDefault("log_level", string(DefaultLogLevel))
	v.SetDefault("log_format", string(DefaultLogFormat))
	v.SetDefault("strict", false)
	v.SetDefault("variable", msys.DefaultVariable)
}

// Overrides carries values from command line flags. Nil fields are not set.
type Overrides struct {
	LogLevel *string
	Pretty   *bool
	Strict   *bool
}

// LoadConfig loads configuration with precedence:
// overrides > MSYSPREFIX_* environment > config file > defaults.
func LoadConfig(configPath string, overrides Overrides) (*Config, error) {
	v, err := newViper(configPath)
	if err != nil {
		return nil, err
	}

	applyOverrides(v, overrides)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.LogLevel = LogLevel(strings.ToLower(string(cfg.LogLevel)))
	cfg.LogFormat = LogFormat(strings.ToLower(string(cfg.LogFormat)))

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyOverrides(v *viper.Viper, overrides Overrides) {
	if overrides.LogLevel != nil {
		v.Set("log_level", *overrides.LogLevel)
	}
	if overrides.Pretty != nil && *overrides.Pretty {
		v.Set("log_format", string(LogFormatPretty))
	}
	if overrides.Strict != nil {
		v.Set("strict", *overrides.Strict)
	}
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			fieldErr := validationErrs[0]
			return fmt.Errorf("invalid config value for %s: failed '%s' check", fieldErr.Field(), fieldErr.Tag())
		}
		return fmt.Errorf("config validation failed: %w", err)
	}

	if !IsValidLogLevel(cfg.LogLevel) {
		return fmt.Errorf("log_level must be one of: %s, got '%s'", core.JoinMapKeys(ValidLogLevels()), cfg.LogLevel)
	}
	if !IsValidLogFormat(cfg.LogFormat) {
		return fmt.Errorf("log_format must be one of: %s, got '%s'", core.JoinMapKeys(ValidLogFormats()), cfg.LogFormat)
	}

	return nil
}
