// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "ALERT_EXTRACT"

// EndpointConfig locates one upstream alert API.
type EndpointConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	APIKey  string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
}

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Output struct {
		Directory       string `mapstructure:"directory" yaml:"directory"`
		AutoSizeColumns bool   `mapstructure:"auto_size_columns" yaml:"auto_size_columns"`
	} `mapstructure:"output" yaml:"output"`

	Extraction struct {
		Concurrent bool `mapstructure:"concurrent" yaml:"concurrent"`
	} `mapstructure:"extraction" yaml:"extraction"`

	Sources struct {
		ActOne         EndpointConfig `mapstructure:"actone" yaml:"actone"`
		RCM            EndpointConfig `mapstructure:"rcm" yaml:"rcm"`
		TimeoutSeconds int            `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		Directory      string         `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"sources" yaml:"sources"`

	Server struct {
		Addr                string `mapstructure:"addr" yaml:"addr"`
		BasePath            string `mapstructure:"base_path" yaml:"base_path"`
		ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds" yaml:"read_timeout_seconds"`
		WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds" yaml:"write_timeout_seconds"`
	} `mapstructure:"server" yaml:"server"`
}

// DefaultOutputDirectory is where workbooks are written unless configured.
func DefaultOutputDirectory() string {
	return filepath.Join(os.TempDir(), "xml-extracts")
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.alert-extract")
	v.AddConfigPath(".alert-extract")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("output.directory", DefaultOutputDirectory())
	v.SetDefault("output.auto_size_columns", true)

	v.SetDefault("extraction.concurrent", true)

	v.SetDefault("sources.actone.base_url", "")
	v.SetDefault("sources.actone.api_key", "")
	v.SetDefault("sources.rcm.base_url", "")
	v.SetDefault("sources.rcm.api_key", "")
	v.SetDefault("sources.timeout_seconds", 30)
	v.SetDefault("sources.directory", "")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.base_path", "/api/plugins/xml-extractor")
	v.SetDefault("server.read_timeout_seconds", 30)
	v.SetDefault("server.write_timeout_seconds", 120)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if strings.TrimSpace(config.Output.Directory) == "" {
		return fmt.Errorf("output.directory must not be empty")
	}

	if config.Sources.TimeoutSeconds < 1 || config.Sources.TimeoutSeconds > 600 {
		return fmt.Errorf("sources.timeout_seconds must be between 1 and 600, got: %d", config.Sources.TimeoutSeconds)
	}

	if config.Server.ReadTimeoutSeconds < 1 {
		return fmt.Errorf("server.read_timeout_seconds must be positive, got: %d", config.Server.ReadTimeoutSeconds)
	}

	if config.Server.WriteTimeoutSeconds < 1 {
		return fmt.Errorf("server.write_timeout_seconds must be positive, got: %d", config.Server.WriteTimeoutSeconds)
	}

	return nil
}

// ValidateSources reports whether alerts can be looked up at all: either a
// source directory or an ActOne base URL is required. Local-file extraction
// does not need it.
func (c *Config) ValidateSources() error {
	if c.Sources.Directory == "" && c.Sources.ActOne.BaseURL == "" {
		return fmt.Errorf("no alert source configured: set sources.directory or sources.actone.base_url")
	}
	return nil
}

// SourceTimeout is the per-request timeout of upstream alert APIs.
func (c *Config) SourceTimeout() time.Duration {
	return time.Duration(c.Sources.TimeoutSeconds) * time.Second
}

// ReadTimeout is the HTTP server read timeout.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Server.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout is the HTTP server write timeout.
func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.Server.WriteTimeoutSeconds) * time.Second
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
