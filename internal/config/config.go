// Package config loads the .env file and the Viper configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	envOnce sync.Once
	// Logger is the bootstrap logger used before the configuration is loaded.
	Logger = logrus.New()
)

// envFiles are tried in order; the first existing one is loaded.
var envFiles = []string{".env", filepath.Join("..", ".env")}

// EnvKey returns the environment variable that overrides the config key,
// e.g. "log.level" -> "ALERT_EXTRACT_LOG_LEVEL".
func EnvKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// ConfigureLogging sets the bootstrap logger and the global logrus level from
// the log.level and log.format environment overrides.
func ConfigureLogging() *logrus.Logger {
	levelStr := GetEnv(EnvKey("log.level"), "info")
	level, err := logrus.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		Logger.Warnf("Invalid log level '%s', using 'info'", levelStr)
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)
	logrus.SetLevel(level)

	if strings.EqualFold(os.Getenv(EnvKey("log.format")), "json") {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return Logger
}

// LoadEnv loads the first .env file found, once per process. It returns the
// file that was loaded, or "" when none exists or loading failed.
func LoadEnv() string {
	var loaded string
	envOnce.Do(func() {
		loaded = loadEnvFile(envFiles)
	})
	return loaded
}

func loadEnvFile(candidates []string) string {
	for _, envFile := range candidates {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			Logger.Warnf("Error loading %s: %v", envFile, err)
			return ""
		}
		return envFile
	}
	return ""
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
