// Package config provides configuration for the paper backend.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the backend configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// Session settings
	SessionTimeout time.Duration

	// Model backend
	GeminiAPIKey      string
	GeminiModel       string
	CompletionTimeout time.Duration

	// Prompts
	PromptsDir string

	// Logging / telemetry
	LogLevel string
	LogDir   string
}

// Load reads configuration from the environment (PAPERCHAT_* variables)
// and an optional yaml config file in the working directory.
func Load() *Config {
	v := viper.New()

	v.SetDefault("http_port", 8080)
	v.SetDefault("database_url", "file:paperchat.db?cache=shared&mode=rwc")
	v.SetDefault("session_timeout", "2m")
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", "gemini-2.0-flash")
	v.SetDefault("completion_timeout", "60s")
	v.SetDefault("prompts_dir", "prompts")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_dir", "logs")

	v.SetConfigName("paperchat")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // a missing config file is fine; env and defaults apply

	v.SetEnvPrefix("PAPERCHAT")
	v.AutomaticEnv()

	return &Config{
		HTTPPort:          v.GetInt("http_port"),
		DatabaseURL:       v.GetString("database_url"),
		SessionTimeout:    v.GetDuration("session_timeout"),
		GeminiAPIKey:      v.GetString("gemini_api_key"),
		GeminiModel:       v.GetString("gemini_model"),
		CompletionTimeout: v.GetDuration("completion_timeout"),
		PromptsDir:        v.GetString("prompts_dir"),
		LogLevel:          v.GetString("log_level"),
		LogDir:            v.GetString("log_dir"),
	}
}
