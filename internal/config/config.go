// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package config

import "time"

// Config holds the complete service configuration.
type Config struct {
	Server   ServerConfig    `koanf:"server"`
	Query    QueryConfig     `koanf:"query"`
	Enhance  EnhanceConfig   `koanf:"enhance"`
	Analysis AnalysisConfig  `koanf:"analysis"`
	Security SecurityConfig  `koanf:"security"`
	Logging  LoggingConfig   `koanf:"logging"`
	Datasets []DatasetConfig `koanf:"datasets"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging, production
}

// QueryConfig configures the remote topic-tree query service client.
type QueryConfig struct {
	URL            string        `koanf:"url"`
	APIKey         string        `koanf:"api_key"`
	Timeout        time.Duration `koanf:"timeout"`
	MaxRetries     int           `koanf:"max_retries"`
	RetryBaseDelay time.Duration `koanf:"retry_base_delay"`
	RateLimit      float64       `koanf:"rate_limit"` // requests per second, 0 disables pacing
	RateBurst      int           `koanf:"rate_burst"`
}

// EnhanceConfig configures the optional text-generation enhancement.
type EnhanceConfig struct {
	Enabled          bool          `koanf:"enabled"`
	Provider         string        `koanf:"provider"` // http or gemini
	URL              string        `koanf:"url"`
	APIKey           string        `koanf:"api_key"`
	Model            string        `koanf:"model"`
	Timeout          time.Duration `koanf:"timeout"`
	MaxQuestionChars int           `koanf:"max_question_chars"`
	MaxResponseChars int           `koanf:"max_response_chars"`
	MaxTopics        int           `koanf:"max_topics"`
	MaxContributors  int           `koanf:"max_contributors"`
}

// AnalysisConfig bounds query execution.
type AnalysisConfig struct {
	MaxVersions int           `koanf:"max_versions"`
	SessionTTL  time.Duration `koanf:"session_ttl"`
	Broadcast   bool          `koanf:"broadcast"` // push per-version results over WebSocket
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// DatasetConfig adds or overrides a dataset registry entry.
type DatasetConfig struct {
	ID          string `koanf:"id"`
	Name        string `koanf:"name"`
	Description string `koanf:"description"`
	Link        string `koanf:"link"`
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
