// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package config

import (
	"fmt"
	"strings"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateQuery(); err != nil {
		return err
	}
	if err := c.validateEnhance(); err != nil {
		return err
	}
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateDatasets(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging or production, got %q", c.Server.Environment)
	}
	if c.IsProduction() && len(c.Security.CORSOrigins) == 1 && c.Security.CORSOrigins[0] == "*" {
		return fmt.Errorf("CORS_ORIGINS must not be \"*\" when ENVIRONMENT=production")
	}
	return nil
}

func (c *Config) validateQuery() error {
	if c.Query.URL == "" {
		return fmt.Errorf("QUERY_SERVICE_URL is required")
	}
	if err := validateHTTPURL(c.Query.URL, "QUERY_SERVICE_URL"); err != nil {
		return fmt.Errorf("QUERY_SERVICE_URL is invalid: %w", err)
	}
	if c.Query.Timeout <= 0 {
		return fmt.Errorf("QUERY_SERVICE_TIMEOUT must be positive")
	}
	if c.Query.MaxRetries < 0 {
		return fmt.Errorf("QUERY_SERVICE_RETRIES must not be negative")
	}
	if c.Query.RateLimit < 0 {
		return fmt.Errorf("QUERY_SERVICE_RATE_LIMIT must not be negative")
	}
	if c.Query.RateLimit > 0 && c.Query.RateBurst < 1 {
		return fmt.Errorf("QUERY_SERVICE_RATE_BURST must be at least 1 when rate limiting is enabled")
	}
	return nil
}

func (c *Config) validateEnhance() error {
	if !c.Enhance.Enabled {
		return nil
	}
	switch c.Enhance.Provider {
	case "http":
		if c.Enhance.URL == "" {
			return fmt.Errorf("ENHANCE_URL is required when ENHANCE_PROVIDER=http")
		}
		if err := validateHTTPURL(c.Enhance.URL, "ENHANCE_URL"); err != nil {
			return fmt.Errorf("ENHANCE_URL is invalid: %w", err)
		}
	case "gemini":
		if c.Enhance.APIKey == "" {
			return fmt.Errorf("ENHANCE_API_KEY is required when ENHANCE_PROVIDER=gemini")
		}
		if c.Enhance.Model == "" {
			return fmt.Errorf("ENHANCE_MODEL is required when ENHANCE_PROVIDER=gemini")
		}
	default:
		return fmt.Errorf("ENHANCE_PROVIDER must be http or gemini, got %q", c.Enhance.Provider)
	}
	if c.Enhance.Timeout <= 0 {
		return fmt.Errorf("ENHANCE_TIMEOUT must be positive")
	}
	if c.Enhance.MaxQuestionChars < 1 || c.Enhance.MaxResponseChars < 1 {
		return fmt.Errorf("ENHANCE_MAX_QUESTION_CHARS and ENHANCE_MAX_RESPONSE_CHARS must be positive")
	}
	if c.Enhance.MaxTopics < 1 || c.Enhance.MaxContributors < 1 {
		return fmt.Errorf("ENHANCE_MAX_TOPICS and ENHANCE_MAX_CONTRIBUTORS must be positive")
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.MaxVersions < 1 || c.Analysis.MaxVersions > 3 {
		return fmt.Errorf("ANALYSIS_MAX_VERSIONS must be between 1 and 3, got %d", c.Analysis.MaxVersions)
	}
	if c.Analysis.SessionTTL <= 0 {
		return fmt.Errorf("ANALYSIS_SESSION_TTL must be positive")
	}
	return nil
}

func (c *Config) validateDatasets() error {
	for i, ds := range c.Datasets {
		if strings.TrimSpace(ds.ID) == "" {
			return fmt.Errorf("datasets[%d].id is required", i)
		}
		if ds.Name == "" {
			return fmt.Errorf("datasets[%d].name is required for dataset %q", i, ds.ID)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL is invalid: %q", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
