// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations searched in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/topiclens/config.yaml",
	"/etc/topiclens/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Query: QueryConfig{
			URL:            "http://localhost:3000",
			Timeout:        30 * time.Second,
			MaxRetries:     5,
			RetryBaseDelay: time.Second,
			RateLimit:      10,
			RateBurst:      5,
		},
		Enhance: EnhanceConfig{
			Enabled:          false,
			Provider:         "http",
			Model:            "gemini-2.5-flash",
			Timeout:          20 * time.Second,
			MaxQuestionChars: 500,
			MaxResponseChars: 2000,
			MaxTopics:        10,
			MaxContributors:  10,
		},
		Analysis: AnalysisConfig{
			MaxVersions: 3,
			SessionTTL:  30 * time.Minute,
			Broadcast:   true,
		},
		Security: SecurityConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// QUERY_SERVICE_URL -> query.url
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to config paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	"query_service_url":        "query.url",
	"query_service_api_key":    "query.api_key",
	"query_service_timeout":    "query.timeout",
	"query_service_retries":    "query.max_retries",
	"query_service_retry_base": "query.retry_base_delay",
	"query_service_rate_limit": "query.rate_limit",
	"query_service_rate_burst": "query.rate_burst",

	"enhance_enabled":            "enhance.enabled",
	"enhance_provider":           "enhance.provider",
	"enhance_url":                "enhance.url",
	"enhance_api_key":            "enhance.api_key",
	"gemini_api_key":             "enhance.api_key",
	"enhance_model":              "enhance.model",
	"enhance_timeout":            "enhance.timeout",
	"enhance_max_question_chars": "enhance.max_question_chars",
	"enhance_max_response_chars": "enhance.max_response_chars",
	"enhance_max_topics":         "enhance.max_topics",
	"enhance_max_contributors":   "enhance.max_contributors",

	"analysis_max_versions": "analysis.max_versions",
	"analysis_session_ttl":  "analysis.session_ttl",
	"analysis_broadcast":    "analysis.broadcast",

	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
