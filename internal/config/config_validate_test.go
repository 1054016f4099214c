// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"bad environment", func(c *Config) { c.Server.Environment = "qa" }, "ENVIRONMENT"},
		{"wildcard cors in production", func(c *Config) { c.Server.Environment = "production" }, "CORS_ORIGINS"},
		{"missing query url", func(c *Config) { c.Query.URL = "" }, "QUERY_SERVICE_URL is required"},
		{"query url scheme", func(c *Config) { c.Query.URL = "ftp://x" }, "scheme must be http or https"},
		{"query url with query string", func(c *Config) { c.Query.URL = "http://x/?a=1" }, "query parameters"},
		{"burst with rate limit", func(c *Config) { c.Query.RateBurst = 0 }, "QUERY_SERVICE_RATE_BURST"},
		{"http enhance without url", func(c *Config) { c.Enhance.Enabled = true }, "ENHANCE_URL is required"},
		{"gemini without key", func(c *Config) {
			c.Enhance.Enabled = true
			c.Enhance.Provider = "gemini"
		}, "ENHANCE_API_KEY"},
		{"unknown provider", func(c *Config) {
			c.Enhance.Enabled = true
			c.Enhance.Provider = "local"
		}, "ENHANCE_PROVIDER"},
		{"too many versions", func(c *Config) { c.Analysis.MaxVersions = 4 }, "ANALYSIS_MAX_VERSIONS"},
		{"dataset without id", func(c *Config) { c.Datasets = []DatasetConfig{{Name: "x"}} }, "datasets[0].id"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
