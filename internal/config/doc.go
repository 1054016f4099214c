// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

// Package config loads Topiclens configuration with Koanf v2.
//
// Sources are layered in increasing precedence:
//
//  1. Built-in defaults (defaultConfig)
//  2. An optional YAML file: $CONFIG_PATH, ./config.yaml, /etc/topiclens/config.yaml
//  3. Environment variables, mapped explicitly through envMappings
//
// Example config.yaml:
//
//	server:
//	  port: 8080
//	query:
//	  url: https://query.internal:3000
//	enhance:
//	  enabled: true
//	  provider: gemini
//	  model: gemini-2.5-flash
//	datasets:
//	  - id: arbitrum
//	    name: Arbitrum
//	    description: Arbitrum community channel
//
// Validate runs after unmarshaling and rejects out-of-range values.
package config
