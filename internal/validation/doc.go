// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

// Package validation validates API requests with go-playground/validator.
//
// A single validator instance is shared process-wide. It reports fields by
// their JSON names and adds two tags:
//
//   - version_label: a tree version identifier such as "3" or "v2.1"
//   - dataset_id: a registry id of letters, digits, '_' and '-'
//
// Failures convert to the API's VALIDATION_ERROR envelope via ToAPIError.
package validation
