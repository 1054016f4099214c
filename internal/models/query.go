// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package models

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"
)

// QueryType selects the analysis mode.
type QueryType string

const (
	QueryChannel          QueryType = "channel_query"
	QueryUser             QueryType = "user_analysis"
	QueryUsers            QueryType = "users_analysis"
	QueryTimeWindow       QueryType = "time_window"
	QueryVersionEvolution QueryType = "version_evolution"
	QueryCustom           QueryType = "custom_query"
)

// MaxVersions is the largest number of versions a single query may request.
const MaxVersions = 3

// QueryRequest is a user analysis request.
type QueryRequest struct {
	Type           QueryType `json:"type" validate:"required,oneof=channel_query user_analysis users_analysis time_window version_evolution custom_query"`
	DatasetID      string    `json:"datasetId" validate:"required,max=128,dataset_id"`
	UserIDFilter   UserIDSet `json:"userIdFilter,omitempty" validate:"max=100"`
	Versions       []string  `json:"versions" validate:"required,min=1,max=3,unique,dive,required,max=64,version_label"`
	CustomQuestion string    `json:"customQuestion,omitempty" validate:"max=2000"`
}

// Question returns the trimmed custom question.
func (q QueryRequest) Question() string {
	return strings.TrimSpace(q.CustomQuestion)
}

// UserIDSet is a set of user ids. The JSON form accepts numbers, numeric
// strings and a single comma-separated string.
type UserIDSet []int64

// Contains reports whether id is in the set.
func (s UserIDSet) Contains(id int64) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Lookup returns the set as a map for O(1) membership tests.
func (s UserIDSet) Lookup() map[int64]struct{} {
	m := make(map[int64]struct{}, len(s))
	for _, v := range s {
		m[v] = struct{}{}
	}
	return m
}

// UnmarshalJSON coerces each entry to int64 and drops duplicates.
func (s *UserIDSet) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var items []interface{}
	switch v := raw.(type) {
	case nil:
		*s = nil
		return nil
	case []interface{}:
		items = v
	case string:
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
	default:
		items = []interface{}{v}
	}

	out := make(UserIDSet, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		var id int64
		if str, ok := item.(string); ok {
			parsed, valid := parseDecimalID(strings.TrimSpace(str))
			if !valid {
				return fmt.Errorf("invalid user id %q", str)
			}
			id = parsed
		} else {
			parsed, err := cast.ToInt64E(item)
			if err != nil {
				return fmt.Errorf("invalid user id %v: %w", item, err)
			}
			id = parsed
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	*s = out
	return nil
}
