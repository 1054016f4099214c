// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package models

import "time"

// VersionedResult is the analysis of a single tree version.
type VersionedResult struct {
	Version string `json:"version"`
	AggregatedResult
	Insights  []string `json:"insights"`
	AISummary string   `json:"aiSummary,omitempty"`
}

// Enhanced reports whether an AI summary was merged into the insights.
func (v *VersionedResult) Enhanced() bool {
	return v.AISummary != ""
}

// VersionError describes a version whose fetch or analysis failed.
type VersionError struct {
	Version  string                 `json:"version"`
	Endpoint string                 `json:"endpoint,omitempty"`
	Params   map[string]interface{} `json:"params,omitempty"`
	Status   int                    `json:"status,omitempty"`
	Message  string                 `json:"message"`
}

// AnalysisReport joins every version slot of one query execution.
type AnalysisReport struct {
	SessionID  string            `json:"sessionId"`
	Generation uint64            `json:"generation"`
	Request    QueryRequest      `json:"request"`
	Versions   []string          `json:"versions"` // ascending
	Results    []VersionedResult `json:"results"`  // ascending by version
	Errors     []VersionError    `json:"errors,omitempty"`
	Delta      *DeltaResult      `json:"delta,omitempty"`
	DeltaLines []string          `json:"deltaSummary,omitempty"`
	Evolution  *EvolutionTable   `json:"evolution,omitempty"`
	Duration   time.Duration     `json:"-"`
	DurationMS int64             `json:"durationMs"`
	Timestamp  time.Time         `json:"timestamp"`
}

// Result returns the result for a version.
func (r *AnalysisReport) Result(version string) (*VersionedResult, bool) {
	for i := range r.Results {
		if r.Results[i].Version == version {
			return &r.Results[i], true
		}
	}
	return nil, false
}

// Failed reports whether every requested version failed.
func (r *AnalysisReport) Failed() bool {
	return len(r.Results) == 0 && len(r.Errors) > 0
}
