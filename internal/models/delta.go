// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package models

// DeltaKind classifies a topic between two versions.
type DeltaKind string

const (
	DeltaNew       DeltaKind = "new"
	DeltaRemoved   DeltaKind = "removed"
	DeltaChanged   DeltaKind = "changed"
	DeltaUnchanged DeltaKind = "unchanged"
)

// TopicSnapshot is a topic's count in one version.
type TopicSnapshot struct {
	TopicID      int64  `json:"topicId"`
	Name         string `json:"name"`
	MessageCount int    `json:"messageCount"`
}

// TopicChange is a topic present in both versions with different counts.
// ChangePercent is nil when the earlier count is 0.
type TopicChange struct {
	TopicID       int64  `json:"topicId"`
	Name          string `json:"name"`
	Earlier       int    `json:"earlier"`
	Later         int    `json:"later"`
	Change        int    `json:"change"`
	ChangePercent *int   `json:"changePercent"`
}

// DeltaResult compares an earlier and a later version.
type DeltaResult struct {
	EarlierVersion string              `json:"earlierVersion"`
	LaterVersion   string              `json:"laterVersion"`
	NewTopics      []TopicSnapshot     `json:"newTopics"`
	RemovedTopics  []TopicSnapshot     `json:"removedTopics"`
	ChangedTopics  []TopicChange       `json:"changedTopics"`
	UnchangedCount int                 `json:"unchangedCount"`
	Classification map[int64]DeltaKind `json:"classification"`
	MessageDelta   int                 `json:"messageDelta"`
	TopicDelta     int                 `json:"topicDelta"`
	UserDelta      int                 `json:"userDelta"`
}

// EvolutionRow is one version's totals in an evolution table.
type EvolutionRow struct {
	Version      string        `json:"version"`
	MessageCount int           `json:"messageCount"`
	TopicCount   int           `json:"topicCount"`
	ActiveUsers  int           `json:"activeUsers"`
	TopicCounts  map[int64]int `json:"topicCounts"`
}

// EvolutionTopic is a topic's count in every tabulated version, 0 where
// the topic is absent.
type EvolutionTopic struct {
	TopicID int64  `json:"topicId"`
	Name    string `json:"name"`
	Counts  []int  `json:"counts"`
}

// EvolutionSummary compares the first and last tabulated versions only.
type EvolutionSummary struct {
	FirstVersion  string   `json:"firstVersion"`
	LastVersion   string   `json:"lastVersion"`
	MessageDelta  int      `json:"messageDelta"`
	TopicDelta    int      `json:"topicDelta"`
	UserDelta     int      `json:"userDelta"`
	NewTopics     int      `json:"newTopics"`
	RemovedTopics int      `json:"removedTopics"`
	Lines         []string `json:"lines"`
}

// EvolutionTable tabulates three or more versions side by side, rows
// ascending by version.
type EvolutionTable struct {
	Rows    []EvolutionRow   `json:"rows"`
	Topics  []EvolutionTopic `json:"topics"`
	Summary EvolutionSummary `json:"summary"`
}
