// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package models

// Contributor is a user's participation in a single topic.
type Contributor struct {
	UserID       int64  `json:"userId"`
	Username     string `json:"username"` // always "@"-prefixed
	MessageCount int    `json:"messageCount"`
}

// Topic is an aggregated topic with its contributors sorted by message
// count, descending, ties in first-seen order.
type Topic struct {
	ID               int64         `json:"id"`
	Name             string        `json:"name"`
	MessageCount     int           `json:"messageCount"`
	ContributorCount int           `json:"contributorCount"`
	Contributors     []Contributor `json:"contributors"`
}

// UserStat summarizes one user across the whole tree.
// TopicCount excludes unassigned messages.
type UserStat struct {
	UserID       int64  `json:"userId"`
	Username     string `json:"username"`
	MessageCount int    `json:"messageCount"`
	TopicCount   int    `json:"topicCount"`
}

// UserEngagement holds rounded per-user averages. Both are 0 with no users.
type UserEngagement struct {
	AverageMessagesPerUser int `json:"averageMessagesPerUser"`
	AverageTopicsPerUser   int `json:"averageTopicsPerUser"`
}

// AggregatedResult is the descriptive summary of one tree.
type AggregatedResult struct {
	MessageCount       int            `json:"messageCount"`
	TopicCount         int            `json:"topicCount"`
	ActiveUsers        int            `json:"activeUsers"`
	Topics             []Topic        `json:"topics"`
	TopicsByPopularity []Topic        `json:"topicsByPopularity"`
	MostDiscussedTopic *Topic         `json:"mostDiscussedTopic"`
	UserEngagement     UserEngagement `json:"userEngagement"`

	// Users lists every active user in first-seen order.
	Users []UserStat `json:"users"`

	// Timeline holds the timestamped messages in source order, kept for
	// temporal insight generation and never serialized.
	Timeline []TimedMessage `json:"-"`
}

// TimedMessage is the subset of a message needed for temporal analysis.
type TimedMessage struct {
	TopicID   int64
	Timestamp int64
}

// TopicByID returns the topic with the given id.
func (r *AggregatedResult) TopicByID(id int64) (Topic, bool) {
	for _, t := range r.Topics {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}

// IsEmpty reports whether the result was built from no messages.
func (r *AggregatedResult) IsEmpty() bool {
	return r.MessageCount == 0
}
