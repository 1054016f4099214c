// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package analysis

import (
	"github.com/tomtom215/topiclens/internal/models"
	"github.com/tomtom215/topiclens/internal/topictree"
)

func msg(id string, user int64, name string, topic int64) models.Message {
	return models.Message{ID: id, FromUserID: user, HasUser: true, FromUserName: name, TopicID: topic}
}

func timedMsg(id string, user int64, name string, topic, ts int64) models.Message {
	m := msg(id, user, name, topic)
	m.Timestamp = ts
	return m
}

func aggregate(messages ...models.Message) models.AggregatedResult {
	return Aggregate(messages, topictree.NewNameResolver())
}

// roundTripMessages is alice/0, bob/0, alice/1.
func roundTripMessages() []models.Message {
	return []models.Message{
		msg("m1", 1, "alice", 0),
		msg("m2", 2, "bob", 0),
		msg("m3", 1, "alice", 1),
	}
}
