// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package models

import (
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// UnassignedTopicID marks a message that belongs to no topic.
const UnassignedTopicID int64 = -1

// Message is a single chat message as seen by the aggregation engine.
// HasUser is false when the payload carried no usable fromUserId.
type Message struct {
	ID           string `json:"id"`
	FromUserID   int64  `json:"fromUserId"`
	HasUser      bool   `json:"-"`
	FromUserName string `json:"fromUserName,omitempty"`
	TopicID      int64  `json:"topicId"`
	Timestamp    int64  `json:"timestamp,omitempty"` // unix seconds, 0 when absent
}

// HasTimestamp reports whether the message carries a timestamp.
func (m Message) HasTimestamp() bool {
	return m.Timestamp > 0
}

// TopicMeta is the topic metadata entry of a tree.
type TopicMeta struct {
	Name  string `json:"name,omitempty"`
	Title string `json:"title,omitempty"`
}

// RawTree is a channel's message/topic graph. Messages are kept in the
// insertion order of the source JSON object.
type RawTree struct {
	Messages []Message
	Topics   map[int64]TopicMeta
}

// MessageCount returns the number of decoded messages, 0 for a nil tree.
func (t *RawTree) MessageCount() int {
	if t == nil {
		return 0
	}
	return len(t.Messages)
}

type wireTree struct {
	Messages json.RawMessage `json:"messages"`
	Topics   json.RawMessage `json:"topics"`
}

type wireMessage struct {
	ID           json.RawMessage `json:"id"`
	FromUserID   json.RawMessage `json:"fromUserId"`
	FromUserName json.RawMessage `json:"fromUserName"`
	TopicID      json.RawMessage `json:"topicId"`
	Timestamp    json.RawMessage `json:"timestamp"`
}

type wireTopic struct {
	Name  json.RawMessage `json:"name"`
	Title json.RawMessage `json:"title"`
}

// UnmarshalJSON decodes a tree leniently. A missing or malformed messages
// map yields an empty tree, individual malformed messages are skipped and
// topic entries without a numeric id are ignored. Only a document that is
// not valid JSON returns an error.
func (t *RawTree) UnmarshalJSON(data []byte) error {
	*t = RawTree{}

	var wire wireTree
	if err := json.Unmarshal(data, &wire); err != nil {
		if !json.Valid(data) {
			return err
		}
		return nil
	}

	t.Messages = decodeMessages(wire.Messages)
	t.Topics = decodeTopics(wire.Topics)
	return nil
}

func decodeMessages(raw json.RawMessage) []Message {
	if isNull(raw) {
		return nil
	}

	om := orderedmap.New[string, json.RawMessage]()
	if err := om.UnmarshalJSON(raw); err != nil {
		return nil
	}

	messages := make([]Message, 0, om.Len())
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		var wm wireMessage
		if err := json.Unmarshal(pair.Value, &wm); err != nil {
			continue
		}

		msg := Message{
			ID:      pair.Key,
			TopicID: UnassignedTopicID,
		}
		if id, ok := coerceString(wm.ID); ok && id != "" {
			msg.ID = id
		}
		if uid, ok := coerceInt64(wm.FromUserID); ok {
			msg.FromUserID = uid
			msg.HasUser = true
		}
		if name, ok := coerceString(wm.FromUserName); ok {
			msg.FromUserName = name
		}
		if tid, ok := coerceInt64(wm.TopicID); ok {
			msg.TopicID = tid
		}
		if ts, ok := coerceInt64(wm.Timestamp); ok && ts > 0 {
			msg.Timestamp = ts
		}
		messages = append(messages, msg)
	}
	return messages
}

func decodeTopics(raw json.RawMessage) map[int64]TopicMeta {
	if isNull(raw) {
		return nil
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}

	topics := make(map[int64]TopicMeta, len(entries))
	for key, value := range entries {
		id, ok := parseDecimalID(strings.TrimSpace(key))
		if !ok {
			continue
		}
		var wt wireTopic
		if err := json.Unmarshal(value, &wt); err != nil {
			continue
		}
		var meta TopicMeta
		meta.Name, _ = coerceString(wt.Name)
		meta.Title, _ = coerceString(wt.Title)
		topics[id] = meta
	}
	return topics
}

func isNull(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}

// coerceInt64 accepts a JSON number or a numeric string.
func coerceInt64(raw json.RawMessage) (int64, bool) {
	if isNull(raw) {
		return 0, false
	}

	s := strings.TrimSpace(string(raw))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0, false
		}
		s = strings.TrimSpace(str)
		if s == "" {
			return 0, false
		}
	}

	return parseDecimalID(s)
}

// parseDecimalID reads s as a base-10 integer ("010" is 10, not octal 8).
// Integral decimals such as "1.0" are accepted and truncated. Hex and
// other prefixed forms are rejected.
func parseDecimalID(s string) (int64, bool) {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, true
	}
	if strings.ContainsAny(s, "xXoObB") {
		return 0, false
	}
	if f, err := cast.ToFloat64E(s); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int64(f), true
	}
	return 0, false
}

// coerceString accepts a JSON string or number.
func coerceString(raw json.RawMessage) (string, bool) {
	if isNull(raw) {
		return "", false
	}

	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	if _, isObject := v.(map[string]interface{}); isObject {
		return "", false
	}
	if _, isArray := v.([]interface{}); isArray {
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return s, true
}
