// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package models

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestRawTree_UnmarshalJSON_PreservesOrder(t *testing.T) {
	t.Parallel()

	data := []byte(`{
		"messages": {
			"m3": {"fromUserId": 1, "fromUserName": "alice", "topicId": 1},
			"m1": {"fromUserId": "2", "fromUserName": "bob", "topicId": "0", "timestamp": 1700000000},
			"m2": {"fromUserId": 1, "topicId": 0}
		},
		"topics": {"0": {"name": "Launch"}, "1": {"title": "Fees"}, "x": {"name": "ignored"}}
	}`)

	var tree RawTree
	if err := json.Unmarshal(data, &tree); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if len(tree.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(tree.Messages))
	}
	wantOrder := []string{"m3", "m1", "m2"}
	for i, id := range wantOrder {
		if tree.Messages[i].ID != id {
			t.Errorf("message[%d].ID = %q, want %q", i, tree.Messages[i].ID, id)
		}
	}

	bob := tree.Messages[1]
	if !bob.HasUser || bob.FromUserID != 2 || bob.TopicID != 0 || bob.Timestamp != 1700000000 {
		t.Errorf("string ids not coerced: %+v", bob)
	}
	if tree.Messages[2].FromUserName != "" {
		t.Errorf("expected empty username, got %q", tree.Messages[2].FromUserName)
	}

	if len(tree.Topics) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(tree.Topics))
	}
	if tree.Topics[1].Title != "Fees" {
		t.Errorf("topic 1 title = %q", tree.Topics[1].Title)
	}
}

func TestRawTree_UnmarshalJSON_DecimalIDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		raw       string
		wantUser  int64
		wantTopic int64
		wantHas   bool
	}{
		{"leading zero is decimal", `"010"`, 10, 10, true},
		{"leading zero non-octal digit", `"09"`, 9, 9, true},
		{"hex rejected", `"0x1F"`, 0, UnassignedTopicID, false},
		{"integral decimal string", `"1.0"`, 1, 1, true},
		{"plain number", `12`, 12, 12, true},
		{"nan rejected", `"NaN"`, 0, UnassignedTopicID, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			data := []byte(`{"messages": {"m1": {"fromUserId": ` + tt.raw + `, "topicId": ` + tt.raw + `}}}`)
			var tree RawTree
			if err := json.Unmarshal(data, &tree); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if len(tree.Messages) != 1 {
				t.Fatalf("expected 1 message, got %d", len(tree.Messages))
			}
			msg := tree.Messages[0]
			if msg.HasUser != tt.wantHas || msg.FromUserID != tt.wantUser {
				t.Errorf("user = (%d, %v), want (%d, %v)", msg.FromUserID, msg.HasUser, tt.wantUser, tt.wantHas)
			}
			if msg.TopicID != tt.wantTopic {
				t.Errorf("TopicID = %d, want %d", msg.TopicID, tt.wantTopic)
			}
		})
	}
}

func TestRawTree_TopicKeysAreDecimal(t *testing.T) {
	t.Parallel()

	var tree RawTree
	if err := json.Unmarshal([]byte(`{"topics": {"010": {"name": "Ten"}, "0x1F": {"name": "Hex"}}}`), &tree); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(tree.Topics) != 1 || tree.Topics[10].Name != "Ten" {
		t.Errorf("topics = %+v, want only 10 -> Ten", tree.Topics)
	}
}

func TestRawTree_UnmarshalJSON_Lenient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantMessages int
	}{
		{"missing messages", `{"topics": {}}`, 0},
		{"null messages", `{"messages": null}`, 0},
		{"messages is array", `{"messages": [1, 2, 3]}`, 0},
		{"tree is array", `[]`, 0},
		{"malformed message skipped", `{"messages": {"a": "oops", "b": {"fromUserId": 5}}}`, 1},
		{"empty object", `{}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var tree RawTree
			if err := json.Unmarshal([]byte(tt.input), &tree); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got := tree.MessageCount(); got != tt.wantMessages {
				t.Errorf("MessageCount() = %d, want %d", got, tt.wantMessages)
			}
		})
	}
}

func TestMessage_Defaults(t *testing.T) {
	t.Parallel()

	var tree RawTree
	if err := json.Unmarshal([]byte(`{"messages": {"m": {"fromUserName": "ghost"}}}`), &tree); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	msg := tree.Messages[0]
	if msg.HasUser {
		t.Error("expected HasUser=false without fromUserId")
	}
	if msg.TopicID != UnassignedTopicID {
		t.Errorf("TopicID = %d, want %d", msg.TopicID, UnassignedTopicID)
	}
	if msg.HasTimestamp() {
		t.Error("expected no timestamp")
	}
}

func TestRawTree_NilMessageCount(t *testing.T) {
	t.Parallel()

	var tree *RawTree
	if tree.MessageCount() != 0 {
		t.Error("nil tree should report 0 messages")
	}
}
