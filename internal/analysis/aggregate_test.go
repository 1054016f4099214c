// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/topiclens/internal/models"
)

func TestAggregate_RoundTrip(t *testing.T) {
	t.Parallel()

	result := aggregate(roundTripMessages()...)

	assert.Equal(t, 3, result.MessageCount)
	assert.Equal(t, 2, result.TopicCount)
	assert.Equal(t, 2, result.ActiveUsers)

	require.Len(t, result.Topics, 2)
	first := result.Topics[0]
	assert.Equal(t, int64(0), first.ID)
	assert.Equal(t, "General Discussion", first.Name)
	assert.Equal(t, 2, first.MessageCount)
	require.Len(t, first.Contributors, 2)
	assert.Equal(t, "@alice", first.Contributors[0].Username)
	assert.Equal(t, "@bob", first.Contributors[1].Username)

	require.NotNil(t, result.MostDiscussedTopic)
	assert.Equal(t, int64(0), result.MostDiscussedTopic.ID)

	assert.Equal(t, 2, result.UserEngagement.AverageMessagesPerUser)
	assert.Equal(t, 2, result.UserEngagement.AverageTopicsPerUser)
}

func TestAggregate_UnassignedMessages(t *testing.T) {
	t.Parallel()

	result := aggregate(
		msg("m1", 1, "alice", models.UnassignedTopicID),
		msg("m2", 1, "alice", models.UnassignedTopicID),
		msg("m3", 2, "bob", 4),
	)

	assert.Equal(t, 3, result.MessageCount)
	assert.Equal(t, 1, result.TopicCount)
	assert.Equal(t, 2, result.ActiveUsers)
	assert.Equal(t, 1, result.Topics[0].MessageCount)

	require.Len(t, result.Users, 2)
	assert.Equal(t, 2, result.Users[0].MessageCount)
	assert.Equal(t, 0, result.Users[0].TopicCount)
}

func TestAggregate_Usernames(t *testing.T) {
	t.Parallel()

	result := aggregate(
		msg("m1", 7, "", 1),
		msg("m2", 8, "@carol", 1),
		msg("m3", 9, "dave", 1),
	)

	names := []string{}
	for _, c := range result.Topics[0].Contributors {
		names = append(names, c.Username)
	}
	assert.Equal(t, []string{"@User 7", "@carol", "@dave"}, names)
}

func TestAggregate_StableSort(t *testing.T) {
	t.Parallel()

	result := aggregate(
		msg("m1", 1, "a", 30),
		msg("m2", 1, "a", 10),
		msg("m3", 1, "a", 20),
		msg("m4", 2, "b", 20),
	)

	ids := []int64{}
	for _, topic := range result.Topics {
		ids = append(ids, topic.ID)
	}
	assert.Equal(t, []int64{20, 30, 10}, ids, "ties must keep first-seen order")
}

func TestAggregate_TopicsByPopularity(t *testing.T) {
	t.Parallel()

	var messages []models.Message
	for topic := int64(0); topic < 8; topic++ {
		for i := int64(0); i <= topic; i++ {
			messages = append(messages, msg("m", 1, "a", topic))
		}
	}
	result := aggregate(messages...)

	require.Len(t, result.TopicsByPopularity, TopPopularTopics)
	assert.Equal(t, int64(7), result.TopicsByPopularity[0].ID)
	assert.Equal(t, int64(3), result.TopicsByPopularity[4].ID)
}

func TestAggregate_CountConsistency(t *testing.T) {
	t.Parallel()

	result := aggregate(append(roundTripMessages(),
		msg("m4", 3, "carol", models.UnassignedTopicID),
		models.Message{ID: "m5", TopicID: 2},
	)...)

	sum := 0
	for _, topic := range result.Topics {
		sum += topic.MessageCount
		assert.Equal(t, len(topic.Contributors), topic.ContributorCount)
	}
	assert.LessOrEqual(t, sum, result.MessageCount)
	assert.Equal(t, 3, result.ActiveUsers)
}

func TestAggregate_Deterministic(t *testing.T) {
	t.Parallel()

	a := aggregate(roundTripMessages()...)
	b := aggregate(roundTripMessages()...)
	assert.Equal(t, a, b)
}

func TestAggregate_NoUsers(t *testing.T) {
	t.Parallel()

	result := aggregate(models.Message{ID: "m1", TopicID: 1})
	assert.Equal(t, 0, result.ActiveUsers)
	assert.Equal(t, 0, result.UserEngagement.AverageMessagesPerUser)
	assert.Equal(t, 0, result.UserEngagement.AverageTopicsPerUser)
	assert.Empty(t, result.Topics[0].Contributors)
}

func TestRoundedRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		num, den, want int
	}{
		{3, 2, 2},
		{5, 4, 1},
		{7, 0, 0},
		{0, 3, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, roundedRatio(tt.num, tt.den), "roundedRatio(%d, %d)", tt.num, tt.den)
	}
}
