// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisagreement_DisjointTopics(t *testing.T) {
	t.Parallel()

	result := aggregate(
		msg("m1", 1, "alice", 1),
		msg("m2", 1, "alice", 2),
		msg("m3", 2, "bob", 3),
		msg("m4", 2, "bob", 4),
	)

	got := DefaultRouter().Route("How do @alice and bob differ in opinion?", &result)
	assert.Equal(t, []string{"@alice and @bob have not participated in the same topic discussions"}, got)
}

func TestDisagreement_TopicPreferencesQuestion(t *testing.T) {
	t.Parallel()

	result := aggregate(
		msg("m1", 1, "alice", 1),
		msg("m2", 2, "bob", 2),
	)

	rule := DefaultRouter().Select("How do @alice and @bob differ in topic preferences?")
	assert.Equal(t, "disagreement", rule.Name)

	got := DefaultRouter().Route("How do @alice and @bob differ in topic preferences?", &result)
	assert.Equal(t, []string{"@alice and @bob have not participated in the same topic discussions"}, got)
}

func TestDisagreement_SignificantGap(t *testing.T) {
	t.Parallel()

	result := aggregate(
		msg("m1", 1, "alice", 1),
		msg("m2", 1, "alice", 1),
		msg("m3", 1, "alice", 1),
		msg("m4", 1, "alice", 1),
		msg("m5", 2, "bob", 1),
		msg("m6", 2, "bob", 2),
		msg("m7", 2, "bob", 2),
	)

	got := disagreementAnswer("do Bob and ALICE disagree?", &result)
	require.Len(t, got, 3)
	assert.Equal(t, "@alice and @bob both discussed 1 common topics", got[0])
	assert.Equal(t, `Significant difference on "DeFi Protocols": @alice has 4 messages vs 1 for @bob`, got[1])
	assert.Equal(t, `@alice focuses most on "DeFi Protocols" while @bob focuses most on "Trading & Markets"`, got[2])
}

func TestDisagreement_NoSignificantGap(t *testing.T) {
	t.Parallel()

	result := aggregate(
		msg("m1", 1, "alice", 0),
		msg("m2", 2, "bob", 0),
		msg("m3", 2, "bob", 0),
	)

	got := disagreementAnswer("alice bob", &result)
	require.Len(t, got, 2, "same favourite topic is not reported")
	assert.Equal(t, "No significant difference in participation across common topics (largest gap: 1 messages)", got[1])
}

func TestDisagreement_NeedsTwoUsers(t *testing.T) {
	t.Parallel()

	result := aggregate(roundTripMessages()...)

	got := disagreementAnswer("does carol differ in opinion?", &result)
	assert.Equal(t, []string{"Mention at least two users to compare opinions, for example @alice and @bob"}, got)

	single := aggregate(msg("m1", 1, "alice", 0))
	got = disagreementAnswer("alice", &single)
	assert.Equal(t, []string{"Mention at least two users to compare opinions"}, got)
}

func TestMatchUsernames_FirstSeenOrder(t *testing.T) {
	t.Parallel()

	result := aggregate(roundTripMessages()...)
	matched := matchUsernames("compare @BOB with alice", result.Users)
	require.Len(t, matched, 2)
	assert.Equal(t, "@alice", matched[0].Username)
	assert.Equal(t, "@bob", matched[1].Username)
}
