// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package delta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/topiclens/internal/models"
)

func TestTabulate(t *testing.T) {
	t.Parallel()

	table, ok := Tabulate([]models.VersionedResult{
		result("3", 4, [2]int{0, 5}, [2]int{9, 2}),
		result("1", 2, [2]int{0, 3}, [2]int{1, 1}),
		result("2", 3, [2]int{0, 4}, [2]int{1, 8}),
	})
	require.True(t, ok)

	require.Len(t, table.Rows, 3)
	assert.Equal(t, "1", table.Rows[0].Version)
	assert.Equal(t, "2", table.Rows[1].Version)
	assert.Equal(t, "3", table.Rows[2].Version)

	require.Len(t, table.Topics, 3)
	assert.Equal(t, []int{3, 4, 5}, table.Topics[0].Counts)
	assert.Equal(t, []int{1, 8, 0}, table.Topics[1].Counts)
	assert.Equal(t, []int{0, 0, 2}, table.Topics[2].Counts)

	s := table.Summary
	assert.Equal(t, "1", s.FirstVersion)
	assert.Equal(t, "3", s.LastVersion)
	assert.Equal(t, 3, s.MessageDelta)
	assert.Equal(t, 0, s.TopicDelta)
	assert.Equal(t, 2, s.UserDelta)
	assert.Equal(t, 1, s.NewTopics)
	assert.Equal(t, 1, s.RemovedTopics)
	assert.Equal(t, "Messages: 4 → 7 (+3)", s.Lines[0])
	assert.Equal(t, "Topics added: 1, removed: 1", s.Lines[3])
}

func TestTabulate_TooFewVersions(t *testing.T) {
	t.Parallel()

	_, ok := Tabulate([]models.VersionedResult{result("1", 0), result("2", 0)})
	assert.False(t, ok)
}
