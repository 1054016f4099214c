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
	"github.com/tomtom215/topiclens/internal/topictree"
)

func TestProcessTree_Empty(t *testing.T) {
	t.Parallel()

	for name, tree := range map[string]*models.RawTree{
		"nil tree":      nil,
		"no messages":   {},
		"filtered away": {Messages: roundTripMessages()},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			req := models.QueryRequest{Type: models.QueryChannel}
			if name == "filtered away" {
				req.UserIDFilter = models.UserIDSet{99}
			}
			got := ProcessTree(tree, req, "1", topictree.NewNameResolver())

			assert.Equal(t, 0, got.MessageCount)
			assert.Equal(t, 0, got.TopicCount)
			assert.Equal(t, 0, got.ActiveUsers)
			assert.NotNil(t, got.Topics)
			assert.Nil(t, got.MostDiscussedTopic)
			assert.Equal(t, []string{InsightNoMessages}, got.Insights)
		})
	}
}

func TestProcessTree_UsesTreeNames(t *testing.T) {
	t.Parallel()

	tree := &models.RawTree{
		Messages: roundTripMessages(),
		Topics:   map[int64]models.TopicMeta{0: {Name: "Launch"}},
	}
	resolver := topictree.NewNameResolver()
	got := ProcessTree(tree, models.QueryRequest{Type: models.QueryChannel}, "3", resolver)

	assert.Equal(t, "3", got.Version)
	require.NotNil(t, got.MostDiscussedTopic)
	assert.Equal(t, "Launch", got.MostDiscussedTopic.Name)
	assert.Equal(t, "DeFi Protocols", got.Topics[1].Name)
	assert.Equal(t, `Most discussed topic: "Launch" with 2 messages from 2 contributors`, got.Insights[0])
	assert.Equal(t, 1, resolver.Len())
}

func TestProcessTree_FilterMonotonic(t *testing.T) {
	t.Parallel()

	tree := &models.RawTree{Messages: roundTripMessages()}
	req := models.QueryRequest{Type: models.QueryUsers}

	narrow, wide := req, req
	narrow.UserIDFilter = models.UserIDSet{1}
	wide.UserIDFilter = models.UserIDSet{1, 2}

	a := ProcessTree(tree, narrow, "1", topictree.NewNameResolver())
	b := ProcessTree(tree, wide, "1", topictree.NewNameResolver())
	assert.LessOrEqual(t, a.MessageCount, b.MessageCount)
	assert.Equal(t, 2, a.MessageCount)
	assert.Equal(t, 1, a.ActiveUsers)
}
