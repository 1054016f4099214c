// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package topictree

import "github.com/tomtom215/topiclens/internal/models"

// Normalize returns the tree's messages in source order. A non-empty filter
// keeps only messages whose sender is in the set; messages without a
// sender id never match a non-empty filter. The tree is not modified.
func Normalize(tree *models.RawTree, filter models.UserIDSet) []models.Message {
	if tree == nil || len(tree.Messages) == 0 {
		return []models.Message{}
	}

	if len(filter) == 0 {
		out := make([]models.Message, len(tree.Messages))
		copy(out, tree.Messages)
		return out
	}

	allowed := filter.Lookup()
	out := make([]models.Message, 0, len(tree.Messages))
	for _, msg := range tree.Messages {
		if !msg.HasUser {
			continue
		}
		if _, ok := allowed[msg.FromUserID]; ok {
			out = append(out, msg)
		}
	}
	return out
}
