// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package analysis

import (
	"fmt"
	"strings"

	"github.com/tomtom215/topiclens/internal/models"
)

// significantGap is the count difference above which two users are said
// to differ on a topic.
const significantGap = 2

// matchUsernames returns the users named in question, in first-seen order.
// A name matches with or without its leading "@", case-insensitively.
func matchUsernames(question string, users []models.UserStat) []models.UserStat {
	q := strings.ToLower(question)
	var matched []models.UserStat
	for _, u := range users {
		bare := strings.TrimPrefix(strings.ToLower(u.Username), "@")
		if bare == "" {
			continue
		}
		if strings.Contains(q, "@"+bare) || strings.Contains(q, bare) {
			matched = append(matched, u)
		}
	}
	return matched
}

func disagreementAnswer(question string, result *models.AggregatedResult) []string {
	matched := matchUsernames(question, result.Users)
	if len(matched) < 2 {
		if len(result.Users) >= 2 {
			return []string{fmt.Sprintf("Mention at least two users to compare opinions, for example %s and %s",
				result.Users[0].Username, result.Users[1].Username)}
		}
		return []string{"Mention at least two users to compare opinions"}
	}

	a, b := matched[0], matched[1]
	countsA := topicCountsFor(result, a.UserID)
	countsB := topicCountsFor(result, b.UserID)

	var common []models.Topic
	for _, t := range result.Topics {
		_, inA := countsA[t.ID]
		_, inB := countsB[t.ID]
		if inA && inB {
			common = append(common, t)
		}
	}

	if len(common) == 0 {
		return []string{fmt.Sprintf("%s and %s have not participated in the same topic discussions",
			a.Username, b.Username)}
	}

	out := []string{fmt.Sprintf("%s and %s both discussed %d common topics", a.Username, b.Username, len(common))}

	widest, gap := common[0], -1
	for _, t := range common {
		if d := absInt(countsA[t.ID] - countsB[t.ID]); d > gap {
			widest, gap = t, d
		}
	}
	if gap > significantGap {
		out = append(out, fmt.Sprintf("Significant difference on %q: %s has %d messages vs %d for %s",
			widest.Name, a.Username, countsA[widest.ID], countsB[widest.ID], b.Username))
	} else {
		out = append(out, fmt.Sprintf("No significant difference in participation across common topics (largest gap: %d messages)", gap))
	}

	topA := favouriteTopic(result, countsA)
	topB := favouriteTopic(result, countsB)
	if topA.ID != topB.ID {
		out = append(out, fmt.Sprintf("%s focuses most on %q while %s focuses most on %q",
			a.Username, topA.Name, b.Username, topB.Name))
	}
	return out
}

func topicCountsFor(result *models.AggregatedResult, userID int64) map[int64]int {
	counts := make(map[int64]int)
	for _, t := range result.Topics {
		for _, c := range t.Contributors {
			if c.UserID == userID {
				counts[t.ID] = c.MessageCount
				break
			}
		}
	}
	return counts
}

// favouriteTopic returns the topic with the highest count in counts, ties
// resolved by overall topic ranking. counts must not be empty.
func favouriteTopic(result *models.AggregatedResult, counts map[int64]int) models.Topic {
	var best models.Topic
	bestCount := -1
	for _, t := range result.Topics {
		if n, ok := counts[t.ID]; ok && n > bestCount {
			best, bestCount = t, n
		}
	}
	return best
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
