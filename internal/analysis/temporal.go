// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/topiclens/internal/models"
)

// recentShare is the fraction of the newest messages treated as recent.
const recentShare = 0.25

const dateLayout = "2006-01-02"

func temporalAnswer(_ string, result *models.AggregatedResult) []string {
	if len(result.Timeline) == 0 {
		return []string{"No timestamped messages available for temporal analysis"}
	}

	timeline := append([]models.TimedMessage(nil), result.Timeline...)
	sort.SliceStable(timeline, func(i, j int) bool {
		return timeline[i].Timestamp < timeline[j].Timestamp
	})

	earliest := time.Unix(timeline[0].Timestamp, 0).UTC()
	latest := time.Unix(timeline[len(timeline)-1].Timestamp, 0).UTC()
	out := []string{fmt.Sprintf("Time range: %s to %s across %d timestamped messages",
		earliest.Format(dateLayout), latest.Format(dateLayout), len(timeline))}

	k := int(math.Ceil(float64(len(timeline)) * recentShare))
	recent := timeline[len(timeline)-k:]

	counts := make(map[int64]int)
	var order []int64
	for _, m := range recent {
		if m.TopicID == models.UnassignedTopicID {
			continue
		}
		if _, seen := counts[m.TopicID]; !seen {
			order = append(order, m.TopicID)
		}
		counts[m.TopicID]++
	}

	if len(order) == 0 {
		return append(out, fmt.Sprintf("Recent activity (latest %d messages) has no topic-assigned messages", k))
	}

	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	listed := order
	if len(listed) > listedTopics {
		listed = listed[:listedTopics]
	}
	parts := make([]string, 0, len(listed))
	for _, id := range listed {
		parts = append(parts, fmt.Sprintf("%q (%d)", topicName(result, id), counts[id]))
	}
	return append(out, fmt.Sprintf("Recent activity (latest %d messages) spans %d topics: %s",
		k, len(order), strings.Join(parts, ", ")))
}

func topicName(result *models.AggregatedResult, id int64) string {
	if t, ok := result.TopicByID(id); ok {
		return t.Name
	}
	return fmt.Sprintf("Topic %d", id)
}
