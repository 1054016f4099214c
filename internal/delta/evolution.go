// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package delta

import (
	"fmt"
	"sort"

	"github.com/tomtom215/topiclens/internal/models"
)

// MinEvolutionVersions is the smallest input Tabulate accepts.
const MinEvolutionVersions = 3

// Tabulate lays results side by side, ascending by version. Intermediate
// versions appear in the table only; the summary diffs the endpoints.
// It returns false with fewer than MinEvolutionVersions results.
func Tabulate(results []models.VersionedResult) (models.EvolutionTable, bool) {
	if len(results) < MinEvolutionVersions {
		return models.EvolutionTable{}, false
	}

	sorted := sortByVersion(results)
	table := models.EvolutionTable{
		Rows:   make([]models.EvolutionRow, 0, len(sorted)),
		Topics: []models.EvolutionTopic{},
	}

	index := make(map[int64]int)
	for col, r := range sorted {
		row := models.EvolutionRow{
			Version:      r.Version,
			MessageCount: r.MessageCount,
			TopicCount:   r.TopicCount,
			ActiveUsers:  r.ActiveUsers,
			TopicCounts:  make(map[int64]int, len(r.Topics)),
		}
		for _, t := range r.Topics {
			row.TopicCounts[t.ID] = t.MessageCount

			i, ok := index[t.ID]
			if !ok {
				i = len(table.Topics)
				index[t.ID] = i
				table.Topics = append(table.Topics, models.EvolutionTopic{
					TopicID: t.ID,
					Name:    t.Name,
					Counts:  make([]int, len(sorted)),
				})
			}
			table.Topics[i].Counts[col] = t.MessageCount
		}
		table.Rows = append(table.Rows, row)
	}

	first, last := &sorted[0], &sorted[len(sorted)-1]
	endpoints := Compare(first, last)
	table.Summary = models.EvolutionSummary{
		FirstVersion:  first.Version,
		LastVersion:   last.Version,
		MessageDelta:  endpoints.MessageDelta,
		TopicDelta:    endpoints.TopicDelta,
		UserDelta:     endpoints.UserDelta,
		NewTopics:     len(endpoints.NewTopics),
		RemovedTopics: len(endpoints.RemovedTopics),
		Lines: []string{
			fmt.Sprintf("Messages: %d → %d (%+d)", first.MessageCount, last.MessageCount, endpoints.MessageDelta),
			fmt.Sprintf("Topics: %d → %d (%+d)", first.TopicCount, last.TopicCount, endpoints.TopicDelta),
			fmt.Sprintf("Active users: %d → %d (%+d)", first.ActiveUsers, last.ActiveUsers, endpoints.UserDelta),
			fmt.Sprintf("Topics added: %d, removed: %d", len(endpoints.NewTopics), len(endpoints.RemovedTopics)),
		},
	}
	return table, true
}

func sortByVersion(results []models.VersionedResult) []models.VersionedResult {
	sorted := append([]models.VersionedResult(nil), results...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return models.CompareVersions(sorted[i].Version, sorted[j].Version) < 0
	})
	return sorted
}
