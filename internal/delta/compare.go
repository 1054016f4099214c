// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package delta

import (
	"fmt"
	"math"

	"github.com/tomtom215/topiclens/internal/models"
)

// Compare diffs earlier against later. Each topic id present in either
// version receives exactly one classification.
func Compare(earlier, later *models.VersionedResult) models.DeltaResult {
	d := models.DeltaResult{
		EarlierVersion: earlier.Version,
		LaterVersion:   later.Version,
		NewTopics:      []models.TopicSnapshot{},
		RemovedTopics:  []models.TopicSnapshot{},
		ChangedTopics:  []models.TopicChange{},
		Classification: make(map[int64]models.DeltaKind, len(earlier.Topics)+len(later.Topics)),
		MessageDelta:   later.MessageCount - earlier.MessageCount,
		TopicDelta:     later.TopicCount - earlier.TopicCount,
		UserDelta:      later.ActiveUsers - earlier.ActiveUsers,
	}

	laterByID := make(map[int64]models.Topic, len(later.Topics))
	for _, t := range later.Topics {
		laterByID[t.ID] = t
	}

	earlierIDs := make(map[int64]struct{}, len(earlier.Topics))
	for _, e := range earlier.Topics {
		earlierIDs[e.ID] = struct{}{}
		l, ok := laterByID[e.ID]
		switch {
		case !ok:
			d.RemovedTopics = append(d.RemovedTopics, snapshot(e))
			d.Classification[e.ID] = models.DeltaRemoved
		case l.MessageCount != e.MessageCount:
			change := l.MessageCount - e.MessageCount
			d.ChangedTopics = append(d.ChangedTopics, models.TopicChange{
				TopicID:       e.ID,
				Name:          l.Name,
				Earlier:       e.MessageCount,
				Later:         l.MessageCount,
				Change:        change,
				ChangePercent: changePercent(change, e.MessageCount),
			})
			d.Classification[e.ID] = models.DeltaChanged
		default:
			d.UnchangedCount++
			d.Classification[e.ID] = models.DeltaUnchanged
		}
	}

	for _, l := range later.Topics {
		if _, ok := earlierIDs[l.ID]; ok {
			continue
		}
		d.NewTopics = append(d.NewTopics, snapshot(l))
		d.Classification[l.ID] = models.DeltaNew
	}

	return d
}

// CompareEndpoints diffs the lowest and highest version of results.
// It returns false with fewer than two results.
func CompareEndpoints(results []models.VersionedResult) (models.DeltaResult, bool) {
	if len(results) < 2 {
		return models.DeltaResult{}, false
	}
	sorted := sortByVersion(results)
	return Compare(&sorted[0], &sorted[len(sorted)-1]), true
}

// Describe renders a delta as insight strings.
func Describe(d models.DeltaResult) []string {
	out := []string{fmt.Sprintf("Version %s to %s: %d new topics, %d removed, %d changed, %d unchanged",
		d.EarlierVersion, d.LaterVersion, len(d.NewTopics), len(d.RemovedTopics), len(d.ChangedTopics), d.UnchangedCount)}

	var biggest *models.TopicChange
	for i := range d.ChangedTopics {
		c := &d.ChangedTopics[i]
		if biggest == nil || absInt(c.Change) > absInt(biggest.Change) {
			biggest = c
		}
	}
	if biggest != nil {
		line := fmt.Sprintf("Largest change: %q went from %d to %d messages (%+d",
			biggest.Name, biggest.Earlier, biggest.Later, biggest.Change)
		if biggest.ChangePercent != nil {
			line += fmt.Sprintf(", %+d%%", *biggest.ChangePercent)
		}
		out = append(out, line+")")
	}
	return out
}

func snapshot(t models.Topic) models.TopicSnapshot {
	return models.TopicSnapshot{TopicID: t.ID, Name: t.Name, MessageCount: t.MessageCount}
}

// changePercent is undefined when the earlier count is 0.
func changePercent(change, earlier int) *int {
	if earlier == 0 {
		return nil
	}
	p := int(math.Round(float64(change) / float64(earlier) * 100))
	return &p
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
