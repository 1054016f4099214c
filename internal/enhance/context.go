// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package enhance

import (
	"sort"
	"unicode/utf8"

	"github.com/tomtom215/topiclens/internal/models"
)

// Request is what a Summarizer receives.
type Request struct {
	Question string  `json:"question"`
	Context  Context `json:"context"`
}

// Context is the aggregate-only view of a version result.
type Context struct {
	Version      string                `json:"version"`
	MessageCount int                   `json:"messageCount"`
	TopicCount   int                   `json:"topicCount"`
	ActiveUsers  int                   `json:"activeUsers"`
	Topics       []TopicSummary        `json:"topics"`
	Contributors []ContributorSummary  `json:"contributors"`
	Engagement   models.UserEngagement `json:"engagement"`
	Insights     []string              `json:"insights"`
}

// TopicSummary is a topic without its contributor list.
type TopicSummary struct {
	Name             string `json:"name"`
	MessageCount     int    `json:"messageCount"`
	ContributorCount int    `json:"contributorCount"`
}

// ContributorSummary is a user identified by username only.
type ContributorSummary struct {
	Username     string `json:"username"`
	MessageCount int    `json:"messageCount"`
	TopicCount   int    `json:"topicCount"`
}

// BuildContext keeps the maxTopics most popular topics and the
// maxContributors most active users. Non-positive limits keep everything.
func BuildContext(result *models.VersionedResult, maxTopics, maxContributors int) Context {
	ctx := Context{
		Version:      result.Version,
		MessageCount: result.MessageCount,
		TopicCount:   result.TopicCount,
		ActiveUsers:  result.ActiveUsers,
		Engagement:   result.UserEngagement,
		Insights:     append([]string{}, result.Insights...),
		Topics:       []TopicSummary{},
		Contributors: []ContributorSummary{},
	}

	topics := result.TopicsByPopularity
	if maxTopics > 0 && len(topics) > maxTopics {
		topics = topics[:maxTopics]
	}
	for _, t := range topics {
		ctx.Topics = append(ctx.Topics, TopicSummary{
			Name:             t.Name,
			MessageCount:     t.MessageCount,
			ContributorCount: t.ContributorCount,
		})
	}

	users := append([]models.UserStat{}, result.Users...)
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].MessageCount > users[j].MessageCount
	})
	if maxContributors > 0 && len(users) > maxContributors {
		users = users[:maxContributors]
	}
	for _, u := range users {
		ctx.Contributors = append(ctx.Contributors, ContributorSummary{
			Username:     u.Username,
			MessageCount: u.MessageCount,
			TopicCount:   u.TopicCount,
		})
	}

	return ctx
}

// truncate cuts s to at most n runes. n <= 0 leaves s unchanged.
func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
