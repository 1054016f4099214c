// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package analysis

import (
	"fmt"

	"github.com/tomtom215/topiclens/internal/models"
)

// Fixed insight strings.
const (
	InsightNoMessages = "No messages found in the tree data"
	InsightNoTopics   = "No topics identified in the analyzed messages"
	InsightNoQuestion = "No question provided for custom analysis"
)

// GenerateInsights renders the base insights for result followed by one
// query-type insight. A result without topics yields InsightNoTopics only.
func GenerateInsights(result *models.AggregatedResult, req models.QueryRequest, version string) []string {
	if result.TopicCount == 0 || result.MostDiscussedTopic == nil {
		return []string{InsightNoTopics}
	}

	top := result.MostDiscussedTopic
	insights := []string{
		fmt.Sprintf("Most discussed topic: %q with %d messages from %d contributors",
			top.Name, top.MessageCount, top.ContributorCount),
		fmt.Sprintf("Topic diversity: %d distinct topics identified", result.TopicCount),
	}

	if result.ActiveUsers > 0 {
		insights = append(insights, fmt.Sprintf("User participation: %d active users averaging %d messages each",
			result.ActiveUsers, result.UserEngagement.AverageMessagesPerUser))
	}

	topicMessages := 0
	for _, t := range result.Topics {
		topicMessages += t.MessageCount
	}
	insights = append(insights, fmt.Sprintf("Average messages per topic: %d",
		roundedRatio(topicMessages, result.TopicCount)))

	if c, ok := mostActiveContributor(result); ok {
		insights = append(insights, fmt.Sprintf("Most active contributor: %s with %d messages across %d topics",
			c.Username, c.messages, c.topics))
	}

	return append(insights, queryTypeInsights(result, req, version)...)
}

type contributorTotal struct {
	Username string
	messages int
	topics   int
}

// mostActiveContributor sums each user's messages over every topic they
// contributed to. Ties resolve to the user seen first.
func mostActiveContributor(result *models.AggregatedResult) (contributorTotal, bool) {
	totals := make(map[int64]*contributorTotal)
	for _, t := range result.Topics {
		for _, c := range t.Contributors {
			ct := totals[c.UserID]
			if ct == nil {
				ct = &contributorTotal{Username: c.Username}
				totals[c.UserID] = ct
			}
			ct.messages += c.MessageCount
			ct.topics++
		}
	}

	var best *contributorTotal
	for _, u := range result.Users {
		ct := totals[u.UserID]
		if ct == nil {
			continue
		}
		if best == nil || ct.messages > best.messages {
			best = ct
		}
	}
	if best == nil {
		return contributorTotal{}, false
	}
	return *best, true
}

func queryTypeInsights(result *models.AggregatedResult, req models.QueryRequest, version string) []string {
	switch req.Type {
	case models.QueryChannel:
		return []string{fmt.Sprintf("Channel analysis: overview of %d messages across %d topics",
			result.MessageCount, result.TopicCount)}
	case models.QueryUser:
		return []string{fmt.Sprintf("User analysis: activity of %d selected users across %d topics",
			selectedUsers(result, req), result.TopicCount)}
	case models.QueryUsers:
		return []string{fmt.Sprintf("Multi-user analysis: comparing %d users across %d topics",
			selectedUsers(result, req), result.TopicCount)}
	case models.QueryTimeWindow:
		return []string{fmt.Sprintf("Time window analysis: %d messages across %d topics in the selected window",
			result.MessageCount, result.TopicCount)}
	case models.QueryVersionEvolution:
		return []string{fmt.Sprintf("Version evolution analysis: version %s contains %d topics",
			version, result.TopicCount)}
	case models.QueryCustom:
		question := req.Question()
		if question == "" {
			return []string{InsightNoQuestion}
		}
		return DefaultRouter().Route(question, result)
	default:
		return nil
	}
}

func selectedUsers(result *models.AggregatedResult, req models.QueryRequest) int {
	if len(req.UserIDFilter) > 0 {
		return len(req.UserIDFilter)
	}
	return result.ActiveUsers
}
