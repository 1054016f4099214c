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

const listedTopics = 3

func generalAnswer(question string, result *models.AggregatedResult) []string {
	top := result.MostDiscussedTopic
	if top == nil {
		return []string{fmt.Sprintf("Question: %q", question), InsightNoTopics}
	}
	return []string{
		fmt.Sprintf("Question: %q", question),
		fmt.Sprintf("Most relevant topic: %q with %d messages from %d contributors",
			top.Name, top.MessageCount, top.ContributorCount),
	}
}

func trendingAnswer(_ string, result *models.AggregatedResult) []string {
	top := result.TopicsByPopularity
	if len(top) == 0 {
		return []string{InsightNoTopics}
	}
	if len(top) > listedTopics {
		top = top[:listedTopics]
	}
	out := []string{"Trending topics: " + formatTopicList(top)}

	total := 0
	for _, t := range result.Topics {
		total += t.MessageCount
	}
	if total > 0 {
		out = append(out, fmt.Sprintf("%q accounts for %d%% of topic messages",
			top[0].Name, roundedRatio(top[0].MessageCount*100, total)))
	}
	return out
}

func engagementAnswer(_ string, result *models.AggregatedResult) []string {
	if result.ActiveUsers == 0 || len(result.Users) == 0 {
		return []string{"Engagement analysis: no identified users in the analyzed messages"}
	}

	avg := result.UserEngagement.AverageMessagesPerUser
	level := "light"
	switch {
	case avg >= 10:
		level = "high"
	case avg >= 3:
		level = "moderate"
	}

	most := result.Users[0]
	for _, u := range result.Users[1:] {
		if u.MessageCount > most.MessageCount {
			most = u
		}
	}

	return []string{
		fmt.Sprintf("Engagement analysis: %d active users averaging %d messages across %d topics each",
			result.ActiveUsers, avg, result.UserEngagement.AverageTopicsPerUser),
		fmt.Sprintf("Engagement level: %s (estimated from average messages per user)", level),
		fmt.Sprintf("Most engaged user: %s with %d messages in %d topics",
			most.Username, most.MessageCount, most.TopicCount),
	}
}

// sentimentAnswer is a topic-diversity heuristic. It does not read
// message content.
func sentimentAnswer(_ string, result *models.AggregatedResult) []string {
	label := "concentrated"
	switch {
	case result.TopicCount >= 5:
		label = "diverse"
	case result.TopicCount >= 2:
		label = "focused"
	}
	return []string{
		fmt.Sprintf("Sentiment proxy: conversation is %s across %d topics", label, result.TopicCount),
		"Note: sentiment is estimated from topic diversity, not from message content",
	}
}

func concernsAnswer(_ string, result *models.AggregatedResult) []string {
	return keywordTopicsAnswer(result, "Concern-related", "governance, technical, security or audit",
		"Governance", "Technical", "Security", "Audit")
}

func defiAnswer(_ string, result *models.AggregatedResult) []string {
	return keywordTopicsAnswer(result, "DeFi-related", "DeFi, protocol or token",
		"DeFi", "Protocol", "Token")
}

func keywordTopicsAnswer(result *models.AggregatedResult, label, description string, keywords ...string) []string {
	var matched []models.Topic
	sum := 0
	for _, t := range result.Topics {
		name := strings.ToLower(t.Name)
		for _, kw := range keywords {
			if strings.Contains(name, strings.ToLower(kw)) {
				matched = append(matched, t)
				sum += t.MessageCount
				break
			}
		}
	}

	if len(matched) == 0 {
		return []string{fmt.Sprintf("No %s topics found in this discussion", description)}
	}

	listed := matched
	if len(listed) > listedTopics {
		listed = listed[:listedTopics]
	}
	return []string{
		fmt.Sprintf("%s topics: %s", label, formatTopicList(listed)),
		fmt.Sprintf("%d of %d messages fall in %d %s topics",
			sum, result.MessageCount, len(matched), strings.ToLower(label)),
	}
}

func formatTopicList(topics []models.Topic) string {
	parts := make([]string, 0, len(topics))
	for _, t := range topics {
		parts = append(parts, fmt.Sprintf("%q (%d messages)", t.Name, t.MessageCount))
	}
	return strings.Join(parts, ", ")
}
