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

	"github.com/tomtom215/topiclens/internal/models"
)

// TopPopularTopics is the length of AggregatedResult.TopicsByPopularity.
const TopPopularTopics = 5

// NameSource resolves topic ids to display names.
type NameSource interface {
	Resolve(id int64) string
}

type userAcc struct {
	id       int64
	name     string
	messages int
	topics   map[int64]struct{}
}

type topicAcc struct {
	id           int64
	messages     int
	contribOrder []int64
	contribCount map[int64]int
}

// Aggregate builds descriptive statistics in a single pass over messages.
// Unassigned messages count toward the message total and their sender's
// total but not toward any topic.
func Aggregate(messages []models.Message, names NameSource) models.AggregatedResult {
	users := make(map[int64]*userAcc)
	var userOrder []int64
	topics := make(map[int64]*topicAcc)
	var topicOrder []int64
	var timeline []models.TimedMessage

	for _, msg := range messages {
		if msg.HasTimestamp() {
			timeline = append(timeline, models.TimedMessage{TopicID: msg.TopicID, Timestamp: msg.Timestamp})
		}

		var u *userAcc
		if msg.HasUser {
			u = users[msg.FromUserID]
			if u == nil {
				u = &userAcc{id: msg.FromUserID, topics: make(map[int64]struct{})}
				users[msg.FromUserID] = u
				userOrder = append(userOrder, msg.FromUserID)
			}
			u.messages++
			if u.name == "" {
				u.name = strings.TrimSpace(msg.FromUserName)
			}
		}

		if msg.TopicID == models.UnassignedTopicID {
			continue
		}

		t := topics[msg.TopicID]
		if t == nil {
			t = &topicAcc{id: msg.TopicID, contribCount: make(map[int64]int)}
			topics[msg.TopicID] = t
			topicOrder = append(topicOrder, msg.TopicID)
		}
		t.messages++

		if u != nil {
			if _, seen := t.contribCount[u.id]; !seen {
				t.contribOrder = append(t.contribOrder, u.id)
			}
			t.contribCount[u.id]++
			u.topics[msg.TopicID] = struct{}{}
		}
	}

	result := models.AggregatedResult{
		MessageCount:       len(messages),
		TopicCount:         len(topicOrder),
		ActiveUsers:        len(userOrder),
		Topics:             make([]models.Topic, 0, len(topicOrder)),
		TopicsByPopularity: []models.Topic{},
		Users:              make([]models.UserStat, 0, len(userOrder)),
		Timeline:           timeline,
	}

	for _, id := range topicOrder {
		acc := topics[id]
		contributors := make([]models.Contributor, 0, len(acc.contribOrder))
		for _, uid := range acc.contribOrder {
			contributors = append(contributors, models.Contributor{
				UserID:       uid,
				Username:     displayName(users[uid]),
				MessageCount: acc.contribCount[uid],
			})
		}
		sort.SliceStable(contributors, func(i, j int) bool {
			return contributors[i].MessageCount > contributors[j].MessageCount
		})

		result.Topics = append(result.Topics, models.Topic{
			ID:               id,
			Name:             names.Resolve(id),
			MessageCount:     acc.messages,
			ContributorCount: len(contributors),
			Contributors:     contributors,
		})
	}
	sort.SliceStable(result.Topics, func(i, j int) bool {
		return result.Topics[i].MessageCount > result.Topics[j].MessageCount
	})

	popular := len(result.Topics)
	if popular > TopPopularTopics {
		popular = TopPopularTopics
	}
	result.TopicsByPopularity = append(result.TopicsByPopularity, result.Topics[:popular]...)
	if len(result.Topics) > 0 {
		top := result.Topics[0]
		result.MostDiscussedTopic = &top
	}

	var userMessages, userTopics int
	for _, uid := range userOrder {
		u := users[uid]
		userMessages += u.messages
		userTopics += len(u.topics)
		result.Users = append(result.Users, models.UserStat{
			UserID:       uid,
			Username:     displayName(u),
			MessageCount: u.messages,
			TopicCount:   len(u.topics),
		})
	}
	result.UserEngagement = models.UserEngagement{
		AverageMessagesPerUser: roundedRatio(userMessages, len(userOrder)),
		AverageTopicsPerUser:   roundedRatio(userTopics, len(userOrder)),
	}

	return result
}

// EmptyResult is the well-formed result for a tree without messages.
func EmptyResult() models.AggregatedResult {
	return models.AggregatedResult{
		Topics:             []models.Topic{},
		TopicsByPopularity: []models.Topic{},
		Users:              []models.UserStat{},
	}
}

func displayName(u *userAcc) string {
	if u == nil {
		return ""
	}
	name := u.name
	if name == "" {
		name = fmt.Sprintf("User %d", u.id)
	}
	if strings.HasPrefix(name, "@") {
		return name
	}
	return "@" + name
}

// roundedRatio returns round(num/den), or 0 when den is 0.
func roundedRatio(num, den int) int {
	if den == 0 {
		return 0
	}
	return int(math.Round(float64(num) / float64(den)))
}
