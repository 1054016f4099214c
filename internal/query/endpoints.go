// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package query

import (
	"context"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"

	"github.com/tomtom215/topiclens/internal/models"
)

// Endpoint names understood by the query service.
const (
	EndpointChannelTree        = "get_channel_tree"
	EndpointChannelTreeByUser  = "get_channel_tree_by_user"
	EndpointChannelTreeByUsers = "get_channel_tree_by_users"
	EndpointListVersions       = "list_channel_versions"
)

// Label is an identifier the service may send as a string or a number.
type Label string

// UnmarshalJSON accepts strings, numbers and null.
func (l *Label) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*l = ""
		return nil
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return err
	}
	*l = Label(strings.TrimSpace(s))
	return nil
}

// TreeResponse is the data of the get_channel_tree* endpoints.
type TreeResponse struct {
	ChannelID Label          `json:"channelId"`
	Version   Label          `json:"version"`
	Tree      models.RawTree `json:"tree"`
}

// VersionInfo is one entry of list_channel_versions.
type VersionInfo struct {
	Version      Label  `json:"version"`
	CreatedAt    string `json:"createdAt,omitempty"`
	MessageCount int    `json:"messageCount"`
	TopicCount   int    `json:"topicCount"`
}

// FetchTree retrieves the tree of one channel version.
func (c *Client) FetchTree(ctx context.Context, channelID, version string) (*TreeResponse, error) {
	var out TreeResponse
	params := map[string]interface{}{"channelId": channelID, "version": version}
	if err := c.makeRequest(ctx, EndpointChannelTree, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchTreeByUser retrieves a version's tree restricted to one user.
func (c *Client) FetchTreeByUser(ctx context.Context, channelID, version string, userID int64) (*TreeResponse, error) {
	var out TreeResponse
	params := map[string]interface{}{"channelId": channelID, "version": version, "userId": userID}
	if err := c.makeRequest(ctx, EndpointChannelTreeByUser, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchTreeByUsers retrieves a version's tree restricted to a set of users.
func (c *Client) FetchTreeByUsers(ctx context.Context, channelID, version string, userIDs []int64) (*TreeResponse, error) {
	var out TreeResponse
	params := map[string]interface{}{"channelId": channelID, "version": version, "userIds": userIDs}
	if err := c.makeRequest(ctx, EndpointChannelTreeByUsers, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListVersions lists the stored versions of a channel.
func (c *Client) ListVersions(ctx context.Context, channelID string) ([]VersionInfo, error) {
	var out []VersionInfo
	params := map[string]interface{}{"channelId": channelID}
	if err := c.makeRequest(ctx, EndpointListVersions, params, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []VersionInfo{}
	}
	return out, nil
}
