// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

// Package datasets holds the registry of analyzable channels.
package datasets

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/tomtom215/topiclens/internal/config"
)

// ErrNotFound is returned for an unknown dataset id.
var ErrNotFound = errors.New("dataset not found")

// Dataset is the display metadata of a channel.
type Dataset struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Link        string `json:"link,omitempty"`
}

var builtin = []Dataset{
	{
		ID:          "base",
		Name:        "Base",
		Description: "Base community chat",
		Link:        "https://t.me/base",
	},
	{
		ID:          "optimism",
		Name:        "Optimism",
		Description: "Optimism collective discussion",
		Link:        "https://t.me/optimismfndn",
	},
	{
		ID:          "arbitrum",
		Name:        "Arbitrum",
		Description: "Arbitrum community chat",
		Link:        "https://t.me/arbitrum",
	},
}

// Registry maps dataset ids to metadata, keeping registration order.
type Registry struct {
	mu      sync.RWMutex
	entries *orderedmap.OrderedMap[string, Dataset]
}

// NewRegistry returns the built-in datasets followed by extra. An extra
// entry with a known id overrides the non-empty fields of that entry.
func NewRegistry(extra []config.DatasetConfig) *Registry {
	r := &Registry{entries: orderedmap.New[string, Dataset]()}
	for _, d := range builtin {
		r.entries.Set(d.ID, d)
	}
	for _, d := range extra {
		r.Register(Dataset(d))
	}
	return r
}

// Register adds d or merges it into an existing entry.
func (r *Registry) Register(d Dataset) {
	d.ID = strings.TrimSpace(d.ID)
	if d.ID == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.entries.Get(d.ID)
	if !ok {
		if d.Name == "" {
			d.Name = d.ID
		}
		r.entries.Set(d.ID, d)
		return
	}
	if d.Name != "" {
		existing.Name = d.Name
	}
	if d.Description != "" {
		existing.Description = d.Description
	}
	if d.Link != "" {
		existing.Link = d.Link
	}
	r.entries.Set(d.ID, existing)
}

// Get returns the dataset with the given id.
func (r *Registry) Get(id string) (Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.entries.Get(id)
	if !ok {
		return Dataset{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return d, nil
}

// List returns every dataset in registration order.
func (r *Registry) List() []Dataset {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Dataset, 0, r.entries.Len())
	for pair := r.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Len returns the number of datasets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries.Len()
}
