// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package topictree

import (
	"fmt"
	"strings"
	"sync"

	"github.com/tomtom215/topiclens/internal/models"
)

// fallbackNames labels topic ids 0-9 when a tree carries no metadata.
var fallbackNames = map[int64]string{
	0: "General Discussion",
	1: "DeFi Protocols",
	2: "Trading & Markets",
	3: "Governance",
	4: "Technical Development",
	5: "Security & Audits",
	6: "NFTs & Digital Art",
	7: "Community Events",
	8: "Token Economics",
	9: "Partnerships & Integrations",
}

// NameResolver resolves topic ids to display names. The cache only grows;
// it lives as long as the owning session. Safe for concurrent use.
type NameResolver struct {
	mu    sync.RWMutex
	names map[int64]string
}

// NewNameResolver creates an empty resolver.
func NewNameResolver() *NameResolver {
	return &NameResolver{names: make(map[int64]string)}
}

// ExtractNames records the name (or, failing that, the title) of every
// topic entry in tree. Entries with neither are skipped. It returns the
// number of names recorded.
func (r *NameResolver) ExtractNames(tree *models.RawTree) int {
	if tree == nil || len(tree.Topics) == 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	recorded := 0
	for id, meta := range tree.Topics {
		name := strings.TrimSpace(meta.Name)
		if name == "" {
			name = strings.TrimSpace(meta.Title)
		}
		if name == "" {
			continue
		}
		r.names[id] = name
		recorded++
	}
	return recorded
}

// Resolve returns the display name for a topic id.
func (r *NameResolver) Resolve(id int64) string {
	r.mu.RLock()
	name, ok := r.names[id]
	r.mu.RUnlock()
	if ok {
		return name
	}
	if name, ok := fallbackNames[id]; ok {
		return name
	}
	return fmt.Sprintf("Topic %d", id)
}

// Len returns the number of cached names.
func (r *NameResolver) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}
