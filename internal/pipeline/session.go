// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package pipeline

import (
	"sync/atomic"
	"time"

	"github.com/tomtom215/topiclens/internal/cache"
	"github.com/tomtom215/topiclens/internal/topictree"
)

// Session is the state kept between queries of one user session.
type Session struct {
	ID        string
	Resolver  *topictree.NameResolver
	CreatedAt time.Time

	generation atomic.Uint64
}

func newSession(id string) *Session {
	return &Session{
		ID:        id,
		Resolver:  topictree.NewNameResolver(),
		CreatedAt: time.Now(),
	}
}

// Begin starts a new run and returns its generation.
func (s *Session) Begin() uint64 {
	return s.generation.Add(1)
}

// Generation returns the latest generation started.
func (s *Session) Generation() uint64 {
	return s.generation.Load()
}

// IsCurrent reports whether gen is still the latest run.
func (s *Session) IsCurrent(gen uint64) bool {
	return s.generation.Load() == gen
}

// NewSessionStore creates the session cache. Sessions expire after ttl
// without use.
func NewSessionStore(ttl time.Duration) *cache.Cache[*Session] {
	return cache.New[*Session]("session", ttl)
}
