// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package analysis

import (
	"strings"

	"github.com/tomtom215/topiclens/internal/models"
)

// Rule pairs a question predicate with the handler that answers it.
// Match receives the lowercased question; Handle receives it as asked.
type Rule struct {
	Name   string
	Match  func(lowered string) bool
	Handle func(question string, result *models.AggregatedResult) []string
}

// Router dispatches a custom question to the first matching rule.
type Router struct {
	rules    []Rule
	fallback Rule
}

// NewRouter builds a router that tries rules in order and answers with
// fallback when none match.
func NewRouter(fallback Rule, rules ...Rule) *Router {
	return &Router{rules: rules, fallback: fallback}
}

// Route answers question from result. A nil result is treated as empty.
func (r *Router) Route(question string, result *models.AggregatedResult) []string {
	if result == nil {
		empty := EmptyResult()
		result = &empty
	}
	return r.Select(question).Handle(question, result)
}

// Select returns the rule that answers question.
func (r *Router) Select(question string) Rule {
	lowered := strings.ToLower(question)
	for _, rule := range r.rules {
		if rule.Match(lowered) {
			return rule
		}
	}
	return r.fallback
}

var defaultRouter = NewRouter(
	Rule{Name: "general", Match: func(string) bool { return true }, Handle: generalAnswer},
	Rule{Name: "disagreement", Match: matchDisagreement, Handle: disagreementAnswer},
	Rule{Name: "trending", Match: containsAny("trending", "popular"), Handle: trendingAnswer},
	Rule{Name: "engagement", Match: containsAny("engaged", "active"), Handle: engagementAnswer},
	Rule{Name: "sentiment", Match: containsAny("sentiment", "mood"), Handle: sentimentAnswer},
	Rule{Name: "concerns", Match: containsAny("concern", "issue", "problem"), Handle: concernsAnswer},
	Rule{Name: "defi", Match: containsAny("defi", "protocol"), Handle: defiAnswer},
	Rule{Name: "temporal", Match: containsAny("when", "time", "recent"), Handle: temporalAnswer},
)

// DefaultRouter returns the router used for custom questions.
func DefaultRouter() *Router {
	return defaultRouter
}

func matchDisagreement(q string) bool {
	return strings.Contains(q, "differ") && containsAny("opinion", "disagree", "preferences")(q)
}

func containsAny(keywords ...string) func(string) bool {
	return func(q string) bool {
		for _, kw := range keywords {
			if strings.Contains(q, kw) {
				return true
			}
		}
		return false
	}
}
