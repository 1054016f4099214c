// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package analysis

import (
	"github.com/tomtom215/topiclens/internal/models"
	"github.com/tomtom215/topiclens/internal/topictree"
)

// ProcessTree analyzes one tree version locally. resolver caches topic
// names from the tree's metadata before aggregation.
func ProcessTree(tree *models.RawTree, req models.QueryRequest, version string, resolver *topictree.NameResolver) models.VersionedResult {
	resolver.ExtractNames(tree)
	return Analyze(tree, req, version, resolver)
}

// Analyze is ProcessTree without name extraction. Callers merging names
// from several trees record them first.
func Analyze(tree *models.RawTree, req models.QueryRequest, version string, names NameSource) models.VersionedResult {
	messages := topictree.Normalize(tree, req.UserIDFilter)
	if len(messages) == 0 {
		return models.VersionedResult{
			Version:          version,
			AggregatedResult: EmptyResult(),
			Insights:         []string{InsightNoMessages},
		}
	}

	result := Aggregate(messages, names)
	return models.VersionedResult{
		Version:          version,
		AggregatedResult: result,
		Insights:         GenerateInsights(&result, req, version),
	}
}
