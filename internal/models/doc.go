// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

/*
Package models defines the data structures shared by the Topiclens packages.

Key Components:

  - RawTree, Message, TopicMeta: the untrusted topic tree returned by the
    remote query service. Decoding never fails on field-level problems;
    user and topic ids are coerced to int64 on ingestion.
  - QueryRequest, QueryType, UserIDSet: a user analysis request.
  - Topic, Contributor, UserStat, AggregatedResult: descriptive statistics
    derived from one version of a tree.
  - VersionedResult, AnalysisReport: per-version results and the joined
    report returned to callers.
  - DeltaResult, EvolutionTable: cross-version comparison output.

The sentinel topic id UnassignedTopicID marks messages that belong to no
topic. Such messages count toward message and user totals only.
*/
package models
