// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package models

import (
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// CompareVersions orders version identifiers. Two numeric identifiers
// compare numerically, anything else lexically.
func CompareVersions(a, b string) int {
	na, errA := cast.ToInt64E(strings.TrimSpace(a))
	nb, errB := cast.ToInt64E(strings.TrimSpace(b))
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}

// SortVersions returns a copy of versions in ascending order.
func SortVersions(versions []string) []string {
	out := append([]string(nil), versions...)
	sort.SliceStable(out, func(i, j int) bool {
		return CompareVersions(out[i], out[j]) < 0
	})
	return out
}
