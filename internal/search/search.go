// Package search ranks web search hits by site popularity and keyword
// relevance, and scans local directories for files whose names match a query.
package search

import (
	"sort"
	"strings"
)

// keywords splits query on whitespace and lower-cases each word.
func keywords(query string) []string {
	words := strings.Fields(query)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return words
}

// containsAny reports whether any keyword is a case-insensitive substring of s.
func containsAny(s string, words []string) bool {
	lower := strings.ToLower(s)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// sortByScore orders results by score, highest first, keeping the existing
// order for equal scores.
func sortByScore(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}

func truncate(results []Result, limit int) []Result {
	if limit >= 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}
