// Package popularity provides the static site popularity table used to rank
// web search results. Scores are approximate monthly visit counts.
package popularity

import "sort"

// DefaultScore is the score of any domain missing from the table.
const DefaultScore = 1.0

// builtin holds approximate monthly visits for the most visited sites
// (Semrush / Visual Capitalist, May 2025).
var builtin = map[string]float64{
	"google.com":    105.41e9,
	"youtube.com":   47.04e9,
	"facebook.com":  10.47e9,
	"instagram.com": 9.24e9,
	"reddit.com":    5.3e9,
	"wikipedia.org": 4.8e9,
	"chatgpt.com":   4.7e9,
	"amazon.com":    3.5e9,
	"yahoo.com":     3.0e9,
	"baidu.com":     2.0e9,
}

// Table is a read-only domain to score mapping.
type Table struct {
	scores map[string]float64
}

// Entry is a single row of the table.
type Entry struct {
	Domain        string
	MonthlyVisits float64
}

// New returns a table seeded with the built-in entries and merged with
// overrides. Negative overrides are ignored so scores stay non-negative.
func New(overrides map[string]float64) *Table {
	scores := make(map[string]float64, len(builtin)+len(overrides))
	for domain, visits := range builtin {
		scores[domain] = visits
	}
	for domain, visits := range overrides {
		if visits < 0 {
			continue
		}
		scores[domain] = visits
	}
	return &Table{scores: scores}
}

// Default returns a table holding only the built-in entries.
func Default() *Table {
	return New(nil)
}

// Score returns the monthly visits for domain, or DefaultScore if unknown.
func (t *Table) Score(domain string) float64 {
	if visits, ok := t.scores[domain]; ok {
		return visits
	}
	return DefaultScore
}

// Entries lists the table sorted by visits, highest first.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t.scores))
	for domain, visits := range t.scores {
		entries = append(entries, Entry{Domain: domain, MonthlyVisits: visits})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].MonthlyVisits != entries[j].MonthlyVisits {
			return entries[i].MonthlyVisits > entries[j].MonthlyVisits
		}
		return entries[i].Domain < entries[j].Domain
	})
	return entries
}
