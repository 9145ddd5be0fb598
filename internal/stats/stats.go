// Package stats accumulates the pass-1 interaction statistics: total
// interaction count, raw per-item occurrence counts, and per-user
// interaction counts. It drives the down-sampling probabilities consumed
// by the row builder in pass 2.
package stats

import "github.com/pc3-labs/recoreco/internal/dictionary"

// Stats holds the first-pass accumulator state.
type Stats struct {
	n                  int64
	itemOccurrences    []int64
	interactionsPerUser []int64
}

// New returns an empty Stats.
func New() *Stats {
	return &Stats{}
}

// Observe records one (user, item) interaction, identified by dense ids
// already resolved through the user/item dictionaries.
func (s *Stats) Observe(user dictionary.ID, item dictionary.ID) {
	s.n++
	s.growItems(int(item) + 1)
	s.itemOccurrences[item]++
	s.growUsers(int(user) + 1)
	s.interactionsPerUser[user]++
}

func (s *Stats) growItems(n int) {
	for len(s.itemOccurrences) < n {
		s.itemOccurrences = append(s.itemOccurrences, 0)
	}
}

func (s *Stats) growUsers(n int) {
	for len(s.interactionsPerUser) < n {
		s.interactionsPerUser = append(s.interactionsPerUser, 0)
	}
}

// N returns the total interaction count observed.
func (s *Stats) N() int64 { return s.n }

// ItemOccurrences returns the raw (non-deduplicated) occurrence count for
// item. Returns 0 for ids never observed.
func (s *Stats) ItemOccurrences(item dictionary.ID) int64 {
	if int(item) >= len(s.itemOccurrences) {
		return 0
	}
	return s.itemOccurrences[item]
}

// InteractionsPerUser returns the raw interaction count for user.
func (s *Stats) InteractionsPerUser(user dictionary.ID) int64 {
	if int(user) >= len(s.interactionsPerUser) {
		return 0
	}
	return s.interactionsPerUser[user]
}
