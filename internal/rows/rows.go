// Package rows implements the pass-2 row builder: it groups a
// user-grouped interaction stream into per-user sets of retained item
// ids, applying per-item Bernoulli down-sampling followed by per-user
// reservoir sampling, exactly as spec.md §4.3 describes.
package rows

import (
	"fmt"
	"math/rand/v2"

	"github.com/pc3-labs/recoreco/internal/dictionary"
	"github.com/pc3-labs/recoreco/internal/rerrors"
	"github.com/pc3-labs/recoreco/internal/stats"
)

// RowSink receives one emitted user row at a time. Rows with zero
// retained items are never emitted (they contribute nothing, per
// spec.md §8's boundary behaviours).
type RowSink func(user dictionary.ID, items []dictionary.ID) error

// Builder groups a user-grouped stream of (user, item) pairs into rows.
//
// Builder requires the stream to be grouped by user: once a user's row
// has been flushed (on transition to a different user, or at Close), that
// user id must never reappear. A reappearance is treated as
// ErrInputFormat per spec.md §4.3's "Input grouping assumption" and
// §9's suggestion to validate and error on ungrouped input.
type Builder struct {
	stats *stats.Stats
	fMax  int
	kMax  int
	rng   *rand.Rand
	sink  RowSink

	curUser  dictionary.ID
	hasUser  bool
	admitted int
	reservoir []dictionary.ID
	closedUsers map[dictionary.ID]struct{}
}

// New returns a Builder that reads occurrence counts from st to drive
// per-item admission probability, retains at most fMax items per user,
// targets an expected kMax retained occurrences per heavy-hitter item,
// and emits completed rows to sink. rng must be seeded by the caller for
// deterministic runs (spec.md §4.7's rng_seed).
func New(st *stats.Stats, fMax, kMax int, rng *rand.Rand, sink RowSink) *Builder {
	return &Builder{
		stats:       st,
		fMax:        fMax,
		kMax:        kMax,
		rng:         rng,
		sink:        sink,
		closedUsers: make(map[dictionary.ID]struct{}),
	}
}

// Add records one (user, item) pass-2 interaction. Interactions for the
// same user must be contiguous; see Builder's doc comment.
func (b *Builder) Add(user, item dictionary.ID) error {
	if !b.hasUser || user != b.curUser {
		if _, closed := b.closedUsers[user]; closed {
			return fmt.Errorf("%w: user %d reappeared after its row was already emitted (input is not user-grouped)", rerrors.ErrInputFormat, user)
		}
		if b.hasUser {
			if err := b.flush(); err != nil {
				return err
			}
		}
		b.startUser(user)
	}

	occ := b.stats.ItemOccurrences(item)
	admit := true
	if occ > int64(b.kMax) {
		p := float64(b.kMax) / float64(occ)
		admit = b.rng.Float64() < p
	}
	if !admit {
		return nil
	}

	idx := b.admitted
	b.admitted++
	if idx < b.fMax {
		b.reservoir = append(b.reservoir, item)
	} else if j := b.rng.IntN(idx + 1); j < b.fMax {
		b.reservoir[j] = item
	}
	return nil
}

func (b *Builder) startUser(user dictionary.ID) {
	b.curUser = user
	b.hasUser = true
	b.admitted = 0
	b.reservoir = b.reservoir[:0]
}

// flush emits the current user's row (if non-empty) and marks the user
// closed so a later reappearance can be detected.
func (b *Builder) flush() error {
	if !b.hasUser {
		return nil
	}
	b.closedUsers[b.curUser] = struct{}{}
	if len(b.reservoir) == 0 {
		return nil
	}
	seen := make(map[dictionary.ID]struct{}, len(b.reservoir))
	items := make([]dictionary.ID, 0, len(b.reservoir))
	for _, it := range b.reservoir {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		items = append(items, it)
	}
	if len(items) == 0 {
		return nil
	}
	return b.sink(b.curUser, items)
}

// Close flushes any pending row for the last user seen. Callers must call
// Close after the last Add of pass 2.
func (b *Builder) Close() error {
	return b.flush()
}
