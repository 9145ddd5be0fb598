// Package dictionary provides the bidirectional key<->id mapping used to
// assign dense integer ids to opaque external identifier strings.
package dictionary

// ID is a dense, non-negative identifier assigned in insertion order.
type ID int32

// Dictionary maps opaque byte-string keys to dense ids and back. A
// Dictionary is not safe for concurrent use; callers serialize access.
type Dictionary struct {
	byKey []keyEntry
	index map[string]ID
}

type keyEntry struct {
	key string
}

// New returns an empty Dictionary.
func New() *Dictionary {
	return &Dictionary{
		index: make(map[string]ID),
	}
}

// GetOrInsert returns the id for key, assigning the next sequential id on
// first sight. Subsequent calls with the same key are idempotent.
func (d *Dictionary) GetOrInsert(key string) ID {
	if id, ok := d.index[key]; ok {
		return id
	}
	id := ID(len(d.byKey))
	d.byKey = append(d.byKey, keyEntry{key: key})
	d.index[key] = id
	return id
}

// Lookup returns the key previously assigned to id. Behavior is undefined
// (panics) if id was never returned by GetOrInsert.
func (d *Dictionary) Lookup(id ID) string {
	return d.byKey[id].key
}

// Size returns the number of distinct keys seen so far.
func (d *Dictionary) Size() int {
	return len(d.byKey)
}

// Each calls fn for every id in insertion (dense-id) order.
func (d *Dictionary) Each(fn func(id ID, key string)) {
	for i, e := range d.byKey {
		fn(ID(i), e.key)
	}
}
