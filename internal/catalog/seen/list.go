package seen

import (
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// DefaultMaxItems is the number of last seen products kept per session
const DefaultMaxItems = 6

const cacheContext = "product:detail-seen"

// Entry is one last seen product with its pre-rendered fragment
type Entry struct {
	ProductID string `json:"product_id"`
	HTML      string `json:"html"`
}

// List holds the last seen products of a session. Entries are ordered by
// recency, the most recently viewed product is the last one.
type List struct {
	Entries []Entry `json:"entries"`
}

// Touch records a view of the product. A product already in the list is
// moved to the most recent position and keeps its fragment; a new product
// is rendered and appended. Afterwards the oldest entries are dropped until
// at most max remain (at least one is always kept). moved reports whether
// the product was already present.
func (l *List) Touch(productID string, render func() (string, error), max int) (moved bool, err error) {
	if max < 1 {
		max = 1
	}

	if i := l.index(productID); i >= 0 {
		entry := l.Entries[i]
		l.Entries = append(slices.Delete(l.Entries, i, i+1), entry)
		moved = true
	} else {
		html, err := render()
		if err != nil {
			return false, err
		}
		l.Entries = append(l.Entries, Entry{ProductID: productID, HTML: html})
	}

	if n := len(l.Entries); n > max {
		l.Entries = slices.Clone(l.Entries[n-max:])
	}
	return moved, nil
}

func (l *List) index(productID string) int {
	return slices.IndexFunc(l.Entries, func(e Entry) bool { return e.ProductID == productID })
}

// Contains reports whether the product is in the list
func (l *List) Contains(productID string) bool {
	return l.index(productID) >= 0
}

// Len returns the number of entries
func (l *List) Len() int {
	return len(l.Entries)
}

// IDs returns the product IDs, least recently viewed first
func (l *List) IDs() []string {
	ids := make([]string, len(l.Entries))
	for i, entry := range l.Entries {
		ids[i] = entry.ProductID
	}
	return ids
}

// CacheKey returns the content cache key of a product's seen fragment
func CacheKey(productID string) string {
	return strconv.FormatUint(xxhash.Sum64String(productID+cacheContext), 16)
}
