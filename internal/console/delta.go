// Package console is the in-process storefront client. It keeps optimistic
// listings that evolve only through Reduce.
package console

import (
	"slices"
	"strings"
	"time"
)

// Kind says how a delta changes a listing.
type Kind int

const (
	Insert Kind = iota + 1
	Replace
	Remove
)

func (k Kind) String() string {
	switch k {
	case Insert:
		return "insert"
	case Replace:
		return "replace"
	case Remove:
		return "remove"
	default:
		return "unknown"
	}
}

// Delta describes the exact effect of one successful remote write.
// Record is the zero value for Remove.
type Delta[T any] struct {
	Kind   Kind
	ID     string
	Record T
}

// Listing is an immutable snapshot of cached records, newest first.
type Listing[T any] struct {
	items   []T
	idOf    func(T) string
	created func(T) time.Time
}

// NewListing sorts records by creation time, newest first.
func NewListing[T any](records []T, idOf func(T) string, created func(T) time.Time) Listing[T] {
	l := Listing[T]{idOf: idOf, created: created, items: slices.Clone(records)}
	slices.SortStableFunc(l.items, l.compare)
	return l
}

// Items returns a copy of the cached records.
func (l Listing[T]) Items() []T {
	return slices.Clone(l.items)
}

func (l Listing[T]) Len() int { return len(l.items) }

// Get looks a record up by id.
func (l Listing[T]) Get(id string) (T, bool) {
	if i := l.index(id); i >= 0 {
		return l.items[i], true
	}
	var zero T
	return zero, false
}

func (l Listing[T]) index(id string) int {
	return slices.IndexFunc(l.items, func(item T) bool { return l.idOf(item) == id })
}

func (l Listing[T]) compare(a, b T) int {
	if c := l.created(b).Compare(l.created(a)); c != 0 {
		return c
	}
	return strings.Compare(l.idOf(a), l.idOf(b))
}

// Reduce applies d to l and returns the new listing; l is left untouched.
// Insert of a known id replaces it, Replace of an unknown id is ignored,
// Remove of an unknown id is ignored.
func Reduce[T any](l Listing[T], d Delta[T]) Listing[T] {
	next := Listing[T]{idOf: l.idOf, created: l.created, items: slices.Clone(l.items)}
	i := next.index(d.ID)
	switch d.Kind {
	case Insert:
		if i >= 0 {
			next.items[i] = d.Record
		} else {
			next.items = append(next.items, d.Record)
		}
		slices.SortStableFunc(next.items, next.compare)
	case Replace:
		if i >= 0 {
			next.items[i] = d.Record
			slices.SortStableFunc(next.items, next.compare)
		}
	case Remove:
		if i >= 0 {
			next.items = slices.Delete(next.items, i, i+1)
		}
	}
	return next
}
