// Package ordering implements the reorder rules shared by every
// order-sensitive collection: a complete ordered id list becomes dense
// 0-based order values, embedded slices are rearranged in place, and
// writers to one scope are serialised.
package ordering

import (
	"sort"
	"strings"
	"sync"

	"github.com/dalemusser/estatehub/internal/app/system/apperr"
)

// Assignment sets Order on the item identified by ID.
type Assignment struct {
	ID    string
	Order int
}

// Plan validates ids (non-empty, no blanks, no duplicates) and returns
// order := index assignments in input sequence. field names the request
// field for validation messages.
func Plan(field string, ids []string) ([]Assignment, error) {
	if len(ids) == 0 {
		return nil, apperr.Invalid(field, field+" must contain at least one id.")
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]Assignment, 0, len(ids))
	for i, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, apperr.Invalid(field, field+" must not contain blank ids.")
		}
		if _, dup := seen[id]; dup {
			return nil, apperr.Invalid(field, field+" contains duplicate id "+id+".")
		}
		seen[id] = struct{}{}
		out = append(out, Assignment{ID: id, Order: i})
	}
	return out, nil
}

// HexIDs lowercases object id strings so they match ObjectID.Hex and so
// "AB12…" and "ab12…" count as the same id in Plan.
func HexIDs(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strings.ToLower(strings.TrimSpace(id))
	}
	return out
}

// IDs returns the ids of a plan in order.
func IDs(plan []Assignment) []string {
	out := make([]string, len(plan))
	for i, a := range plan {
		out[i] = a.ID
	}
	return out
}

// Missing returns the ids in want that are not in have, in want order.
func Missing(want []string, have []string) []string {
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[h] = struct{}{}
	}
	var out []string
	for _, w := range want {
		if _, ok := set[w]; !ok {
			out = append(out, w)
		}
	}
	return out
}

// Apply reorders items to follow plan. id and setOrder read and write the
// identity and order of one element. Listed items get order := index;
// unlisted items keep their relative sequence after the listed ones and are
// renumbered from len(plan). Unknown ids fail with NotFound and items is
// left untouched.
func Apply[T any](resource string, items []T, plan []Assignment, id func(*T) string, setOrder func(*T, int)) ([]T, error) {
	pos := make(map[string]int, len(items))
	for i := range items {
		pos[id(&items[i])] = i
	}
	var unknown []string
	for _, a := range plan {
		if _, ok := pos[a.ID]; !ok {
			unknown = append(unknown, a.ID)
		}
	}
	if len(unknown) > 0 {
		return items, apperr.NotFoundIDs(resource, unknown)
	}

	out := make([]T, 0, len(items))
	listed := make(map[int]struct{}, len(plan))
	for _, a := range plan {
		i := pos[a.ID]
		listed[i] = struct{}{}
		it := items[i]
		setOrder(&it, a.Order)
		out = append(out, it)
	}
	for i := range items {
		if _, ok := listed[i]; ok {
			continue
		}
		it := items[i]
		setOrder(&it, len(out))
		out = append(out, it)
	}
	return out, nil
}

// Sort orders items by order ascending, keeping stored position for ties.
func Sort[T any](items []T, order func(*T) int) {
	sort.SliceStable(items, func(i, j int) bool {
		return order(&items[i]) < order(&items[j])
	})
}

// Next returns the order for an appended item: max(order)+1, or 0 when empty.
func Next[T any](items []T, order func(*T) int) int {
	next := 0
	for i := range items {
		if o := order(&items[i]) + 1; o > next {
			next = o
		}
	}
	return next
}

// Locker hands out one mutex per scope key. A scope's entry lives only
// while someone holds or waits for it.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*scopeLock
}

type scopeLock struct {
	mu   sync.Mutex
	refs int
}

// NewLocker returns an empty Locker.
func NewLocker() *Locker {
	return &Locker{locks: make(map[string]*scopeLock)}
}

// Lock acquires the scope's mutex and returns its unlock func. The unlock
// func must be called exactly once.
func (l *Locker) Lock(scope string) func() {
	l.mu.Lock()
	sl, ok := l.locks[scope]
	if !ok {
		sl = &scopeLock{}
		l.locks[scope] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()
	return func() {
		sl.mu.Unlock()
		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.locks, scope)
		}
		l.mu.Unlock()
	}
}

// Len reports how many scopes currently have an entry.
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
