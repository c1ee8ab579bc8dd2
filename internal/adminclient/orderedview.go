// internal/adminclient/orderedview.go
package adminclient

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrIndexOutOfRange is returned by Move for a position outside the view.
var ErrIndexOutOfRange = errors.New("adminclient: index out of range")

// OrderedView holds the local display order of one reorder scope. Move
// changes the local order at once, then sends the complete id list; when
// the server refuses, the view reloads the authoritative order. If that
// reload fails too, the order from before the move is put back.
type OrderedView[T any, K comparable] struct {
	id     func(T) K
	fetch  func(context.Context) ([]T, error)
	commit func(context.Context, []K) error

	moveMu sync.Mutex // one move in flight at a time
	mu     sync.RWMutex
	items  []T
}

// NewOrderedView builds a view. id extracts the key the server reorders by.
func NewOrderedView[T any, K comparable](id func(T) K, fetch func(context.Context) ([]T, error), commit func(context.Context, []K) error) *OrderedView[T, K] {
	return &OrderedView[T, K]{id: id, fetch: fetch, commit: commit}
}

// Load replaces the local order with the server's.
func (v *OrderedView[T, K]) Load(ctx context.Context) error {
	items, err := v.fetch(ctx)
	if err != nil {
		return err
	}
	v.set(items)
	return nil
}

// Items returns a copy of the current local order.
func (v *OrderedView[T, K]) Items() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]T(nil), v.items...)
}

// IDs returns the keys of the current local order.
func (v *OrderedView[T, K]) IDs() []K {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.idsLocked()
}

func (v *OrderedView[T, K]) idsLocked() []K {
	ids := make([]K, len(v.items))
	for i, it := range v.items {
		ids[i] = v.id(it)
	}
	return ids
}

func (v *OrderedView[T, K]) set(items []T) {
	v.mu.Lock()
	v.items = append([]T(nil), items...)
	v.mu.Unlock()
}

// Move puts the item at index from at index to and persists the new order.
// A failed commit is returned after the view has been resynchronised.
func (v *OrderedView[T, K]) Move(ctx context.Context, from, to int) error {
	v.moveMu.Lock()
	defer v.moveMu.Unlock()

	v.mu.Lock()
	n := len(v.items)
	if from < 0 || from >= n || to < 0 || to >= n {
		v.mu.Unlock()
		return fmt.Errorf("%w: move %d -> %d in %d items", ErrIndexOutOfRange, from, to, n)
	}
	if from == to {
		v.mu.Unlock()
		return nil
	}
	snapshot := append([]T(nil), v.items...)
	v.items = moved(v.items, from, to)
	ids := v.idsLocked()
	v.mu.Unlock()

	err := v.commit(ctx, ids)
	if err == nil {
		return nil
	}

	fresh, ferr := v.fetch(ctx)
	if ferr != nil {
		v.set(snapshot)
		return errors.Join(err, fmt.Errorf("adminclient: reload after failed reorder: %w", ferr))
	}
	v.set(fresh)
	return err
}

// moved returns a new slice with items[from] relocated to index to.
func moved[T any](items []T, from, to int) []T {
	out := make([]T, 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)
	item := items[from]
	out = append(out[:to], append([]T{item}, out[to:]...)...)
	return out
}
