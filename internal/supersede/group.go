// Package supersede cancels an in-flight request when a newer one with the
// same key starts, so only the latest response for a key is applied.
package supersede

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned for a request whose key was taken over by a newer
// request before it completed.
var ErrSuperseded = errors.New("request superseded by a newer one")

type entry struct {
	gen    uint64
	cancel context.CancelFunc
}

type Group struct {
	mu      sync.Mutex
	next    uint64
	entries map[string]entry
}

func NewGroup() *Group {
	return &Group{entries: make(map[string]entry)}
}

// Ticket identifies one generation for a key.
type Ticket struct {
	g      *Group
	key    string
	gen    uint64
	cancel context.CancelFunc
}

// Start registers a new generation for key, cancelling the previous one.
func (g *Group) Start(parent context.Context, key string) (context.Context, *Ticket) {
	ctx, cancel := context.WithCancel(parent)

	g.mu.Lock()
	defer g.mu.Unlock()

	if prev, ok := g.entries[key]; ok {
		prev.cancel()
	}
	g.next++
	g.entries[key] = entry{gen: g.next, cancel: cancel}

	return ctx, &Ticket{g: g, key: key, gen: g.next, cancel: cancel}
}

// Current reports whether t is still the latest generation for its key.
func (t *Ticket) Current() bool {
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	e, ok := t.g.entries[t.key]
	return ok && e.gen == t.gen
}

// Done releases the ticket. It returns ErrSuperseded when a newer generation
// took over; an older ticket never removes a newer one.
func (t *Ticket) Done() error {
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	defer t.cancel()

	e, ok := t.g.entries[t.key]
	if !ok || e.gen != t.gen {
		return ErrSuperseded
	}
	delete(t.g.entries, t.key)
	return nil
}

// Pending returns the number of keys with an outstanding generation.
func (g *Group) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.entries)
}

// Do runs fn under a new generation for key and discards its result if it was
// superseded meanwhile.
func Do[T any](ctx context.Context, g *Group, key string, fn func(context.Context) (T, error)) (T, error) {
	runCtx, ticket := g.Start(ctx, key)
	out, err := fn(runCtx)
	if doneErr := ticket.Done(); doneErr != nil {
		var zero T
		return zero, doneErr
	}
	return out, err
}
