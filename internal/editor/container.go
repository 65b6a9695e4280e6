// Package editor holds the optimistic client-state machinery: the generic
// entity container and the per-field controller. The two differ in their
// rollback policy: the field auto-reverts on failure, the container
// leaves compensation to its caller.
package editor

import (
	"context"
	"sync"
)

// Container exclusively owns the local copy of one entity, seeded from a
// server payload. Mutators apply locally first, then persist; on success
// the server's echo is merged (server wins). On failure the container
// keeps the optimistic state; reverting is the caller's job.
type Container[T any] struct {
	mu     sync.Mutex
	entity T
}

// NewContainer seeds a container from the initial server payload
func NewContainer[T any](initial T) *Container[T] {
	return &Container[T]{entity: initial}
}

// Get returns a copy of the current local entity
func (c *Container[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entity
}

// Apply runs a synchronous local mutation (the optimistic step, also
// usable for caller-side compensation)
func (c *Container[T]) Apply(mutate func(*T)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	mutate(&c.entity)
}

// Merge replaces local state with the server's authoritative copy
func (c *Container[T]) Merge(server T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entity = server
}

// Mutate is the optimistic update pattern in one call: apply the local
// change immediately, persist it, and merge the server echo on success.
// A persistence error is returned without touching local state further.
func (c *Container[T]) Mutate(ctx context.Context, apply func(*T), persist func(ctx context.Context) (T, error)) error {
	c.Apply(apply)

	server, err := persist(ctx)
	if err != nil {
		return err
	}

	c.Merge(server)
	return nil
}
