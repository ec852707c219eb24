// Package state tracks per-scope index mutation state: a mutual-exclusion
// lock and an advisory processing counter per (user, course) partition.
package state

import (
	"context"
	"fmt"
	"sync"

	"ai-coursechat-be/pkg/apperrors"
)

// Scope is the (user, course) partition key isolating all data and locks.
type Scope struct {
	User   string
	Course string
}

func (s Scope) String() string {
	return s.User + ":" + s.Course
}

// ThreadID builds the conversation thread identifier for a session under
// this scope.
func (s Scope) ThreadID(sessionID string) string {
	return fmt.Sprintf("%s:%s:%s", s.User, s.Course, sessionID)
}

// ThreadPrefix is the prefix matching every thread identifier of this scope,
// used for bulk checkpoint deletion on course removal.
func (s Scope) ThreadPrefix() string {
	return s.User + ":" + s.Course + ":"
}

// Coordinator serializes index mutations per scope and tracks how many
// background embedding jobs are in flight. Locks and counters live for the
// process lifetime only; they guard durably-recoverable state and need no
// persistence themselves.
type Coordinator struct {
	mu       sync.Mutex // guards the registries, not the scope data
	locks    map[Scope]chan struct{}
	counters map[Scope]int
}

func NewCoordinator() *Coordinator {
	return &Coordinator{
		locks:    make(map[Scope]chan struct{}),
		counters: make(map[Scope]int),
	}
}

// MarkProcessing records the start of a background embedding job.
func (c *Coordinator) MarkProcessing(scope Scope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[scope]++
}

// MarkDone records the completion of a background embedding job. Floors at
// zero so unmatched calls cannot drive the counter negative.
func (c *Coordinator) MarkDone(scope Scope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counters[scope] > 0 {
		c.counters[scope]--
	}
}

// Status reports the number of outstanding background jobs for the scope.
// A positive value means the index is not yet consistent with the latest
// uploads; it is an advisory signal, not a correctness mechanism.
func (c *Coordinator) Status(scope Scope) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counters[scope]
}

// Lock acquires the scope's mutual-exclusion lock, waiting at most until ctx
// is done. On success it returns the unlock function; on timeout it returns
// ErrLockTimeout. Locks are created lazily on first request and reused.
func (c *Coordinator) Lock(ctx context.Context, scope Scope) (func(), error) {
	ch := c.lockChan(scope)
	select {
	case ch <- struct{}{}:
		return func() { <-ch }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: scope %s", apperrors.ErrLockTimeout, scope)
	}
}

func (c *Coordinator) lockChan(scope Scope) chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch, ok := c.locks[scope]
	if !ok {
		ch = make(chan struct{}, 1)
		c.locks[scope] = ch
	}
	return ch
}
