package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-coursechat-be/pkg/apperrors"
)

func TestScopeThreadIdentifiers(t *testing.T) {
	scope := Scope{User: "alice", Course: "algorithms"}

	assert.Equal(t, "alice:algorithms", scope.String())
	assert.Equal(t, "alice:algorithms:s-1", scope.ThreadID("s-1"))
	assert.Equal(t, "alice:algorithms:", scope.ThreadPrefix())
}

func TestProcessingCounterFloorsAtZero(t *testing.T) {
	c := NewCoordinator()
	scope := Scope{User: "alice", Course: "algorithms"}

	assert.Equal(t, 0, c.Status(scope))

	c.MarkProcessing(scope)
	c.MarkProcessing(scope)
	assert.Equal(t, 2, c.Status(scope))

	c.MarkDone(scope)
	c.MarkDone(scope)
	c.MarkDone(scope) // unmatched call must not go negative
	assert.Equal(t, 0, c.Status(scope))
}

func TestCountersAreScopedIndependently(t *testing.T) {
	c := NewCoordinator()
	a := Scope{User: "alice", Course: "algorithms"}
	b := Scope{User: "alice", Course: "databases"}

	c.MarkProcessing(a)
	assert.Equal(t, 1, c.Status(a))
	assert.Equal(t, 0, c.Status(b))
}

func TestLockIsExclusivePerScope(t *testing.T) {
	c := NewCoordinator()
	scope := Scope{User: "alice", Course: "algorithms"}

	unlock, err := c.Lock(context.Background(), scope)
	require.NoError(t, err)

	// second acquisition times out while the first is held
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Lock(ctx, scope)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrLockTimeout))

	unlock()

	unlock2, err := c.Lock(context.Background(), scope)
	require.NoError(t, err)
	unlock2()
}

func TestLocksOnDifferentScopesDoNotBlock(t *testing.T) {
	c := NewCoordinator()

	unlockA, err := c.Lock(context.Background(), Scope{User: "alice", Course: "algorithms"})
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	unlockB, err := c.Lock(ctx, Scope{User: "bob", Course: "algorithms"})
	require.NoError(t, err)
	unlockB()
}
