package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegisterLookupRemove(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	_, ok := r.Lookup(1)
	assert.False(t, ok)

	h := newFakeHandle(100)
	r.Register(1, h)

	got, ok := r.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, 100, got.Pid())

	r.Remove(1)
	_, ok = r.Lookup(1)
	assert.False(t, ok)

	// Remove is idempotent.
	r.Remove(1)
}

func TestRegisterOverwrites(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	r.Register(1, newFakeHandle(100))
	r.Register(1, newFakeHandle(200))

	got, ok := r.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, 200, got.Pid())
}

func TestCancelWithRunningJob(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	h := newFakeHandle(100)
	r.Register(1, h)

	assert.True(t, r.Cancel(1))
	assert.Equal(t, 1, h.Terminations())

	_, ok := r.Lookup(1)
	assert.False(t, ok)
}

func TestCancelWithoutJob(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	h := newFakeHandle(100)
	r.Register(2, h)

	assert.False(t, r.Cancel(1))
	assert.Equal(t, 0, h.Terminations(), "no signal may be sent when there is nothing to cancel")
}

func TestOneJobPerUser(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	r.Register(1, newFakeHandle(100))
	r.Register(2, newFakeHandle(200))

	h1, _ := r.Lookup(1)
	h2, _ := r.Lookup(2)
	assert.Equal(t, 100, h1.Pid())
	assert.Equal(t, 200, h2.Pid())
}
