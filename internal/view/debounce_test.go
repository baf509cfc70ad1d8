package view

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emitted struct {
	mu     sync.Mutex
	values []string
}

func (e *emitted) add(v string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.values = append(e.values, v)
}

func (e *emitted) get() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.values...)
}

func TestDebouncer_BurstEmitsLastValueOnce(t *testing.T) {
	var got emitted
	d := NewDebouncer(40*time.Millisecond, got.add)
	defer d.Stop()

	for _, v := range []string{"m", "me", "mee", "meet"} {
		d.Push(v)
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return len(got.get()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, []string{"meet"}, got.get())
}

func TestDebouncer_PausesEmitSeparately(t *testing.T) {
	var got emitted
	d := NewDebouncer(20*time.Millisecond, got.add)
	defer d.Stop()

	d.Push("a")
	require.Eventually(t, func() bool { return len(got.get()) == 1 }, time.Second, 5*time.Millisecond)

	d.Push("ab")
	require.Eventually(t, func() bool { return len(got.get()) == 2 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"a", "ab"}, got.get())
}

func TestDebouncer_StopDropsPendingAndLaterPushes(t *testing.T) {
	var got emitted
	d := NewDebouncer(20*time.Millisecond, got.add)

	d.Push("pending")
	d.Stop()
	d.Push("after")
	d.Stop()

	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, got.get())
}

func TestNewDebouncer_DefaultsInterval(t *testing.T) {
	var got emitted
	d := NewDebouncer(0, got.add)
	defer d.Stop()

	d.Push("x")
	time.Sleep(DefaultDebounce / 2)
	assert.Empty(t, got.get())

	require.Eventually(t, func() bool { return len(got.get()) == 1 }, 2*DefaultDebounce, 10*time.Millisecond)
}
