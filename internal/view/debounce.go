package view

import (
	"sync"
	"time"

	"github.com/bep/debounce"
)

// DefaultDebounce is how long search input must stay unchanged before it is
// committed.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer emits the last pushed value once no new value has arrived for the
// configured interval.
type Debouncer struct {
	mu        sync.Mutex
	debounced func(f func())
	emit      func(string)
	stopped   bool
}

func NewDebouncer(after time.Duration, emit func(string)) *Debouncer {
	if after <= 0 {
		after = DefaultDebounce
	}
	return &Debouncer{debounced: debounce.New(after), emit: emit}
}

// Push restarts the delay with v as the pending value.
func (d *Debouncer) Push(v string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.debounced(func() { d.fire(v) })
}

func (d *Debouncer) fire(v string) {
	d.mu.Lock()
	stopped := d.stopped
	d.mu.Unlock()

	if stopped {
		return
	}
	d.emit(v)
}

// Stop cancels the pending value. Later pushes are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.stopped = true
	// replace whatever is pending with a no-op
	d.debounced(func() {})
}
