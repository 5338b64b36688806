package watcher

import (
	"sync"
	"time"
)

// debouncer coalesces bursts of events into the last one.
type debouncer struct {
	duration time.Duration
	mutex    sync.Mutex
	timer    *time.Timer
	event    Event
}

func newDebouncer(duration time.Duration) *debouncer {
	return &debouncer{duration: duration}
}

// schedule records event and (re)arms the timer. It reports whether an
// earlier pending event was replaced.
func (d *debouncer) schedule(event Event, out chan<- Event) bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.event = event
	if d.timer != nil && d.timer.Stop() {
		d.timer.Reset(d.duration)
		return true
	}
	d.timer = time.AfterFunc(d.duration, func() {
		d.mutex.Lock()
		pending := d.event
		d.mutex.Unlock()
		select {
		case out <- pending:
		default:
		}
	})
	return false
}

func (d *debouncer) stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}
