// Package events merges terminal input, file change notifications and
// idle ticks into one ordered stream for the session loop.
package events

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
)

// TickInterval is how long the bus waits for input before emitting a
// TickEvent. Spinner animation and other periodic work hang off it.
const TickInterval = 250 * time.Millisecond

// pausePoll is how often a paused bus rechecks the pause flag.
const pausePoll = 50 * time.Millisecond

// Event is a marker interface for bus events.
type Event interface{}

// KeyEvent carries a terminal key press.
type KeyEvent struct {
	Key *tcell.EventKey
}

// ResizeEvent carries the new terminal dimensions.
type ResizeEvent struct {
	Width  int
	Height int
}

// TickEvent fires when TickInterval passes without input.
type TickEvent struct{}

// FileChangedEvent reports that something under the note folder
// changed on disk.
type FileChangedEvent struct{}

// Bus owns the producer goroutine that serializes all event sources.
// While paused it emits nothing, so a suspended screen can hand the
// terminal to an editor without competition.
type Bus struct {
	screen  tcell.Screen
	watcher *Watcher

	events chan Event
	raw    chan tcell.Event
	paused atomic.Bool
	done   chan struct{}
	once   sync.Once
}

// NewBus starts the producer. watcher may be nil when the note folder
// could not be watched; the bus then runs on input and ticks alone.
func NewBus(screen tcell.Screen, watcher *Watcher) *Bus {
	b := &Bus{
		screen:  screen,
		watcher: watcher,
		events:  make(chan Event),
		raw:     make(chan tcell.Event),
		done:    make(chan struct{}),
	}

	go b.poll()
	go b.run()
	return b
}

// Events is the single ordered stream consumed by the session loop.
func (b *Bus) Events() <-chan Event {
	return b.events
}

// Pause stops emission until Resume. Safe to call from any goroutine.
func (b *Bus) Pause() {
	b.paused.Store(true)
}

// Resume restarts emission after a Pause.
func (b *Bus) Resume() {
	b.paused.Store(false)
}

// Close tears the bus down. The watcher, if any, is stopped too.
func (b *Bus) Close() {
	b.once.Do(func() {
		close(b.done)
		if b.watcher != nil {
			b.watcher.Stop()
		}
	})
}

// poll pumps tcell events into the raw channel. PollEvent returns nil
// once the screen is finalized, which ends the goroutine.
func (b *Bus) poll() {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case b.raw <- ev:
		case <-b.done:
			return
		}
	}
}

func (b *Bus) run() {
	timer := time.NewTimer(TickInterval)
	defer timer.Stop()

	var watchCh <-chan struct{}
	if b.watcher != nil {
		watchCh = b.watcher.Events()
	}

	for {
		if b.paused.Load() {
			select {
			case <-b.done:
				return
			case <-time.After(pausePoll):
			}
			continue
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(TickInterval)

		select {
		case <-b.done:
			return
		case ev := <-b.raw:
			switch tev := ev.(type) {
			case *tcell.EventKey:
				b.emit(KeyEvent{Key: tev})
			case *tcell.EventResize:
				w, h := tev.Size()
				b.emit(ResizeEvent{Width: w, Height: h})
			}
		case _, ok := <-watchCh:
			if !ok {
				watchCh = nil
				continue
			}
			b.emit(FileChangedEvent{})
		case <-timer.C:
			b.emit(TickEvent{})
		}
	}
}

func (b *Bus) emit(ev Event) {
	select {
	case b.events <- ev:
	case <-b.done:
	}
}
