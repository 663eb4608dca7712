package events

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	return screen
}

// waitForEvent reads events until match accepts one or the deadline
// passes.
func waitForEvent(t *testing.T, bus *Bus, timeout time.Duration, match func(Event) bool) Event {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case ev := <-bus.Events():
			if match(ev) {
				return ev
			}
		case <-deadline:
			t.Fatalf("no matching event within %v", timeout)
			return nil
		}
	}
}

func TestBusEmitsTicksWhenIdle(t *testing.T) {
	screen := newSimScreen(t)
	bus := NewBus(screen, nil)
	defer bus.Close()

	waitForEvent(t, bus, 2*time.Second, func(ev Event) bool {
		_, ok := ev.(TickEvent)
		return ok
	})
}

func TestBusForwardsKeyPresses(t *testing.T) {
	screen := newSimScreen(t)
	bus := NewBus(screen, nil)
	defer bus.Close()

	screen.InjectKey(tcell.KeyRune, 'j', tcell.ModNone)

	ev := waitForEvent(t, bus, 2*time.Second, func(ev Event) bool {
		_, ok := ev.(KeyEvent)
		return ok
	})
	key := ev.(KeyEvent).Key
	if key.Key() != tcell.KeyRune || key.Rune() != 'j' {
		t.Errorf("key event = %v %q, want rune j", key.Key(), key.Rune())
	}
}

func TestBusPauseSuppressesEmission(t *testing.T) {
	screen := newSimScreen(t)
	bus := NewBus(screen, nil)
	defer bus.Close()

	bus.Pause()

	// Drain anything emitted before the pause took effect.
	for quiet := false; !quiet; {
		select {
		case <-bus.Events():
		case <-time.After(150 * time.Millisecond):
			quiet = true
		}
	}

	select {
	case ev := <-bus.Events():
		t.Fatalf("paused bus emitted %T", ev)
	case <-time.After(400 * time.Millisecond):
	}

	bus.Resume()
	waitForEvent(t, bus, 2*time.Second, func(ev Event) bool {
		_, ok := ev.(TickEvent)
		return ok
	})
}

func TestWatcherSignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "inbox.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Events():
	case <-time.After(2 * time.Second):
		t.Fatalf("no change signal after write")
	}
}

func TestWatcherFollowsNewDirectories(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Stop()

	sub := filepath.Join(dir, "work")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.Events():
	case <-time.After(2 * time.Second):
		t.Fatalf("no signal for new directory")
	}

	if err := os.WriteFile(filepath.Join(sub, "plan.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.Events():
	case <-time.After(2 * time.Second):
		t.Fatalf("no signal for write inside new directory")
	}
}

func TestWatcherIgnoresHiddenDirectories(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Stop()

	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Events():
		t.Fatalf("hidden directory creation produced a signal")
	case <-time.After(400 * time.Millisecond):
	}

	if err := os.WriteFile(filepath.Join(dir, "visible.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.Events():
	case <-time.After(2 * time.Second):
		t.Fatalf("visible write after hidden mkdir produced no signal")
	}
}
