// Package app runs the session: it consumes the event bus, routes key
// presses through input translation and the state reducer, and owns
// every effect that needs the terminal or a subprocess.
package app

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/notare-dev/notare/internal/cache"
	"github.com/notare-dev/notare/internal/config"
	"github.com/notare-dev/notare/internal/events"
	"github.com/notare-dev/notare/internal/logging"
	"github.com/notare-dev/notare/internal/state"
	"github.com/notare-dev/notare/internal/ui/input"
	"github.com/notare-dev/notare/internal/ui/render"
)

// Options carries everything New needs besides the screen.
type Options struct {
	// Root is the note folder the session browses.
	Root string
	// Config is the loaded user configuration.
	Config *config.Config
	// Watcher reports external changes under Root. May be nil when the
	// folder could not be watched; the session then refreshes on demand
	// only.
	Watcher *events.Watcher
}

// Application owns one running session: screen, event bus, state tree.
// All state mutation happens on the goroutine that calls Run.
type Application struct {
	screen   tcell.Screen
	bus      *events.Bus
	cfg      *config.Config
	cache    *cache.Cache
	reducer  *state.Reducer
	renderer *render.Renderer
	session  *state.SessionState

	editor  []string
	pending []state.Action
}

// New builds the session over an initialized screen. The initial scan
// of root happens here, so the first Render has a populated listing.
func New(screen tcell.Screen, opts Options) *Application {
	bodies := cache.New(cache.DefaultCapacity)
	reducer := state.NewReducer(bodies, opts.Config)

	a := &Application{
		screen:   screen,
		bus:      events.NewBus(screen, opts.Watcher),
		cfg:      opts.Config,
		cache:    bodies,
		reducer:  reducer,
		renderer: render.NewRenderer(screen, opts.Config.Theme),
		editor:   editorCommand(opts.Config.Editor, os.Getenv, exec.LookPath),
	}

	a.session = reducer.NewSession(opts.Root)
	a.session.SetDispatch(a.enqueue)

	w, h := screen.Size()
	a.session.Width = w
	a.session.Height = h
	return a
}

// Run drives the session until quit. It blocks the calling goroutine.
func (a *Application) Run() {
	a.render()
	for ev := range a.bus.Events() {
		a.handle(ev)
		if a.session.ShouldQuit {
			return
		}
		a.render()
	}
}

// Close releases the bus and the terminal. Call after Run returns.
func (a *Application) Close() {
	a.bus.Close()
	a.screen.Fini()
}

func (a *Application) handle(ev events.Event) {
	switch ev := ev.(type) {
	case events.KeyEvent:
		if action := input.Translate(a.session.Mode, ev.Key); action != nil {
			a.dispatch(action)
		}
	case events.ResizeEvent:
		a.apply(state.ResizeAction{Width: ev.Width, Height: ev.Height})
		a.screen.Sync()
	case events.TickEvent:
		a.session.Tick()
	case events.FileChangedEvent:
		a.apply(state.RescanAction{})
	}
	a.drain()
}

// dispatch routes one action: terminal, subprocess and clipboard
// effects stay here, everything else goes through the reducer.
func (a *Application) dispatch(action state.Action) {
	switch act := action.(type) {
	case state.QuitAction:
		a.quit()
	case state.SyncAction:
		a.runSync()
	case state.CopyContentAction:
		a.copyContent()
	case state.CopyPathAction:
		a.copyPath()
	case state.OpenEditorAction:
		a.openEditor(act.Path)
	default:
		a.apply(action)
	}
}

func (a *Application) apply(action state.Action) {
	if _, err := a.reducer.Reduce(a.session, action); err != nil {
		logging.L().Warn("action failed",
			zap.String("action", fmt.Sprintf("%T", action)),
			zap.Error(err))
	}
}

// enqueue collects actions the reducer hands back mid-reduce, such as
// opening the editor on a freshly created note.
func (a *Application) enqueue(action state.Action) {
	a.pending = append(a.pending, action)
}

// drain runs queued follow-ups. Everything stays on the controller
// goroutine, so a follow-up may enqueue more work.
func (a *Application) drain() {
	for len(a.pending) > 0 {
		next := a.pending[0]
		a.pending = a.pending[1:]
		a.dispatch(next)
	}
}

func (a *Application) render() {
	a.renderer.Render(a.session, a.cache)
}
