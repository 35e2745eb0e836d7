package retained

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/agiangrant/viewkit"
	"github.com/agiangrant/viewkit/vsync"
)

// Application is the UI-thread state shared by all windows: configuration,
// the VSync provider, the focus manager, the message cycler and the
// in-app clipboard. All methods except Post must be called on the UI
// goroutine.
type Application struct {
	cfg       viewkit.Config
	provider  *vsync.Provider
	measurer  TextMeasurer
	focus     FocusManager
	cycler    *Cycler
	windows   []*Window
	clipboard string

	now       func() time.Time
	lastTick  time.Time
	quit      chan struct{}
	quitting  bool
	onConfigs []func(viewkit.Config)
}

// Option configures an Application.
type Option func(*Application)

// WithMeasurer replaces the default text measurer.
func WithMeasurer(m TextMeasurer) Option {
	return func(a *Application) { a.measurer = m }
}

// WithClock replaces time.Now, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(a *Application) { a.now = now }
}

// NewApplication returns an application with cfg.
func NewApplication(cfg viewkit.Config, opts ...Option) *Application {
	a := &Application{
		cfg:      cfg,
		provider: vsync.NewProvider(),
		cycler:   NewCycler(),
		now:      time.Now,
		quit:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.measurer == nil {
		a.measurer = NewCachedMeasurer(NewFaceMeasurer(nil), 10000)
	}
	return a
}

// Context returns the context widgets of this application are built with.
func (a *Application) Context() Context { return Context{app: a} }

func (a *Application) Config() viewkit.Config    { return a.cfg }
func (a *Application) Provider() *vsync.Provider { return a.provider }
func (a *Application) Focus() *FocusManager      { return &a.focus }
func (a *Application) Cycler() *Cycler           { return a.cycler }
func (a *Application) Measurer() TextMeasurer    { return a.measurer }
func (a *Application) Windows() []*Window        { return slices.Clone(a.windows) }
func (a *Application) Now() time.Time            { return a.now() }
func (a *Application) Clipboard() string         { return a.clipboard }
func (a *Application) SetClipboard(s string)     { a.clipboard = s }

// OnConfig registers fn to run after every ApplyConfig.
func (a *Application) OnConfig(fn func(viewkit.Config)) {
	a.onConfigs = append(a.onConfigs, fn)
}

// Post runs fn on the UI goroutine. Safe for concurrent use.
func (a *Application) Post(fn func()) bool { return a.cycler.Post(fn) }

// ApplyConfig installs a new configuration and notifies OnConfig callbacks.
// Use Post to apply a config loaded on another goroutine.
func (a *Application) ApplyConfig(cfg viewkit.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	for _, fn := range a.onConfigs {
		fn(cfg)
	}
	return nil
}

// WatchConfig reloads the config file at path whenever it changes and
// applies it on the UI goroutine. It blocks until ctx is done; run it on
// its own goroutine.
func (a *Application) WatchConfig(ctx context.Context, path string) error {
	return viewkit.Watch(ctx, path, func(cfg viewkit.Config) {
		a.Post(func() {
			if err := a.ApplyConfig(cfg); err != nil {
				viewkit.Logger().Error("reloaded config rejected", "path", path, "err", err)
			}
		})
	})
}

// NewWindow creates a window on native.
func (a *Application) NewWindow(native WindowNative, title string) (*Window, error) {
	w := newWindow(a, native, title)
	a.windows = append(a.windows, w)
	if err := w.Create(); err != nil {
		a.removeWindow(w)
		return nil, err
	}
	return w, nil
}

func (a *Application) removeWindow(w *Window) {
	a.windows = slices.DeleteFunc(a.windows, func(x *Window) bool { return x == w })
	if a.focus.win == w {
		a.focus.FocusOn(nil)
	}
}

// Tick runs queued messages and one VSync tick at now, if anything waits
// for one. It is the whole frame loop for tests and headless tools.
func (a *Application) Tick(now time.Time) {
	a.cycler.Drain()
	if !a.provider.Active() {
		a.lastTick = now
		return
	}
	interval := time.Duration(0)
	if !a.lastTick.IsZero() {
		interval = now.Sub(a.lastTick)
	}
	a.lastTick = now
	a.provider.Tick(now, float64(a.cfg.VSync.FrameRate), interval)
}

// Run drives the application from a software refresh clock until ctx is
// done or Quit is called.
func (a *Application) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	source := vsync.NewSource(a.cfg.VSync.FrameRate)
	frames := source.Frames(ctx)
	log := viewkit.Logger().With("component", "app")
	log.Info("application running", "frame_rate", source.Freq())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.quit:
			log.Info("application quit")
			return nil
		case <-a.cycler.Notify():
			a.cycler.Drain()
		case f, ok := <-frames:
			if !ok {
				return fmt.Errorf("refresh source stopped: %w", context.Cause(ctx))
			}
			a.cycler.Drain()
			if a.provider.Active() {
				a.provider.Tick(f.Start, f.Freq, f.Interval)
			}
		}
	}
}

// Quit makes Run return.
func (a *Application) Quit() {
	if a.quitting {
		return
	}
	a.quitting = true
	close(a.quit)
}
