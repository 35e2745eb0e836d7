package retained

import (
	"log/slog"

	"github.com/agiangrant/viewkit"
	"github.com/agiangrant/viewkit/vsync"
)

// Context is handed to every widget constructor. It replaces process-wide
// singletons: everything a widget needs from its application is reached
// through it.
type Context struct {
	app *Application
}

// App returns the owning application.
func (c Context) App() *Application { return c.app }

// Provider returns the VSync provider.
func (c Context) Provider() *vsync.Provider { return c.app.provider }

// Config returns the current configuration.
func (c Context) Config() viewkit.Config { return c.app.cfg }

// Measurer returns the text measurer.
func (c Context) Measurer() TextMeasurer { return c.app.measurer }

// Logger returns the toolkit logger.
func (c Context) Logger() *slog.Logger {
	return viewkit.Logger().With("component", "retained")
}

// Valid reports whether the context belongs to an application.
func (c Context) Valid() bool { return c.app != nil }
