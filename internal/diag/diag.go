// Package diag reports configuration mistakes made against the view tree.
//
// In release builds a failed check is logged at warn level and the caller
// degrades (zero-size layout, ignored insertion, ignored capture). Builds
// tagged viewkit_debug panic instead so the mistake is caught where it is made.
package diag

import (
	"fmt"

	"github.com/agiangrant/viewkit"
)

// Check reports a violated expectation when ok is false and returns ok.
// args are slog key/value pairs.
func Check(ok bool, msg string, args ...any) bool {
	if ok {
		return true
	}
	viewkit.Logger().Warn(msg, args...)
	if debugAsserts {
		panic(fmt.Sprint(append([]any{msg, " "}, args...)...))
	}
	return false
}

// Enabled reports whether checks panic.
func Enabled() bool { return debugAsserts }
