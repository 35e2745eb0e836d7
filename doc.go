// Package viewkit holds the process-wide pieces of the viewkit toolkit:
// configuration, config hot reload and the shared logger.
//
// The toolkit itself lives in sub-packages:
//   - retained: the view tree, layouts, input dispatch, focus and windows
//   - anim: animators and the animation director
//   - vsync: the refresh callback registry that drives animation and drawing
//   - text: the editable text model and text breakers
//   - render: the canvas contract and the recording canvas
//   - thumb: the background thumbnail fetcher
//   - inflate: TOML layout descriptions
//
// All view tree work happens on one goroutine, the one running
// retained.Application.Run (or calling Application.Tick in tests).
package viewkit
