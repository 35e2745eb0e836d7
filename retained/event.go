package retained

import "time"

// EventType identifies the kind of input event.
type EventType uint8

const (
	EventNone EventType = iota

	// Pointer events
	EventDown
	EventMove
	EventUp
	EventWheel
	EventCancel
	// EventLeaveView tells a view the pointer left it, or that the
	// gesture it was tracking moved elsewhere.
	EventLeaveView
	// EventLeaveWindow is sent by the platform when the pointer leaves.
	EventLeaveWindow

	// Keyboard events
	EventKeyDown
	EventKeyUp
	EventChar
)

func (t EventType) String() string {
	switch t {
	case EventDown:
		return "down"
	case EventMove:
		return "move"
	case EventUp:
		return "up"
	case EventWheel:
		return "wheel"
	case EventCancel:
		return "cancel"
	case EventLeaveView:
		return "leave-view"
	case EventLeaveWindow:
		return "leave-window"
	case EventKeyDown:
		return "key-down"
	case EventKeyUp:
		return "key-up"
	case EventChar:
		return "char"
	}
	return "none"
}

// PointerType says which device produced a pointer event.
type PointerType uint8

const (
	PointerMouse PointerType = iota
	PointerTouch
)

// MouseButton identifies which mouse button was pressed.
type MouseButton uint8

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

// Modifier keys
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper // Cmd on Mac, Win on Windows
)

func (m Modifiers) Shift() bool { return m&ModShift != 0 }
func (m Modifiers) Ctrl() bool  { return m&ModCtrl != 0 }
func (m Modifiers) Alt() bool   { return m&ModAlt != 0 }
func (m Modifiers) Super() bool { return m&ModSuper != 0 }

// Key is a logical key for keyboard events.
type Key uint16

const (
	KeyNone Key = iota
	KeyTab
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyA
	KeyC
	KeyV
	KeyX
	KeyY
	KeyZ
)

// InputEvent is a pointer or keyboard event travelling through the tree.
//
// X and Y are local to the view currently receiving the event; RawX and
// RawY stay in window coordinates.
type InputEvent struct {
	Type    EventType
	Pointer PointerType
	Button  MouseButton
	Mods    Modifiers
	Time    time.Time

	X, Y       float32
	RawX, RawY float32
	Wheel      float32

	Key  Key
	Char rune

	// Outside is set on copies delivered to views that asked for input
	// happening outside their bounds.
	Outside bool
	// Clicks counts consecutive downs within the double click window.
	Clicks int
}

// IsKeyboard reports whether e is a keyboard event.
func (e *InputEvent) IsKeyboard() bool {
	return e.Type == EventKeyDown || e.Type == EventKeyUp || e.Type == EventChar
}

// IsPointer reports whether e is a pointer event.
func (e *InputEvent) IsPointer() bool {
	return e.Type != EventNone && !e.IsKeyboard()
}

// IsMouse reports whether e is a mouse event.
func (e *InputEvent) IsMouse() bool { return e.IsPointer() && e.Pointer == PointerMouse }

// IsTouch reports whether e is a touch event.
func (e *InputEvent) IsTouch() bool { return e.IsPointer() && e.Pointer == PointerTouch }

// EndsGesture reports whether e terminates a down/move/up sequence.
func (e *InputEvent) EndsGesture() bool {
	switch e.Type {
	case EventUp, EventCancel, EventLeaveView, EventLeaveWindow:
		return true
	}
	return false
}

// Offset moves the local coordinates by (-dx, -dy), turning parent-local
// coordinates into child-local ones.
func (e *InputEvent) Offset(dx, dy float32) {
	e.X -= dx
	e.Y -= dy
}

// Copy returns a shallow copy of e.
func (e *InputEvent) Copy() *InputEvent {
	c := *e
	return &c
}
