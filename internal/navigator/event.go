package navigator

// Mode is the input mode of the engine.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
)

func (m Mode) String() string {
	if m == ModeSearch {
		return "search"
	}
	return "normal"
}

// Key is a normalized key code. Printable characters use KeyRune.
type Key int

const (
	KeyRune Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEsc
	KeyBackspace
	KeyTab
	KeyShiftTab
	KeyPgUp
	KeyPgDown
	KeyHome
	KeyEnd
	KeyCtrlC
	KeyCtrlN
	KeyCtrlP
)

// Event is the union of input events understood by the engine.
type Event interface {
	isEvent()
}

// KeyEvent is a key press. Rune is set when Key is KeyRune.
type KeyEvent struct {
	Key  Key
	Rune rune
}

// ClickEvent is a primary-button press at a screen cell.
type ClickEvent struct {
	Row int
	Col int
}

// ScrollEvent is a wheel gesture. Delta counts notches, negative for up.
type ScrollEvent struct {
	Delta int
	Row   int
	Col   int
}

// ResizeEvent carries the new terminal size.
type ResizeEvent struct {
	Width  int
	Height int
}

func (KeyEvent) isEvent()    {}
func (ClickEvent) isEvent()  {}
func (ScrollEvent) isEvent() {}
func (ResizeEvent) isEvent() {}

// Rune is shorthand for a printable key event.
func Rune(r rune) KeyEvent {
	return KeyEvent{Key: KeyRune, Rune: r}
}

// Effect is a request from the engine to its host.
type Effect int

const (
	EffectNone Effect = iota
	EffectQuit
	EffectCopy
	EffectToggleHelp
)

// Layout is the number of screen cells taken by chrome around the row area.
type Layout struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}
