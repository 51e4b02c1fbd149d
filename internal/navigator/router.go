package navigator

// Handle applies ev to the engine according to the current mode and returns
// what the host should do next. Every (mode, event) pair is defined; events
// with no binding are ignored.
func (e *Engine) Handle(ev Event) Effect {
	switch ev := ev.(type) {
	case ResizeEvent:
		e.Resize(ev.Width, ev.Height)
	case ScrollEvent:
		e.Scroll(ev.Delta * e.scrollStep)
	case ClickEvent:
		e.Click(ev.Row, ev.Col)
	case KeyEvent:
		if e.mode == ModeSearch {
			return e.handleSearchKey(ev)
		}
		return e.handleNormalKey(ev)
	}
	return EffectNone
}

func (e *Engine) handleNormalKey(ev KeyEvent) Effect {
	switch ev.Key {
	case KeyUp:
		e.MoveCursor(-1)
	case KeyDown:
		e.MoveCursor(1)
	case KeyRight:
		e.ExpandSelected()
	case KeyLeft:
		e.CollapseToParent()
	case KeyPgUp:
		e.PageUp()
	case KeyPgDown:
		e.PageDown()
	case KeyHome:
		e.Top()
	case KeyEnd:
		e.Bottom()
	case KeyEsc, KeyCtrlC:
		return EffectQuit
	case KeyRune:
		return e.handleNormalRune(ev.Rune)
	}
	return EffectNone
}

func (e *Engine) handleNormalRune(r rune) Effect {
	switch r {
	case 'k':
		e.MoveCursor(-1)
	case 'j':
		e.MoveCursor(1)
	case 'l':
		e.ExpandSelected()
	case 'h':
		e.CollapseToParent()
	case 'g':
		e.Top()
	case 'G':
		e.Bottom()
	case 'E':
		e.ExpandAll()
	case 'C':
		e.CollapseAll()
	case 'n':
		e.NextMatch()
	case 'N':
		e.PrevMatch()
	case 'f':
		e.ToggleFilter()
	case '/':
		e.EnterSearch()
	case 'q':
		return EffectQuit
	case 'y':
		if _, ok := e.Selected(); ok {
			return EffectCopy
		}
	case '?':
		return EffectToggleHelp
	}
	return EffectNone
}

func (e *Engine) handleSearchKey(ev KeyEvent) Effect {
	switch ev.Key {
	case KeyRune:
		e.InsertRune(ev.Rune)
	case KeyBackspace:
		e.Backspace()
	case KeyEnter:
		e.ConfirmSearch()
	case KeyEsc, KeyCtrlC:
		e.CancelSearch()
	case KeyDown, KeyTab, KeyCtrlN:
		e.NextMatch()
	case KeyUp, KeyShiftTab, KeyCtrlP:
		e.PrevMatch()
	}
	return EffectNone
}
