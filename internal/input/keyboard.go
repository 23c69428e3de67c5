package input

import (
	"unicode"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/termwm/internal/ui"
)

var specialKeys = map[rune]ui.Key{
	tea.KeyEnter:     ui.KeyEnter,
	tea.KeyEscape:    ui.KeyEsc,
	tea.KeyTab:       ui.KeyTab,
	tea.KeyBackspace: ui.KeyBackspace,
	tea.KeyDelete:    ui.KeyDelete,
	tea.KeySpace:     ui.KeySpace,
	tea.KeyUp:        ui.KeyUp,
	tea.KeyDown:      ui.KeyDown,
	tea.KeyLeft:      ui.KeyLeft,
	tea.KeyRight:     ui.KeyRight,
	tea.KeyHome:      ui.KeyHome,
	tea.KeyEnd:       ui.KeyEnd,
	tea.KeyPgUp:      ui.KeyPgUp,
	tea.KeyPgDown:    ui.KeyPgDown,
}

// TranslateKey converts a bubbletea key into a KeyEvent. The keystroke is
// the key's string form ("a", "A", "ctrl+c", "shift+tab"), which is what
// the keybinding registry matches against.
func TranslateKey(k tea.Key, phase ui.KeyPhase) ui.KeyEvent {
	if phase == ui.KeyPress && k.IsRepeat {
		phase = ui.KeyRepeat
	}
	ev := ui.KeyEvent{
		Mods:      translateMods(k.Mod),
		Phase:     phase,
		Keystroke: k.String(),
	}
	if code, ok := specialKeys[k.Code]; ok {
		ev.Code = code
		if code == ui.KeySpace {
			ev.Rune = ' '
		}
		return ev
	}
	switch {
	case k.Text != "":
		ev.Code = ui.KeyRune
		ev.Rune, _ = utf8.DecodeRuneInString(k.Text)
	case k.Code < tea.KeyExtended && unicode.IsPrint(k.Code):
		ev.Code = ui.KeyRune
		ev.Rune = k.Code
	default:
		ev.Code = ui.KeyOther
	}
	return ev
}

func translateMods(mod tea.KeyMod) ui.Modifiers {
	var m ui.Modifiers
	if mod.Contains(tea.ModShift) {
		m |= ui.ModShift
	}
	if mod.Contains(tea.ModAlt) {
		m |= ui.ModAlt
	}
	if mod.Contains(tea.ModCtrl) {
		m |= ui.ModCtrl
	}
	if mod.Contains(tea.ModSuper) {
		m |= ui.ModSuper
	}
	return m
}
