package gui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kamstrup/intmap"

	"github.com/qnkhuat/tetristerm/pkg/event"
)

type Keybinding struct {
	k tcell.Key
	r rune

	a event.GameAction
}

var keybindings = []*Keybinding{
	{k: tcell.KeyLeft, a: event.ActionMoveLeft},
	{r: 'h', a: event.ActionMoveLeft},
	{r: 'H', a: event.ActionMoveLeft},
	{k: tcell.KeyRight, a: event.ActionMoveRight},
	{r: 'l', a: event.ActionMoveRight},
	{r: 'L', a: event.ActionMoveRight},
	{k: tcell.KeyUp, a: event.ActionRotate},
	{r: 'k', a: event.ActionRotate},
	{r: 'K', a: event.ActionRotate},
	{r: 'x', a: event.ActionRotate},
	{r: 'X', a: event.ActionRotate},
	{k: tcell.KeyDown, a: event.ActionSoftDrop},
	{r: 'j', a: event.ActionSoftDrop},
	{r: 'J', a: event.ActionSoftDrop},
	{r: ' ', a: event.ActionHardDrop},
	{k: tcell.KeyEnter, a: event.ActionStart},
	{r: 's', a: event.ActionStart},
	{r: 'S', a: event.ActionStart},
}

// Keymap resolves key events to game actions.
type Keymap struct {
	keys  *intmap.Map[tcell.Key, event.GameAction]
	runes *intmap.Map[rune, event.GameAction]
}

func NewKeymap(bindings []*Keybinding) *Keymap {
	m := &Keymap{
		keys:  intmap.New[tcell.Key, event.GameAction](len(bindings)),
		runes: intmap.New[rune, event.GameAction](len(bindings)),
	}
	for _, b := range bindings {
		if b.r != 0 {
			m.runes.Put(b.r, b.a)
		} else {
			m.keys.Put(b.k, b.a)
		}
	}
	return m
}

// DefaultKeymap returns the standard arrow key and vim style bindings.
func DefaultKeymap() *Keymap {
	return NewKeymap(keybindings)
}

func (m *Keymap) Action(ev *tcell.EventKey) (event.GameAction, bool) {
	if ev.Key() == tcell.KeyRune {
		return m.runes.Get(ev.Rune())
	}
	return m.keys.Get(ev.Key())
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
