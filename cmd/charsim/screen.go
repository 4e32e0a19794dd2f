// cmd/charsim/screen.go
package main

import (
	"github.com/gdamore/tcell/v2"
)

// openScreen initializes the terminal and calls quit when the user presses
// Escape, Ctrl-C or q.
func openScreen(quit func()) (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			if isQuitKey(ev) {
				quit()
				return
			}
		}
	}()
	return screen, nil
}

func isQuitKey(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return key.Rune() == 'q'
	}
	return false
}
