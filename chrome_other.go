//go:build !windows

package main

import (
	"fyne.io/fyne/v2"
	"go.uber.org/zap"
)

// platformWindow keeps the OS decorations; there is no portable way to move
// a borderless window outside Windows.
func platformWindow(a fyne.App, log *zap.SugaredLogger) (fyne.Window, WindowMover) {
	log.Debug("Using decorated window")
	return a.NewWindow(appTitle), nil
}
