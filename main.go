package main

import (
	"fyne.io/fyne/v2/app"
)

func main() {
	cfg := DefaultConfig()
	log := newLogger()
	defer log.Sync()

	a := app.NewWithID(appID)
	a.Settings().SetTheme(newReceiverTheme(cfg.Style))

	w, mover := newMainWindow(a, cfg, log)
	ui := NewAppUI(w, cfg, mover, newSystemPorts(log), openSerialPort, log)
	ui.Start()

	w.ShowAndRun()
}
