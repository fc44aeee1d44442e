//go:build windows

package main

import (
	"unsafe"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"
	"fyne.io/fyne/v2/driver/desktop"
	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

var (
	user32            = windows.NewLazySystemDLL("user32.dll")
	procGetWindowRect = user32.NewProc("GetWindowRect")
	procSetWindowPos  = user32.NewProc("SetWindowPos")
	procShowWindow    = user32.NewProc("ShowWindow")
)

const (
	swpNoSize     = 0x0001
	swpNoZOrder   = 0x0004
	swpNoActivate = 0x0010
	swMinimize    = 6
)

type winRect struct {
	Left, Top, Right, Bottom int32
}

// platformWindow returns a borderless window moved through user32.
func platformWindow(a fyne.App, log *zap.SugaredLogger) (fyne.Window, WindowMover) {
	drv, ok := a.Driver().(desktop.Driver)
	if !ok {
		return a.NewWindow(appTitle), nil
	}
	w := drv.CreateSplashWindow()
	return w, &win32Mover{window: w, log: log}
}

type win32Mover struct {
	window fyne.Window
	log    *zap.SugaredLogger
}

func (m *win32Mover) withHWND(fn func(hwnd uintptr)) {
	nw, ok := m.window.(nativeWindow)
	if !ok {
		m.log.Debug("Window has no native handle")
		return
	}
	nw.RunNative(func(ctx any) {
		switch c := ctx.(type) {
		case driver.WindowsWindowContext:
			fn(c.HWND)
		case *driver.WindowsWindowContext:
			fn(c.HWND)
		}
	})
}

func (m *win32Mover) MoveBy(dx, dy float32) {
	scale := m.window.Canvas().Scale()
	m.withHWND(func(hwnd uintptr) {
		var r winRect
		if ok, _, err := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r))); ok == 0 {
			m.log.Debugw("GetWindowRect failed", "error", err)
			return
		}
		x := r.Left + int32(dx*scale)
		y := r.Top + int32(dy*scale)
		if ok, _, err := procSetWindowPos.Call(hwnd, 0, uintptr(x), uintptr(y), 0, 0,
			swpNoSize|swpNoZOrder|swpNoActivate); ok == 0 {
			m.log.Debugw("SetWindowPos failed", "error", err)
		}
	})
}

func (m *win32Mover) Minimize() {
	m.withHWND(func(hwnd uintptr) {
		procShowWindow.Call(hwnd, swMinimize)
	})
}
