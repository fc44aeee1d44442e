package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"
)

// WindowMover moves and minimises a window that has no OS title bar.
type WindowMover interface {
	MoveBy(dx, dy float32)
	Minimize()
}

// nativeWindow matches fyne's driver.NativeWindow.
type nativeWindow interface {
	RunNative(func(context any))
}

// newMainWindow creates the application window. The returned mover is nil
// when the platform keeps its own window decorations.
func newMainWindow(a fyne.App, cfg Config, log *zap.SugaredLogger) (fyne.Window, WindowMover) {
	w, mover := platformWindow(a, log)
	w.SetTitle(appTitle)
	w.SetMaster()
	w.Resize(cfg.WindowSize)
	w.SetFixedSize(true)
	return w, mover
}

// dragHandle moves the window while the pointer is dragged over content.
// The offset is measured from where the drag started, so the window follows
// the pointer even though every move shifts the window's own coordinates.
type dragHandle struct {
	widget.BaseWidget
	content fyne.CanvasObject
	mover   WindowMover

	dragging bool
	anchor   fyne.Position
}

var _ fyne.Draggable = (*dragHandle)(nil)

func newDragHandle(content fyne.CanvasObject, mover WindowMover) *dragHandle {
	d := &dragHandle{content: content, mover: mover}
	d.ExtendBaseWidget(d)
	return d
}

func (d *dragHandle) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(d.content)
}

func (d *dragHandle) Dragged(ev *fyne.DragEvent) {
	if d.mover == nil {
		return
	}
	if !d.dragging {
		d.anchor = ev.Position.Subtract(ev.Dragged)
		d.dragging = true
	}
	diff := ev.Position.Subtract(d.anchor)
	d.mover.MoveBy(diff.X, diff.Y)
}

func (d *dragHandle) DragEnd() {
	d.dragging = false
}
