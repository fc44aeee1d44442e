package main

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"
)

// AppUI holds all UI state and widgets.
type AppUI struct {
	window fyne.Window
	cfg    Config
	mover  WindowMover
	ctrl   *Controller
	log    *zap.SugaredLogger

	// Widgets
	portSelect  *widget.Select
	connectBtn  *widget.Button
	copyBtn     *widget.Button
	minimizeBtn *widget.Button
	closeBtn    *widget.Button
	output      *widget.List
	status      *canvas.Text

	// State
	mu    sync.Mutex
	lines []LogLine
}

var _ Display = (*AppUI)(nil)

// NewAppUI builds the window content and the controller behind it.
// mover may be nil when the window keeps its OS decorations.
func NewAppUI(window fyne.Window, cfg Config, mover WindowMover, ports PortLister, open PortOpener, log *zap.SugaredLogger) *AppUI {
	ui := &AppUI{
		window: window,
		cfg:    cfg,
		mover:  mover,
		log:    log,
	}
	ui.ctrl = NewController(cfg, ui, ports, open, log)
	ui.build()
	return ui
}

func (ui *AppUI) build() {
	style := ui.cfg.Style

	// Title bar
	title := canvas.NewText(appTitle, style.Foreground)
	title.TextSize = style.TitleTextSize
	ui.minimizeBtn = widget.NewButton("-", func() {
		if ui.mover != nil {
			ui.mover.Minimize()
		}
	})
	ui.closeBtn = widget.NewButton("X", func() {
		ui.window.Close()
	})
	if ui.mover == nil {
		ui.minimizeBtn.Hide()
	}
	titleBar := newDragHandle(container.NewHBox(
		title,
		layout.NewSpacer(),
		ui.minimizeBtn,
		ui.closeBtn,
	), ui.mover)

	// Port selection
	ui.portSelect = widget.NewSelect([]string{}, nil)
	ui.portSelect.PlaceHolder = "Select serial port"

	ui.connectBtn = widget.NewButton("Connect", func() {
		ui.ctrl.Connect()
	})

	ui.copyBtn = widget.NewButton("Copy log", func() {
		ui.copyLog()
	})

	// Output list
	ui.output = widget.NewList(
		func() int {
			ui.mu.Lock()
			defer ui.mu.Unlock()
			return len(ui.lines)
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.TextStyle = fyne.TextStyle{Monospace: style.LogLineMonospace}
			label.Alignment = fyne.TextAlignCenter
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			ui.mu.Lock()
			var text string
			if id < len(ui.lines) {
				text = ui.lines[id].Text
			}
			ui.mu.Unlock()
			obj.(*widget.Label).SetText(text)
		},
	)

	ui.status = canvas.NewText(statusSelectPort.Text, style.statusColor(statusSelectPort.Kind))
	ui.status.Alignment = fyne.TextAlignCenter

	// Layout
	portRow := container.NewBorder(nil, nil, nil,
		container.NewHBox(ui.connectBtn, ui.copyBtn),
		ui.portSelect,
	)
	top := container.NewVBox(titleBar, portRow)
	content := container.NewBorder(top, ui.status, nil, nil, ui.output)

	background := canvas.NewRectangle(style.Background)
	background.CornerRadius = style.CornerRadius
	ui.window.SetContent(container.NewStack(background, container.NewPadded(content)))
}

// Start performs the first refresh and keeps refreshing until the window closes.
func (ui *AppUI) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	ui.window.SetOnClosed(func() {
		cancel()
		ui.ctrl.Close()
	})
	ui.ctrl.Refresh()
	go ui.refreshLoop(ctx)
}

func (ui *AppUI) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(ui.cfg.RefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fyne.Do(ui.ctrl.Refresh)
		}
	}
}

// SetPorts replaces the port options, keeping the current selection when
// that port is still present.
func (ui *AppUI) SetPorts(ports []string) {
	current := ui.portSelect.Selected
	ui.portSelect.Options = ports
	switch {
	case len(ports) == 0:
		ui.portSelect.ClearSelected()
	case !slices.Contains(ports, current):
		ui.portSelect.SetSelected(ports[0])
	}
	ui.portSelect.Refresh()
}

func (ui *AppUI) SelectedPort() string {
	return ui.portSelect.Selected
}

func (ui *AppUI) SetStatus(s Status) {
	ui.status.Text = s.Text
	ui.status.Color = ui.cfg.Style.statusColor(s.Kind)
	ui.status.Refresh()
}

// AppendLine queues line onto the UI goroutine.
func (ui *AppUI) AppendLine(line LogLine) {
	fyne.Do(func() {
		ui.mu.Lock()
		ui.lines = append(ui.lines, line)
		ui.mu.Unlock()

		ui.output.Refresh()
		ui.output.ScrollToBottom()
	})
}

func (ui *AppUI) ShowError(err error) {
	dialog.ShowError(err, ui.window)
}

// Lines returns a copy of the log.
func (ui *AppUI) Lines() []LogLine {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return slices.Clone(ui.lines)
}

func (ui *AppUI) copyLog() {
	lines := ui.Lines()
	if len(lines) == 0 {
		dialog.ShowInformation("Copy log", "No data to copy.", ui.window)
		return
	}

	var b strings.Builder
	if err := WriteLogCSV(&b, lines, true); err != nil {
		dialog.ShowError(err, ui.window)
		return
	}
	fyne.CurrentApp().Clipboard().SetContent(b.String())
	ui.log.Debugw("Copied log to clipboard", "lines", len(lines))
}
