package main

import (
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"
)

type StatusKind int

const (
	StatusDefault StatusKind = iota
	StatusSuccess
	StatusError
)

// Status is the single line of text shown under the log.
type Status struct {
	Text string
	Kind StatusKind
}

var (
	statusNoPorts    = Status{Text: "No serial ports detected.", Kind: StatusError}
	statusSelectPort = Status{Text: "Select a serial port to connect", Kind: StatusDefault}
)

func connectedStatus(name string) Status {
	return Status{Text: "Connected to " + name, Kind: StatusSuccess}
}

// Display is the surface the controller drives. AppendLine is called from
// the reader goroutine; every other method is called on the UI goroutine.
type Display interface {
	SetPorts(ports []string)
	SelectedPort() string
	SetStatus(s Status)
	AppendLine(line LogLine)
	ShowError(err error)
}

type ConnectionState int

const (
	Disconnected ConnectionState = iota
	Connected
)

func (s ConnectionState) String() string {
	if s == Connected {
		return "connected"
	}
	return "disconnected"
}

// Controller owns the open serial port and its reader.
type Controller struct {
	cfg     Config
	display Display
	ports   PortLister
	open    PortOpener
	log     *zap.SugaredLogger

	mu       sync.Mutex
	port     Port
	portName string
	reader   *Reader
}

func NewController(cfg Config, display Display, ports PortLister, open PortOpener, log *zap.SugaredLogger) *Controller {
	return &Controller{
		cfg:     cfg,
		display: display,
		ports:   ports,
		open:    open,
		log:     log,
	}
}

// Refresh re-enumerates ports and updates the port list and status.
func (c *Controller) Refresh() {
	ports := c.ports.AvailablePorts()
	c.display.SetPorts(ports)
	if len(ports) == 0 {
		c.display.SetStatus(statusNoPorts)
		return
	}

	selected := c.display.SelectedPort()

	c.mu.Lock()
	name := c.portName
	live := c.port != nil &&
		name == selected &&
		slices.Contains(ports, name) &&
		c.reader != nil && c.reader.Running()
	c.mu.Unlock()

	if live {
		c.display.SetStatus(connectedStatus(name))
		return
	}
	c.display.SetStatus(statusSelectPort)
}

// Connect opens the selected port, replacing any previous connection.
// The previous reader is stopped and its port closed before the new port is
// opened, so a failed Connect leaves the controller Disconnected rather than
// on the old port. Errors are shown on the display as well as returned.
func (c *Controller) Connect() error {
	name := c.display.SelectedPort()
	if name == "" {
		return c.fail(ErrNoPortSelected)
	}
	if err := c.connect(name); err != nil {
		return c.fail(err)
	}
	c.display.SetStatus(connectedStatus(name))
	return nil
}

func (c *Controller) connect(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closeLocked()

	p, err := c.open(name, c.cfg.serialMode())
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrOpenFailed, name, err)
	}
	if err := p.SetReadTimeout(c.cfg.ReadTimeout); err != nil {
		p.Close()
		return fmt.Errorf("%w %s: set read timeout: %w", ErrOpenFailed, name, err)
	}
	// Drop anything the device sent before we were listening.
	if err := p.ResetInputBuffer(); err != nil {
		p.Close()
		return fmt.Errorf("%w %s: flush input: %w", ErrOpenFailed, name, err)
	}

	c.port = p
	c.portName = name
	c.reader = StartReader(p, c.display.AppendLine, c.log.With("port", name))
	c.log.Infow("Connected", "port", name, "baud", c.cfg.BaudRate)
	return nil
}

func (c *Controller) fail(err error) error {
	c.log.Warnw("Connect failed", "error", err)
	c.display.ShowError(err)
	c.display.SetStatus(statusSelectPort)
	return err
}

// Close stops the reader and closes the port. Safe to call when not connected.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

// State reports the connection state and the name of the open port.
func (c *Controller) State() (ConnectionState, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.port == nil {
		return Disconnected, ""
	}
	return Connected, c.portName
}

// closeLocked stops the reader, closes the port and waits a bounded time for
// the reader goroutine to exit. Must be called with c.mu held.
func (c *Controller) closeLocked() {
	if c.reader != nil {
		c.reader.Stop()
	}
	if c.port != nil {
		// Closing unblocks a read in progress.
		if err := c.port.Close(); err != nil {
			c.log.Debugw("Error closing port", "port", c.portName, "error", err)
		}
	}
	if c.reader != nil && !c.reader.Wait(c.cfg.StopTimeout) {
		c.log.Warnw("Reader did not exit in time", "port", c.portName, "timeout", c.cfg.StopTimeout)
	}
	if c.port != nil {
		c.log.Infow("Disconnected", "port", c.portName)
	}
	c.port = nil
	c.portName = ""
	c.reader = nil
}
