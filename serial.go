package main

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"
	"unicode/utf8"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
	"go.uber.org/zap"
)

// Port is the part of serial.Port the receiver needs.
type Port interface {
	io.ReadCloser
	SetReadTimeout(t time.Duration) error
	ResetInputBuffer() error
}

// PortOpener opens a named port with the given line settings.
type PortOpener func(name string, mode *serial.Mode) (Port, error)

func openSerialPort(name string, mode *serial.Mode) (Port, error) {
	p, err := serial.Open(name, mode)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// PortLister reports the serial ports currently present on the system.
type PortLister interface {
	AvailablePorts() []string
}

type systemPorts struct {
	log      *zap.SugaredLogger
	detailed func() ([]*enumerator.PortDetails, error)
	plain    func() ([]string, error)
}

func newSystemPorts(log *zap.SugaredLogger) systemPorts {
	return systemPorts{
		log:      log,
		detailed: enumerator.GetDetailedPortsList,
		plain:    serial.GetPortsList,
	}
}

// AvailablePorts returns a list of detected serial port names. Enumeration
// errors are logged and reported as an empty list.
func (s systemPorts) AvailablePorts() []string {
	details, err := s.detailed()
	if err == nil {
		ports := make([]string, 0, len(details))
		for _, d := range details {
			if d.IsUSB {
				s.log.Debugw("USB serial port", "port", d.Name, "vid", d.VID, "pid", d.PID, "product", d.Product)
			}
			ports = append(ports, d.Name)
		}
		return ports
	}
	s.log.Debugw("Detailed port enumeration failed, falling back to plain list", "error", err)

	ports, err := s.plain()
	if err != nil {
		s.log.Warnw("Failed to enumerate serial ports", "error", fmt.Errorf("%w: %w", ErrEnumeration, err))
		return []string{}
	}
	if ports == nil {
		return []string{}
	}
	return ports
}

// LogLine is a single decoded line received from the serial port.
type LogLine struct {
	Timestamp time.Time
	Text      string
}

// Reader reads newline-terminated text from one open port on its own
// goroutine and hands every line to emit. Bytes still waiting for a
// terminator when a read times out are emitted as they are. A read or decode error is emitted
// as a line of its own and ends the reader.
type Reader struct {
	port Port
	emit func(LogLine)
	log  *zap.SugaredLogger

	// mu orders emit against Stop: once Stop returns, emit is never called again.
	mu       sync.Mutex
	stopped  bool
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// StartReader begins reading lines from port in a goroutine.
// emit must not block; it is called from the reader goroutine.
func StartReader(port Port, emit func(LogLine), log *zap.SugaredLogger) *Reader {
	r := &Reader{
		port:   port,
		emit:   emit,
		log:    log,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	go r.run()
	return r
}

// Stop asks the reader to exit. It does not wait; use Wait for that.
func (r *Reader) Stop() {
	r.mu.Lock()
	r.stopped = true
	r.mu.Unlock()
	r.stopOnce.Do(func() { close(r.stopCh) })
}

// Wait blocks until the reader goroutine has exited or timeout elapses.
// It reports whether the goroutine exited.
func (r *Reader) Wait(timeout time.Duration) bool {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-r.doneCh:
		return true
	case <-t.C:
		return false
	}
}

// Running reports whether the reader goroutine is still alive.
func (r *Reader) Running() bool {
	select {
	case <-r.doneCh:
		return false
	default:
		return true
	}
}

func (r *Reader) run() {
	defer close(r.doneCh)

	buf := make([]byte, 1024)
	var partial []byte

	for {
		select {
		case <-r.stopCh:
			return
		default:
		}

		// With a read timeout set, an idle port returns 0, nil. Whatever
		// arrived without a terminator is emitted as a line of its own.
		n, err := r.port.Read(buf)
		if n == 0 && err == nil && len(partial) > 0 {
			if !r.emitLine(partial) {
				return
			}
			partial = nil
		}
		if n > 0 {
			partial = append(partial, buf[:n]...)
			for {
				idx := bytes.IndexByte(partial, '\n')
				if idx < 0 {
					break
				}
				line := partial[:idx]
				partial = partial[idx+1:]
				if !r.emitLine(line) {
					return
				}
			}
		}

		if err != nil {
			select {
			case <-r.stopCh:
				// Port closed underneath us by Stop.
				return
			default:
			}
			r.fail(err)
			return
		}
	}
}

// emitLine decodes one line and sends it. It reports false when the reader
// must exit, either because it was stopped or because decoding failed.
func (r *Reader) emitLine(b []byte) bool {
	b = bytes.TrimSuffix(b, []byte{'\r'})
	if !utf8.Valid(b) {
		r.fail(fmt.Errorf("%w: % x", ErrDecode, b))
		return false
	}
	return r.send(string(b))
}

func (r *Reader) send(text string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return false
	}
	r.emit(LogLine{Timestamp: time.Now(), Text: text})
	return true
}

func (r *Reader) fail(err error) {
	r.log.Warnw("Serial reader stopped", "error", err)
	r.send(err.Error())
}
