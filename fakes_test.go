package main

import (
	"errors"
	"slices"
	"sync"
	"time"

	"go.bug.st/serial"
)

var errFakeClosed = errors.New("port has been closed")

// fakePort is an in-memory Port. Chunks passed to Inject are returned by
// Read one at a time; an idle Read returns 0, nil after a short timeout.
type fakePort struct {
	name   string
	data   chan []byte
	errs   chan error
	repeat []byte

	closeOnce sync.Once
	closeCh   chan struct{}

	mu          sync.Mutex
	readTimeout time.Duration
	resets      int

	// owned by the reading goroutine
	pending []byte
}

func newFakePort(name string) *fakePort {
	return &fakePort{
		name:    name,
		data:    make(chan []byte, 16),
		errs:    make(chan error, 1),
		closeCh: make(chan struct{}),
	}
}

func (p *fakePort) Inject(b string) {
	p.data <- []byte(b)
}

func (p *fakePort) FailRead(err error) {
	p.errs <- err
}

func (p *fakePort) Read(buf []byte) (int, error) {
	if p.IsClosed() {
		return 0, errFakeClosed
	}
	if p.repeat != nil {
		time.Sleep(time.Millisecond)
		return copy(buf, p.repeat), nil
	}
	if len(p.pending) == 0 {
		select {
		case b := <-p.data:
			p.pending = b
		case err := <-p.errs:
			return 0, err
		case <-p.closeCh:
			return 0, errFakeClosed
		case <-time.After(5 * time.Millisecond):
			return 0, nil
		}
	}
	n := copy(buf, p.pending)
	p.pending = p.pending[n:]
	return n, nil
}

func (p *fakePort) Close() error {
	p.closeOnce.Do(func() { close(p.closeCh) })
	return nil
}

func (p *fakePort) IsClosed() bool {
	select {
	case <-p.closeCh:
		return true
	default:
		return false
	}
}

func (p *fakePort) SetReadTimeout(t time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.readTimeout = t
	return nil
}

func (p *fakePort) ResetInputBuffer() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resets++
	return nil
}

// fakeOpener hands out a fresh fakePort per Open call.
type fakeOpener struct {
	mu     sync.Mutex
	err    error
	repeat map[string]string
	opened []*fakePort
	modes  []*serial.Mode
}

func (o *fakeOpener) Open(name string, mode *serial.Mode) (Port, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.modes = append(o.modes, mode)
	if o.err != nil {
		return nil, o.err
	}
	p := newFakePort(name)
	if r, ok := o.repeat[name]; ok {
		p.repeat = []byte(r)
	}
	o.opened = append(o.opened, p)
	return p, nil
}

func (o *fakeOpener) Opened() []*fakePort {
	o.mu.Lock()
	defer o.mu.Unlock()
	return slices.Clone(o.opened)
}

func (o *fakeOpener) OpenCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.modes)
}

func (o *fakeOpener) Last() *fakePort {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.opened) == 0 {
		return nil
	}
	return o.opened[len(o.opened)-1]
}

type fakeLister struct {
	mu    sync.Mutex
	ports []string
}

func (l *fakeLister) Set(ports ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ports = ports
}

func (l *fakeLister) AvailablePorts() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.ports)
}

// fakeDisplay records everything the controller shows.
type fakeDisplay struct {
	mu       sync.Mutex
	ports    []string
	selected string
	status   Status
	lines    []LogLine
	errs     []error
}

func (d *fakeDisplay) SetPorts(ports []string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ports = ports
	switch {
	case len(ports) == 0:
		d.selected = ""
	case !slices.Contains(ports, d.selected):
		d.selected = ports[0]
	}
}

func (d *fakeDisplay) Select(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selected = name
}

func (d *fakeDisplay) SelectedPort() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selected
}

func (d *fakeDisplay) SetStatus(s Status) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.status = s
}

func (d *fakeDisplay) AppendLine(line LogLine) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lines = append(d.lines, line)
}

func (d *fakeDisplay) ShowError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errs = append(d.errs, err)
}

func (d *fakeDisplay) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

func (d *fakeDisplay) Ports() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.ports)
}

func (d *fakeDisplay) Texts() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	texts := make([]string, len(d.lines))
	for i, l := range d.lines {
		texts[i] = l.Text
	}
	return texts
}

func (d *fakeDisplay) Errors() []error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.errs)
}

// recorder collects emitted lines for reader tests.
type recorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *recorder) emit(line LogLine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line.Text)
}

func (r *recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.lines)
}
