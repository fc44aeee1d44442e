package main

import "errors"

var (
	// ErrEnumeration is logged when the platform cannot list ports. It never
	// reaches the user; the port list is simply empty.
	ErrEnumeration    = errors.New("serial port enumeration failed")
	ErrNoPortSelected = errors.New("no serial port selected")
	ErrOpenFailed     = errors.New("failed to open serial port")
	ErrDecode         = errors.New("received data is not valid UTF-8")
)
