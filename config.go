package main

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"go.bug.st/serial"
)

const appID = "com.github.mazen-salah.float-engine-receiver"
const appTitle = "Float Engine Receiver"

// Config holds the fixed connection and presentation settings.
// It is built once in main and passed by value; nothing mutates it afterwards.
type Config struct {
	BaudRate        int
	ReadTimeout     time.Duration
	RefreshInterval time.Duration
	StopTimeout     time.Duration
	WindowSize      fyne.Size
	Style           Style
}

// Style is the dark palette applied to the whole window.
type Style struct {
	Background       color.Color
	Surface          color.Color
	Foreground       color.Color
	Hover            color.Color
	Pressed          color.Color
	Success          color.Color
	Error            color.Color
	TitleTextSize    float32
	CornerRadius     float32
	LogLineMonospace bool
}

func DefaultConfig() Config {
	return Config{
		BaudRate:        9600,
		ReadTimeout:     time.Second,
		RefreshInterval: time.Second,
		StopTimeout:     2 * time.Second,
		WindowSize:      fyne.NewSize(500, 800),
		Style:           DefaultStyle(),
	}
}

func DefaultStyle() Style {
	return Style{
		Background:       color.NRGBA{R: 0x25, G: 0x25, B: 0x25, A: 0xff},
		Surface:          color.NRGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff},
		Foreground:       color.NRGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff},
		Hover:            color.NRGBA{R: 0x3d, G: 0x3d, B: 0x3d, A: 0xff},
		Pressed:          color.NRGBA{R: 0x4c, G: 0x4c, B: 0x4c, A: 0xff},
		Success:          color.NRGBA{R: 0x2e, G: 0xcc, B: 0x40, A: 0xff},
		Error:            color.NRGBA{R: 0xff, G: 0x41, B: 0x36, A: 0xff},
		TitleTextSize:    20,
		CornerRadius:     10,
		LogLineMonospace: true,
	}
}

// serialMode returns the 8N1 line settings used for every connection.
func (c Config) serialMode() *serial.Mode {
	return &serial.Mode{
		BaudRate: c.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
}
