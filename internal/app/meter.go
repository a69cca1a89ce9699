// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package app

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"

	"github.com/GermanBionicSystems/mma8451/internal/config"
)

// meterSpan is the displayed span per axis, ±2g in m/s². Samples beyond it
// pin to the edge of the bar.
const meterSpan = 2 * 9.80665

// RunMeter renders one live bar per axis on the terminal using ANSI-256
// color blocks, redrawing in place on every sample.
func RunMeter() error {
	cfg := config.Get()
	dev, bus, err := openSensor()
	if err != nil {
		return err
	}
	defer bus.Close()
	defer func() { _ = dev.Halt() }()

	log.Printf("meter on %s, interval %dms", dev, cfg.SampleInterval)

	ch, err := dev.ReadContinuous(time.Duration(cfg.SampleInterval) * time.Millisecond)
	if err != nil {
		return err
	}

	w := colorable.NewColorableStdout()
	var buf bytes.Buffer
	for a := range ch {
		buf.Reset()
		_, _ = buf.WriteString("\r\033[0m")
		renderAxis(&buf, 'X', a.X, cfg.MeterWidth)
		renderAxis(&buf, 'Y', a.Y, cfg.MeterWidth)
		renderAxis(&buf, 'Z', a.Z, cfg.MeterWidth)
		fmt.Fprintf(&buf, "\033[0m %s ", a)
		if _, err := buf.WriteTo(w); err != nil {
			return err
		}
	}
	// Leave the cursor on a clean line.
	_, err = io.WriteString(w, "\n\033[0m")
	return err
}

// renderAxis draws one bar of width cells with a marker at the sample
// position. Zero sits in the middle of the bar.
func renderAxis(buf *bytes.Buffer, axis byte, v float64, width int) {
	fmt.Fprintf(buf, "%c ", axis)
	pos := int((v/meterSpan + 1) / 2 * float64(width))
	if pos < 0 {
		pos = 0
	}
	if pos >= width {
		pos = width - 1
	}
	for i := 0; i < width; i++ {
		var c color.NRGBA
		switch {
		case i == pos:
			c = color.NRGBA{G: 255, A: 255}
		case i == width/2:
			c = color.NRGBA{R: 96, G: 96, B: 96, A: 255}
		default:
			c = color.NRGBA{R: 32, G: 32, B: 32, A: 255}
		}
		_, _ = buf.WriteString(ansi256.Default.Block(c))
	}
	_, _ = buf.WriteString("\033[0m  ")
}
