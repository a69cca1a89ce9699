// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mma8451

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"

	"github.com/GermanBionicSystems/mma8451/reg"
)

// Mode selects whether the sensor is sampling.
type Mode byte

// Range selects the full scale measurement range.
type Range byte

// DataRate selects the output data rate.
type DataRate byte

// Cutoff selects the high-pass filter cutoff frequency. It only takes
// effect while the high-pass filter is enabled.
type Cutoff byte

const (
	Standby Mode = 0
	Active  Mode = 1

	Range2G Range = 0 // ±2g, 4096 counts/g
	Range4G Range = 1 // ±4g, 2048 counts/g
	Range8G Range = 2 // ±8g, 1024 counts/g

	Rate800Hz  DataRate = 0
	Rate400Hz  DataRate = 1
	Rate200Hz  DataRate = 2
	Rate100Hz  DataRate = 3
	Rate50Hz   DataRate = 4
	Rate12_5Hz DataRate = 5
	Rate6_25Hz DataRate = 6
	Rate1_56Hz DataRate = 7

	Cutoff16Hz Cutoff = 0
	Cutoff8Hz  Cutoff = 1
	Cutoff4Hz  Cutoff = 2
	Cutoff2Hz  Cutoff = 3

	// DeviceID is the fixed content of the WHO_AM_I register.
	DeviceID byte = 0x1A
	// DefaultAddress is the 7-bit I²C address with the SA0 pin left high.
	DefaultAddress uint16 = 0x1D
)

// Register addresses.
const (
	regOutXMSB        byte = 0x01
	regWhoAmI         byte = 0x0D
	regXYZDataCfg     byte = 0x0E
	regCtrl1          byte = 0x2A
	regHPFilterCutoff byte = 0x2F
)

// Bit-fields and structured registers used by the driver.
var (
	fldMode   = reg.Field{Reg: regCtrl1, Width: 1, Offset: 0}
	fldRate   = reg.Field{Reg: regCtrl1, Width: 2, Offset: 4}
	fldRange  = reg.Field{Reg: regXYZDataCfg, Width: 2, Offset: 0}
	fldHPF    = reg.Field{Reg: regXYZDataCfg, Width: 1, Offset: 4}
	fldCutoff = reg.Field{Reg: regHPFilterCutoff, Width: 2, Offset: 0}

	strWhoAmI = reg.Struct{Reg: regWhoAmI, Words: 1, WordSize: 1}
	strData   = reg.Struct{Reg: regOutXMSB, Words: 3, WordSize: 2, Signed: true}
)

// standardGravity converts g into m/s².
const standardGravity = 9.80665

func (m Mode) String() string {
	switch m {
	case Standby:
		return "standby"
	case Active:
		return "active"
	}
	return fmt.Sprintf("Mode(0x%02x)", byte(m))
}

func (r Range) String() string {
	switch r {
	case Range2G:
		return "±2g"
	case Range4G:
		return "±4g"
	case Range8G:
		return "±8g"
	}
	return fmt.Sprintf("Range(0x%02x)", byte(r))
}

// divisor returns the counts-per-g divisor for the range. Only ranges this
// driver wrote end up cached, so the default arm is never hit in practice.
func (r Range) divisor() float64 {
	switch r {
	case Range4G:
		return 2048.0
	case Range8G:
		return 1024.0
	}
	return 4096.0
}

func (d DataRate) String() string {
	switch d {
	case Rate800Hz:
		return "800Hz"
	case Rate400Hz:
		return "400Hz"
	case Rate200Hz:
		return "200Hz"
	case Rate100Hz:
		return "100Hz"
	case Rate50Hz:
		return "50Hz"
	case Rate12_5Hz:
		return "12.5Hz"
	case Rate6_25Hz:
		return "6.25Hz"
	case Rate1_56Hz:
		return "1.56Hz"
	}
	return fmt.Sprintf("DataRate(0x%02x)", byte(d))
}

// Frequency returns the output data rate the code selects.
func (d DataRate) Frequency() physic.Frequency {
	switch d {
	case Rate800Hz:
		return 800 * physic.Hertz
	case Rate400Hz:
		return 400 * physic.Hertz
	case Rate200Hz:
		return 200 * physic.Hertz
	case Rate100Hz:
		return 100 * physic.Hertz
	case Rate50Hz:
		return 50 * physic.Hertz
	case Rate12_5Hz:
		return 12500 * physic.MilliHertz
	case Rate6_25Hz:
		return 6250 * physic.MilliHertz
	case Rate1_56Hz:
		return 1560 * physic.MilliHertz
	}
	return 0
}

func (c Cutoff) String() string {
	switch c {
	case Cutoff16Hz:
		return "16Hz"
	case Cutoff8Hz:
		return "8Hz"
	case Cutoff4Hz:
		return "4Hz"
	case Cutoff2Hz:
		return "2Hz"
	}
	return fmt.Sprintf("Cutoff(0x%02x)", byte(c))
}

// Acceleration is one sample, in m/s² per axis.
type Acceleration struct {
	X float64
	Y float64
	Z float64
}

func (a Acceleration) String() string {
	return fmt.Sprintf("X:%.3fm/s² Y:%.3fm/s² Z:%.3fm/s²", a.X, a.Y, a.Z)
}

// Dev is a handle to an MMA8451 on an I²C bus.
type Dev struct {
	d        *i2c.Dev
	shutdown chan struct{}
	mu       sync.Mutex
	// rng mirrors the range bits in XYZ_DATA_CFG. Raw samples must be
	// decoded against the range that was active when they were taken, so
	// the setter updates the mirror inside the standby/active bracket.
	rng Range
}

// NewI2C returns a handle to an MMA8451 at addr on the bus, or fails with a
// *DeviceNotFoundError if the identity register does not match. On success
// the sensor is switched to active mode and the configured scale range is
// cached for sample decoding.
func NewI2C(b i2c.Bus, addr uint16) (*Dev, error) {
	d := &Dev{d: &i2c.Dev{Bus: b, Addr: addr}}
	vals, err := reg.ReadStruct(d.d, strWhoAmI)
	if err != nil {
		return nil, err
	}
	if byte(vals[0]) != DeviceID {
		return nil, &DeviceNotFoundError{Found: byte(vals[0])}
	}
	if err := reg.WriteBits(d.d, fldMode, byte(Active)); err != nil {
		return nil, err
	}
	r, err := reg.ReadBits(d.d, fldRange)
	if err != nil {
		return nil, err
	}
	d.rng = Range(r)
	return d, nil
}

// Mode returns the current operating mode.
func (d *Dev) Mode() (Mode, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := reg.ReadBits(d.d, fldMode)
	return Mode(v), err
}

// SetMode switches the sensor between standby and active. Unlike the other
// configuration fields, the mode bit may be written while sampling.
func (d *Dev) SetMode(m Mode) error {
	if m != Standby && m != Active {
		return &InvalidConfigurationError{Property: "operation mode", Value: byte(m)}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return reg.WriteBits(d.d, fldMode, byte(m))
}

// setLatched writes a configuration field that the part only latches while
// not sampling: standby first, write the field, then back to active. If a
// step fails the error surfaces as-is; the device may then be left in
// standby, which is the honest state to report.
func (d *Dev) setLatched(f reg.Field, value byte) error {
	if err := reg.WriteBits(d.d, fldMode, byte(Standby)); err != nil {
		return err
	}
	if err := reg.WriteBits(d.d, f, value); err != nil {
		return err
	}
	return reg.WriteBits(d.d, fldMode, byte(Active))
}

// ScaleRange returns the full scale range configured in the sensor.
func (d *Dev) ScaleRange() (Range, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := reg.ReadBits(d.d, fldRange)
	return Range(v), err
}

// SetScaleRange configures the full scale range. The sensor goes through a
// standby/active bracket, and the cached decoding range is updated before
// sampling resumes.
func (d *Dev) SetScaleRange(r Range) error {
	if r > Range8G {
		return &InvalidConfigurationError{Property: "scale range", Value: byte(r)}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := reg.WriteBits(d.d, fldMode, byte(Standby)); err != nil {
		return err
	}
	if err := reg.WriteBits(d.d, fldRange, byte(r)); err != nil {
		return err
	}
	d.rng = r
	return reg.WriteBits(d.d, fldMode, byte(Active))
}

// DataRate returns the configured output data rate code.
func (d *Dev) DataRate() (DataRate, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := reg.ReadBits(d.d, fldRate)
	return DataRate(v), err
}

// SetDataRate configures the output data rate.
func (d *Dev) SetDataRate(dr DataRate) error {
	if dr > Rate1_56Hz {
		return &InvalidConfigurationError{Property: "data rate", Value: byte(dr)}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.setLatched(fldRate, byte(dr))
}

// HighPassFilter reports whether output data runs through the high-pass
// filter.
func (d *Dev) HighPassFilter() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := reg.ReadBits(d.d, fldHPF)
	return v != 0, err
}

// SetHighPassFilter enables or disables the high-pass filter on the output
// data.
func (d *Dev) SetHighPassFilter(enable bool) error {
	var v byte
	if enable {
		v = 1
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.setLatched(fldHPF, v)
}

// HighPassCutoff returns the configured high-pass filter cutoff.
func (d *Dev) HighPassCutoff() (Cutoff, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := reg.ReadBits(d.d, fldCutoff)
	return Cutoff(v), err
}

// SetHighPassCutoff configures the high-pass filter cutoff frequency.
func (d *Dev) SetHighPassCutoff(c Cutoff) error {
	if c > Cutoff2Hz {
		return &InvalidConfigurationError{Property: "high-pass filter cutoff", Value: byte(c)}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.setLatched(fldCutoff, byte(c))
}

// Acceleration reads one sample from the sensor. The samples are 14 bits,
// left justified in the 16-bit data words, and are decoded against the
// cached scale range rather than a fresh register read.
func (d *Dev) Acceleration() (Acceleration, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	vals, err := reg.ReadStruct(d.d, strData)
	if err != nil {
		return Acceleration{}, err
	}
	div := d.rng.divisor()
	return Acceleration{
		X: float64(vals[0]>>2) / div * standardGravity,
		Y: float64(vals[1]>>2) / div * standardGravity,
		Z: float64(vals[2]>>2) / div * standardGravity,
	}, nil
}

// ReadContinuous reads from the sensor every interval and sends the samples
// to the returned channel. To terminate the read, call Halt().
func (d *Dev) ReadContinuous(interval time.Duration) (<-chan Acceleration, error) {
	if interval <= 0 {
		return nil, errors.New("mma8451: sample interval must be positive")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.shutdown != nil {
		return nil, errors.New("mma8451: ReadContinuous already running")
	}
	d.shutdown = make(chan struct{})
	ch := make(chan Acceleration, 16)
	go func(shutdown <-chan struct{}) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		defer close(ch)
		for {
			select {
			case <-shutdown:
				return
			case <-ticker.C:
				if a, err := d.Acceleration(); err == nil && len(ch) < cap(ch) {
					ch <- a
				}
			}
		}
	}(d.shutdown)
	return ch, nil
}

// ReadRegister returns the raw byte stored at addr. Intended for debugging
// and register inspection tools.
func (d *Dev) ReadRegister(addr byte) (byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var buf [1]byte
	err := d.d.Tx([]byte{addr}, buf[:])
	return buf[0], err
}

// WriteRegister writes a raw byte to addr, bypassing validation and the
// standby/active bracketing. Intended for debugging tools only.
func (d *Dev) WriteRegister(addr, value byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.d.Tx([]byte{addr, value}, nil)
}

// Halt stops a running ReadContinuous and puts the sensor in standby.
// Implements conn.Resource.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.shutdown != nil {
		close(d.shutdown)
		d.shutdown = nil
	}
	return reg.WriteBits(d.d, fldMode, byte(Standby))
}

func (d *Dev) String() string {
	return fmt.Sprintf("mma8451: %s", d.d.String())
}

var _ conn.Resource = &Dev{}
