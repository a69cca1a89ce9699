// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package reg reads and writes bit-fields and multi-byte structured values
// inside device registers over a byte oriented bus.
//
// The helpers operate on a conn.Conn, so they work with any transport whose
// transaction model is "write register address, then transfer bytes", such
// as i2c.Dev.
package reg

import (
	"encoding/binary"
	"fmt"

	"periph.io/x/conn/v3"
)

// Field addresses a bit-field inside a single register byte.
//
// Width+Offset must not exceed 8.
type Field struct {
	Reg    byte  // register address
	Width  uint8 // field width in bits
	Offset uint8 // position of the field LSB within the register byte
}

// Mask returns the byte mask covering exactly the bits of the field.
func (f Field) Mask() byte {
	return byte(1<<f.Width-1) << f.Offset
}

// ReadBits returns the current value of the field as an unsigned integer.
func ReadBits(c conn.Conn, f Field) (byte, error) {
	var buf [1]byte
	if err := c.Tx([]byte{f.Reg}, buf[:]); err != nil {
		return 0, err
	}
	return (buf[0] >> f.Offset) & byte(1<<f.Width-1), nil
}

// WriteBits sets the field to value, leaving all other bits of the register
// untouched. The register is read back first, so two bus transactions are
// issued; the pair is not atomic with respect to the bus.
//
// value is truncated to the field width by masking. Range validation is the
// caller's responsibility.
func WriteBits(c conn.Conn, f Field, value byte) error {
	var buf [1]byte
	if err := c.Tx([]byte{f.Reg}, buf[:]); err != nil {
		return err
	}
	b := buf[0]&^f.Mask() | value<<f.Offset&f.Mask()
	return c.Tx([]byte{f.Reg, b}, nil)
}

// Struct describes a register spanning one or more bytes, decoded as a fixed
// sequence of equally sized words. Multi-byte words are big-endian.
type Struct struct {
	Reg      byte // starting register address
	Words    int  // number of words
	WordSize int  // bytes per word, 1 or 2
	Signed   bool // sign-extend each word
}

// Len returns the byte length of the register block.
func (s Struct) Len() int {
	return s.Words * s.WordSize
}

// ReadStruct issues one bus read of the full block and decodes it per the
// descriptor. Signed words are sign-extended.
func ReadStruct(c conn.Conn, s Struct) ([]int, error) {
	buf := make([]byte, s.Len())
	if err := c.Tx([]byte{s.Reg}, buf); err != nil {
		return nil, err
	}
	vals := make([]int, s.Words)
	for i := range vals {
		switch s.WordSize {
		case 1:
			if s.Signed {
				vals[i] = int(int8(buf[i]))
			} else {
				vals[i] = int(buf[i])
			}
		case 2:
			w := binary.BigEndian.Uint16(buf[2*i:])
			if s.Signed {
				vals[i] = int(int16(w))
			} else {
				vals[i] = int(w)
			}
		default:
			return nil, fmt.Errorf("reg: unsupported word size %d", s.WordSize)
		}
	}
	return vals, nil
}

// WriteStruct encodes vals per the descriptor and issues one bus write.
func WriteStruct(c conn.Conn, s Struct, vals []int) error {
	if len(vals) != s.Words {
		return fmt.Errorf("reg: got %d values, descriptor has %d words", len(vals), s.Words)
	}
	buf := make([]byte, 1+s.Len())
	buf[0] = s.Reg
	for i, v := range vals {
		switch s.WordSize {
		case 1:
			buf[1+i] = byte(v)
		case 2:
			binary.BigEndian.PutUint16(buf[1+2*i:], uint16(v))
		default:
			return fmt.Errorf("reg: unsupported word size %d", s.WordSize)
		}
	}
	return c.Tx(buf, nil)
}
