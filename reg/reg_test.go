// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package reg

import (
	"testing"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

const testAddr = 0x1D

// playbackDev returns an i2c.Dev backed by a playback transcript. The
// playback bus fails the transaction if the written bytes do not match the
// transcript, which is what verifies the encodings below.
func playbackDev(ops []i2ctest.IO) *i2c.Dev {
	return &i2c.Dev{Bus: &i2ctest.Playback{Ops: ops, DontPanic: true}, Addr: testAddr}
}

func TestMask(t *testing.T) {
	tests := []struct {
		f    Field
		mask byte
	}{
		{Field{Reg: 0x0E, Width: 2, Offset: 0}, 0b00000011},
		{Field{Reg: 0x0E, Width: 1, Offset: 4}, 0b00010000},
		{Field{Reg: 0x2A, Width: 2, Offset: 4}, 0b00110000},
		{Field{Reg: 0x00, Width: 8, Offset: 0}, 0b11111111},
	}
	for _, test := range tests {
		if got := test.f.Mask(); got != test.mask {
			t.Errorf("Field%+v.Mask() = %#08b, want %#08b", test.f, got, test.mask)
		}
	}
}

func TestReadBits(t *testing.T) {
	d := playbackDev([]i2ctest.IO{
		{Addr: testAddr, W: []byte{0x2A}, R: []byte{0b00110001}},
	})
	got, err := ReadBits(d, Field{Reg: 0x2A, Width: 2, Offset: 4})
	if err != nil {
		t.Fatal(err)
	}
	if got != 3 {
		t.Errorf("ReadBits() = %d, want 3", got)
	}
}

func TestWriteBitsPreservesNeighbours(t *testing.T) {
	// Width 2, offset 4, value 3 against existing 0b00000001 must yield
	// 0b00110001: bit 0 survives untouched.
	d := playbackDev([]i2ctest.IO{
		{Addr: testAddr, W: []byte{0x0E}, R: []byte{0b00000001}},
		{Addr: testAddr, W: []byte{0x0E, 0b00110001}},
	})
	if err := WriteBits(d, Field{Reg: 0x0E, Width: 2, Offset: 4}, 3); err != nil {
		t.Fatal(err)
	}
}

func TestWriteBitsTruncates(t *testing.T) {
	// An oversized value is cut down to the field width, nothing spills
	// into neighbouring bits.
	d := playbackDev([]i2ctest.IO{
		{Addr: testAddr, W: []byte{0x0E}, R: []byte{0x00}},
		{Addr: testAddr, W: []byte{0x0E, 0b00110000}},
	})
	if err := WriteBits(d, Field{Reg: 0x0E, Width: 2, Offset: 4}, 0xFF); err != nil {
		t.Fatal(err)
	}
}

func TestWriteBitsClearsField(t *testing.T) {
	d := playbackDev([]i2ctest.IO{
		{Addr: testAddr, W: []byte{0x2A}, R: []byte{0b00111001}},
		{Addr: testAddr, W: []byte{0x2A, 0b00001001}},
	})
	if err := WriteBits(d, Field{Reg: 0x2A, Width: 2, Offset: 4}, 0); err != nil {
		t.Fatal(err)
	}
}

func TestReadBitsPropagatesTransportError(t *testing.T) {
	// An exhausted transcript makes the bus fail the read.
	d := playbackDev(nil)
	if _, err := ReadBits(d, Field{Reg: 0x2A, Width: 1, Offset: 0}); err == nil {
		t.Error("ReadBits() on a failing bus returned nil error")
	}
}

func TestReadStructSigned(t *testing.T) {
	d := playbackDev([]i2ctest.IO{
		{Addr: testAddr, W: []byte{0x01}, R: []byte{0x10, 0x00, 0x08, 0x00, 0xFC, 0x00}},
	})
	vals, err := ReadStruct(d, Struct{Reg: 0x01, Words: 3, WordSize: 2, Signed: true})
	if err != nil {
		t.Fatal(err)
	}
	want := []int{0x1000, 0x0800, -0x0400}
	for i := range want {
		if vals[i] != want[i] {
			t.Errorf("vals[%d] = %d, want %d", i, vals[i], want[i])
		}
	}
}

func TestReadStructUnsignedByte(t *testing.T) {
	d := playbackDev([]i2ctest.IO{
		{Addr: testAddr, W: []byte{0x0D}, R: []byte{0xFF}},
	})
	vals, err := ReadStruct(d, Struct{Reg: 0x0D, Words: 1, WordSize: 1})
	if err != nil {
		t.Fatal(err)
	}
	if vals[0] != 255 {
		t.Errorf("vals[0] = %d, want 255", vals[0])
	}
}

func TestWriteStruct(t *testing.T) {
	d := playbackDev([]i2ctest.IO{
		{Addr: testAddr, W: []byte{0x10, 0xFF, 0xFE, 0x12, 0x34}},
	})
	s := Struct{Reg: 0x10, Words: 2, WordSize: 2, Signed: true}
	if err := WriteStruct(d, s, []int{-2, 0x1234}); err != nil {
		t.Fatal(err)
	}
}

func TestWriteStructLengthMismatch(t *testing.T) {
	d := playbackDev(nil)
	s := Struct{Reg: 0x10, Words: 3, WordSize: 2}
	if err := WriteStruct(d, s, []int{1, 2}); err == nil {
		t.Error("WriteStruct() with wrong value count returned nil error")
	}
}
