// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mma8451

// BitField describes a named group of bits within a register.
type BitField struct {
	Bits        string `json:"bits"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Values      string `json:"values,omitempty"`
}

// RegisterInfo describes one register of the sensor: address, access type
// and bit field layout. Used by register inspection tools.
type RegisterInfo struct {
	Address     string     `json:"address"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Access      string     `json:"access"` // "R", "W", "RW"
	Default     string     `json:"default,omitempty"`
	BitFields   []BitField `json:"bit_fields,omitempty"`
}

// RegisterMap returns metadata for the registers this driver touches.
func RegisterMap() []RegisterInfo {
	return []RegisterInfo{
		// Sensor Data Registers (Read-Only)
		{Address: "0x01", Name: "OUT_X_MSB", Description: "X-Axis Data High Byte (14-bit sample, left justified)", Access: "R"},
		{Address: "0x02", Name: "OUT_X_LSB", Description: "X-Axis Data Low Byte", Access: "R"},
		{Address: "0x03", Name: "OUT_Y_MSB", Description: "Y-Axis Data High Byte", Access: "R"},
		{Address: "0x04", Name: "OUT_Y_LSB", Description: "Y-Axis Data Low Byte", Access: "R"},
		{Address: "0x05", Name: "OUT_Z_MSB", Description: "Z-Axis Data High Byte", Access: "R"},
		{Address: "0x06", Name: "OUT_Z_LSB", Description: "Z-Axis Data Low Byte", Access: "R"},

		// Device Identification
		{Address: "0x0D", Name: "WHO_AM_I", Description: "Device ID (should be 0x1A)", Access: "R", Default: "0x1A"},

		// Configuration Registers
		{Address: "0x0E", Name: "XYZ_DATA_CFG", Description: "Data Configuration", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "4", Name: "HPF_OUT", Description: "High-pass filter on output data", Values: "0=Disabled, 1=Enabled"},
				{Bits: "1:0", Name: "FS", Description: "Full Scale Range", Values: "0=±2g, 1=±4g, 2=±8g"},
			}},
		{Address: "0x2A", Name: "CTRL_REG1", Description: "System Control 1", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "5:4", Name: "DR", Description: "Output Data Rate", Values: "0=800Hz, 1=400Hz, 2=200Hz, 3=100Hz, 4=50Hz, 5=12.5Hz, 6=6.25Hz, 7=1.56Hz"},
				{Bits: "0", Name: "ACTIVE", Description: "Operating mode", Values: "0=Standby, 1=Active"},
			}},
		{Address: "0x2F", Name: "HP_FILTER_CUTOFF", Description: "High-Pass Filter Cutoff", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "1:0", Name: "SEL", Description: "Cutoff frequency", Values: "0=16Hz, 1=8Hz, 2=4Hz, 3=2Hz"},
			}},
	}
}
