// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mma8451 controls an NXP MMA8451 3-axis accelerometer over I²C.
//
// The driver exposes operating mode, full scale range, output data rate and
// high-pass filter configuration, and converts the raw 14-bit samples into
// acceleration in m/s². Several configuration fields are only latched by the
// part while it is not sampling; the setters handle the required
// standby/active bracketing themselves.
//
// A Dev serializes its own bus transactions. It is not meant to share its
// register space with another writer on the same bus address.
//
// # Datasheet
//
// https://www.nxp.com/docs/en/data-sheet/MMA8451Q.pdf
package mma8451
