// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mma8451_test

import (
	"fmt"
	"log"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/mma8451/mma8451"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use i2creg I²C bus registry to find the first available I²C bus.
	b, err := i2creg.Open("")
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer b.Close()

	d, err := mma8451.NewI2C(b, mma8451.DefaultAddress)
	if err != nil {
		log.Fatalf("failed to initialize MMA8451: %v", err)
	}
	defer d.Halt()

	// Measure at ±4g, 100Hz, with the high-pass filter off.
	if err := d.SetScaleRange(mma8451.Range4G); err != nil {
		log.Fatal(err)
	}
	if err := d.SetDataRate(mma8451.Rate100Hz); err != nil {
		log.Fatal(err)
	}

	a, err := d.Acceleration()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(a)
}
