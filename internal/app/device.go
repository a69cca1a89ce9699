// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package app implements the logic behind the command line tools: the MQTT
// acceleration producer, the terminal meter and the register debug server.
package app

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/mma8451/internal/config"
	"github.com/GermanBionicSystems/mma8451/mma8451"
)

// openSensor initializes the host, opens the configured I²C bus and returns
// a handle configured per the loaded config. The caller owns the bus and
// must Close it after halting the device.
func openSensor() (*mma8451.Dev, i2c.BusCloser, error) {
	cfg := config.Get()
	if _, err := host.Init(); err != nil {
		return nil, nil, fmt.Errorf("host init: %w", err)
	}
	b, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return nil, nil, fmt.Errorf("open i2c bus %q: %w", cfg.I2CBus, err)
	}
	dev, err := mma8451.NewI2C(b, cfg.I2CAddr)
	if err != nil {
		b.Close()
		return nil, nil, err
	}
	if err := configureSensor(dev, cfg); err != nil {
		b.Close()
		return nil, nil, err
	}
	return dev, b, nil
}

func configureSensor(dev *mma8451.Dev, cfg *config.Config) error {
	if err := dev.SetScaleRange(mma8451.Range(cfg.ScaleRange)); err != nil {
		return err
	}
	if err := dev.SetDataRate(mma8451.DataRate(cfg.DataRate)); err != nil {
		return err
	}
	if err := dev.SetHighPassFilter(cfg.HighPassFilter); err != nil {
		return err
	}
	if cfg.HighPassFilter {
		if err := dev.SetHighPassCutoff(mma8451.Cutoff(cfg.HighPassCutoff)); err != nil {
			return err
		}
	}
	return nil
}
