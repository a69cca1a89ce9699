// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config loads the KEY=VALUE configuration file shared by the
// command line tools. The sensor packages never read configuration
// themselves, they take plain arguments.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds all tool configuration values.
type Config struct {
	// MQTT
	MQTTBroker   string
	MQTTClientID string
	TopicAccel   string

	// Sensor
	I2CBus string
	// 7-bit I²C address of the sensor, usually 0x1D.
	I2CAddr uint16
	// Scale range: 0=±2g, 1=±4g, 2=±8g
	ScaleRange byte
	// Data rate: 0=800Hz, 1=400Hz, 2=200Hz, 3=100Hz, 4=50Hz, 5=12.5Hz, 6=6.25Hz, 7=1.56Hz
	DataRate       byte
	HighPassFilter bool
	// High-pass cutoff: 0=16Hz, 1=8Hz, 2=4Hz, 3=2Hz
	HighPassCutoff byte

	// Timing
	SampleInterval int // milliseconds

	// Web server (register debug)
	WebServerPort int

	// Meter
	MeterWidth int // columns per axis bar
}

var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := &Config{
		MQTTClientID:   "mma8451-producer",
		TopicAccel:     "sensors/accel",
		I2CAddr:        0x1D,
		SampleInterval: 100,
		WebServerPort:  8080,
		MeterWidth:     32,
	}
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID":
		c.MQTTClientID = value
	case "TOPIC_ACCEL":
		c.TopicAccel = value

	// Sensor
	case "I2C_BUS":
		c.I2CBus = value
	case "I2C_ADDR":
		addr, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid I2C_ADDR %q: %w", value, err)
		}
		c.I2CAddr = uint16(addr)
	case "SCALE_RANGE":
		val, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SCALE_RANGE %q: %w", value, err)
		}
		if val < 0 || val > 2 {
			return fmt.Errorf("SCALE_RANGE must be 0-2 (0=±2g, 1=±4g, 2=±8g), got %d", val)
		}
		c.ScaleRange = byte(val)
	case "DATA_RATE":
		val, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid DATA_RATE %q: %w", value, err)
		}
		if val < 0 || val > 7 {
			return fmt.Errorf("DATA_RATE must be 0-7 (0=800Hz ... 7=1.56Hz), got %d", val)
		}
		c.DataRate = byte(val)
	case "HIGH_PASS_FILTER":
		val, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid HIGH_PASS_FILTER %q: %w", value, err)
		}
		c.HighPassFilter = val
	case "HIGH_PASS_CUTOFF":
		val, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid HIGH_PASS_CUTOFF %q: %w", value, err)
		}
		if val < 0 || val > 3 {
			return fmt.Errorf("HIGH_PASS_CUTOFF must be 0-3 (0=16Hz, 1=8Hz, 2=4Hz, 3=2Hz), got %d", val)
		}
		c.HighPassCutoff = byte(val)

	// Timing
	case "SAMPLE_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SAMPLE_INTERVAL %q: %w", value, err)
		}
		if interval <= 0 {
			return fmt.Errorf("SAMPLE_INTERVAL must be positive, got %d", interval)
		}
		c.SampleInterval = interval

	// Web Server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port

	// Meter
	case "METER_WIDTH":
		width, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid METER_WIDTH %q: %w", value, err)
		}
		if width < 8 {
			return fmt.Errorf("METER_WIDTH must be at least 8, got %d", width)
		}
		c.MeterWidth = width

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required")
	}
	return nil
}

// InitGlobal initializes the global configuration from file. Only the first
// call loads anything.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance. InitGlobal must be called
// first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
