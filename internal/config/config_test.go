// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mma8451_config.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
# broker
MQTT_BROKER = tcp://localhost:1883
MQTT_CLIENT_ID = bench-rig
TOPIC_ACCEL = bench/accel

I2C_BUS = /dev/i2c-1
I2C_ADDR = 0x1C
SCALE_RANGE = 1
DATA_RATE = 3
HIGH_PASS_FILTER = true
HIGH_PASS_CUTOFF = 2

SAMPLE_INTERVAL = 50
WEB_SERVER_PORT = 9090
METER_WIDTH = 48
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MQTTBroker != "tcp://localhost:1883" {
		t.Errorf("MQTTBroker = %q", cfg.MQTTBroker)
	}
	if cfg.I2CAddr != 0x1C {
		t.Errorf("I2CAddr = %#x, want 0x1c", cfg.I2CAddr)
	}
	if cfg.ScaleRange != 1 || cfg.DataRate != 3 || cfg.HighPassCutoff != 2 {
		t.Errorf("sensor settings = %d/%d/%d, want 1/3/2", cfg.ScaleRange, cfg.DataRate, cfg.HighPassCutoff)
	}
	if !cfg.HighPassFilter {
		t.Error("HighPassFilter = false, want true")
	}
	if cfg.SampleInterval != 50 || cfg.WebServerPort != 9090 || cfg.MeterWidth != 48 {
		t.Errorf("timing/web/meter = %d/%d/%d", cfg.SampleInterval, cfg.WebServerPort, cfg.MeterWidth)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "MQTT_BROKER=tcp://broker:1883\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.I2CAddr != 0x1D {
		t.Errorf("default I2CAddr = %#x, want 0x1d", cfg.I2CAddr)
	}
	if cfg.TopicAccel != "sensors/accel" {
		t.Errorf("default TopicAccel = %q", cfg.TopicAccel)
	}
	if cfg.SampleInterval != 100 {
		t.Errorf("default SampleInterval = %d, want 100", cfg.SampleInterval)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"MQTT_BROKER=x\nSCALE_RANGE=3", "SCALE_RANGE"},
		{"MQTT_BROKER=x\nDATA_RATE=8", "DATA_RATE"},
		{"MQTT_BROKER=x\nHIGH_PASS_CUTOFF=4", "HIGH_PASS_CUTOFF"},
		{"MQTT_BROKER=x\nSAMPLE_INTERVAL=0", "SAMPLE_INTERVAL"},
		{"MQTT_BROKER=x\nNO_SUCH_KEY=1", "unknown config key"},
		{"TOPIC_ACCEL=only", "MQTT_BROKER"},
	}
	for _, test := range tests {
		_, err := Load(writeConfig(t, test.line))
		if err == nil || !strings.Contains(err.Error(), test.want) {
			t.Errorf("Load(%q) = %v, want error mentioning %q", test.line, err, test.want)
		}
	}
}
