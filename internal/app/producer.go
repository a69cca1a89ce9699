// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package app

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/GermanBionicSystems/mma8451/internal/config"
)

// accelSample is the JSON payload published per reading.
type accelSample struct {
	X    float64 `json:"x"` // m/s²
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	Time string  `json:"time"`
}

// RunProducer samples the accelerometer on a fixed interval and publishes
// each reading as JSON over MQTT.
func RunProducer() error {
	log.Println("starting mma8451 acceleration producer (sensor → MQTT)")

	cfg := config.Get()
	dev, bus, err := openSensor()
	if err != nil {
		return err
	}
	defer bus.Close()
	defer func() { _ = dev.Halt() }()

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("MQTT connect: %w", token.Error())
	}
	defer client.Disconnect(250)

	log.Println("connected to MQTT, starting publish loop")

	ticker := time.NewTicker(time.Duration(cfg.SampleInterval) * time.Millisecond)
	defer ticker.Stop()

	for t := range ticker.C {
		a, err := dev.Acceleration()
		if err != nil {
			log.Printf("sensor read error: %v", err)
			continue
		}
		payload, err := json.Marshal(accelSample{
			X:    a.X,
			Y:    a.Y,
			Z:    a.Z,
			Time: t.Format(time.RFC3339Nano),
		})
		if err != nil {
			log.Printf("json marshal error: %v", err)
			continue
		}
		if token := client.Publish(cfg.TopicAccel, 0, true, payload); token.Wait() && token.Error() != nil {
			log.Printf("MQTT publish error: %v", token.Error())
		}
	}
	return nil
}
