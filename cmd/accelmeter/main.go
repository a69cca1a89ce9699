// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"flag"
	"log"

	"github.com/GermanBionicSystems/mma8451/internal/app"
	"github.com/GermanBionicSystems/mma8451/internal/config"
)

func main() {
	configPath := flag.String("config", "./mma8451_config.txt", "path to configuration file")
	flag.Parse()

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunMeter(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
