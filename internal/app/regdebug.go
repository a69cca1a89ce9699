// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/GermanBionicSystems/mma8451/internal/config"
	"github.com/GermanBionicSystems/mma8451/mma8451"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// registerResponse is the message sent back over the websocket.
type registerResponse struct {
	Type        string                 `json:"type"` // "register_data", "register_map", "error"
	Address     string                 `json:"addr,omitempty"`
	Value       string                 `json:"value,omitempty"`
	Registers   map[string]string      `json:"registers,omitempty"` // for bulk read
	Timestamp   string                 `json:"timestamp,omitempty"`
	Message     string                 `json:"message,omitempty"`
	RegisterMap []mma8451.RegisterInfo `json:"register_map,omitempty"`
}

// debugServer serves the register inspector for a single sensor.
type debugServer struct {
	dev *mma8451.Dev
}

// registerDebugSession holds websocket connection state for one client.
type registerDebugSession struct {
	conn *websocket.Conn
	dev  *mma8451.Dev
}

// RunRegisterDebug opens the sensor and serves the register inspector:
// a websocket endpoint carrying read/write actions against the register
// map, and a JSON endpoint with the current acceleration.
func RunRegisterDebug() error {
	cfg := config.Get()
	dev, bus, err := openSensor()
	if err != nil {
		return err
	}
	defer bus.Close()
	defer func() { _ = dev.Halt() }()

	srv := &debugServer{dev: dev}
	http.HandleFunc("/ws/registers", srv.handleWS)
	http.HandleFunc("/api/acceleration", srv.handleAcceleration)

	log.Printf("register debug server listening on :%d", cfg.WebServerPort)
	return http.ListenAndServe(fmt.Sprintf(":%d", cfg.WebServerPort), nil)
}

// handleWS handles the websocket connection for register debugging.
func (srv *debugServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("regdebug: websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	session := &registerDebugSession{conn: conn, dev: srv.dev}

	// Send the register map on connection.
	if err := session.sendRegisterMap(); err != nil {
		log.Printf("regdebug: error sending register map: %v", err)
		return
	}

	// Message loop
	for {
		var rawMsg map[string]interface{}
		if err := conn.ReadJSON(&rawMsg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("regdebug: websocket error: %v", err)
			}
			break
		}

		action, ok := rawMsg["action"].(string)
		if !ok {
			session.sendError("missing or invalid action field")
			continue
		}

		switch action {
		case "get_map":
			session.sendRegisterMap()
		case "read":
			session.handleRead(rawMsg)
		case "read_all":
			session.handleReadAll()
		case "write":
			session.handleWrite(rawMsg)
		default:
			session.sendError(fmt.Sprintf("unknown action: %s", action))
		}
	}
}

func (s *registerDebugSession) handleRead(rawMsg map[string]interface{}) {
	addr, _ := rawMsg["addr"].(string)
	if addr == "" {
		s.sendError("missing addr field")
		return
	}

	addrByte, err := parseHexAddr(addr)
	if err != nil {
		s.sendError(err.Error())
		return
	}

	value, err := s.dev.ReadRegister(addrByte)
	if err != nil {
		s.sendError(fmt.Sprintf("read error: %v", err))
		return
	}

	s.conn.WriteJSON(registerResponse{
		Type:      "register_data",
		Address:   addr,
		Value:     fmt.Sprintf("0x%02X", value),
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (s *registerDebugSession) handleReadAll() {
	regMap := make(map[string]string)
	for _, info := range mma8451.RegisterMap() {
		addrByte, err := parseHexAddr(info.Address)
		if err != nil {
			s.sendError(err.Error())
			return
		}
		value, err := s.dev.ReadRegister(addrByte)
		if err != nil {
			s.sendError(fmt.Sprintf("read all error at %s: %v", info.Address, err))
			return
		}
		regMap[info.Address] = fmt.Sprintf("0x%02X", value)
	}

	s.conn.WriteJSON(registerResponse{
		Type:      "register_data",
		Registers: regMap,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (s *registerDebugSession) handleWrite(rawMsg map[string]interface{}) {
	addr, _ := rawMsg["addr"].(string)
	valueStr, _ := rawMsg["value"].(string)
	if addr == "" || valueStr == "" {
		s.sendError("missing addr or value field")
		return
	}

	addrByte, err := parseHexAddr(addr)
	if err != nil {
		s.sendError(err.Error())
		return
	}
	valueByte, err := parseHexAddr(valueStr)
	if err != nil {
		s.sendError(fmt.Sprintf("invalid value format: %s", valueStr))
		return
	}

	if !isRegisterWritable(addrByte) {
		s.sendError(fmt.Sprintf("register 0x%02X is not writable", addrByte))
		return
	}

	if err := s.dev.WriteRegister(addrByte, valueByte); err != nil {
		s.sendError(fmt.Sprintf("write error: %v", err))
		return
	}

	s.conn.WriteJSON(registerResponse{
		Type:      "register_data",
		Address:   addr,
		Value:     valueStr,
		Timestamp: time.Now().Format(time.RFC3339),
		Message:   "write successful",
	})
}

func (s *registerDebugSession) sendRegisterMap() error {
	return s.conn.WriteJSON(registerResponse{
		Type:        "register_map",
		RegisterMap: mma8451.RegisterMap(),
	})
}

func (s *registerDebugSession) sendError(message string) {
	s.conn.WriteJSON(registerResponse{
		Type:    "error",
		Message: message,
	})
}

// handleAcceleration serves the live reading as JSON.
func (srv *debugServer) handleAcceleration(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	a, err := srv.dev.Acceleration()
	if err != nil {
		http.Error(w, fmt.Sprintf(`{"error": %q}`, err.Error()), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(accelSample{
		X:    a.X,
		Y:    a.Y,
		Z:    a.Z,
		Time: time.Now().Format(time.RFC3339Nano),
	})
}

func parseHexAddr(s string) (byte, error) {
	var b byte
	if _, err := fmt.Sscanf(s, "0x%X", &b); err != nil {
		return 0, fmt.Errorf("invalid address format: %s", s)
	}
	return b, nil
}

// isRegisterWritable consults the register map metadata; only registers
// marked writable may be poked from the websocket.
func isRegisterWritable(addr byte) bool {
	for _, info := range mma8451.RegisterMap() {
		b, err := parseHexAddr(info.Address)
		if err != nil || b != addr {
			continue
		}
		return info.Access == "RW" || info.Access == "W"
	}
	return false
}
