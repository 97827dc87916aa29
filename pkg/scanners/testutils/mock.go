// Scenescan
// Copyright (c) 2026 The Scenescan Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Scenescan.
//
// Scenescan is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Scenescan is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Scenescan.  If not, see <http://www.gnu.org/licenses/>.

// Package testutils provides mock scanner implementations for tests.
package testutils

import (
	"sync"

	"github.com/scenescan/scenescan/pkg/config"
	"github.com/scenescan/scenescan/pkg/scanners"
)

// MockScanner is a scanner driver driven entirely by the test. Frames are
// injected with EmitFrame and delivered on the channel passed to Open.
type MockScanner struct {
	sq        chan<- scanners.Scan
	device    config.ScannersConnect
	mu        sync.Mutex
	connected bool

	OpenErr    error
	CloseCalls int
}

func NewMockScanner() *MockScanner {
	return &MockScanner{}
}

func (*MockScanner) Metadata() scanners.DriverMetadata {
	return scanners.DriverMetadata{
		ID:          "mock",
		Description: "Mock scanner for tests",
	}
}

func (*MockScanner) IDs() []string {
	return []string{"mock"}
}

func (m *MockScanner) Open(device config.ScannersConnect, sq chan<- scanners.Scan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.OpenErr != nil {
		return m.OpenErr
	}
	m.device = device
	m.sq = sq
	m.connected = true
	return nil
}

func (m *MockScanner) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalls++
	m.connected = false
	return nil
}

func (m *MockScanner) Path() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.device.Path
}

func (m *MockScanner) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

func (*MockScanner) Info() string {
	return "mock scanner"
}

// EmitFrame delivers a frame to the scan queue as if it had been decoded
// from the device.
func (m *MockScanner) EmitFrame(frame *scanners.Frame) {
	m.mu.Lock()
	sq := m.sq
	source := m.device.ConnectionString()
	m.mu.Unlock()
	if sq != nil {
		sq <- scanners.Scan{Source: source, Frame: frame}
	}
}
