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

// Package mocks holds shared test doubles for the platform collaborator.
package mocks

import (
	"context"
	"os"
	"sync"

	"github.com/scenescan/scenescan/pkg/config"
	"github.com/scenescan/scenescan/pkg/platforms"
	"github.com/scenescan/scenescan/pkg/scanners"
)

// MockPlatform is a configurable Platform implementation. The zero value
// grants camera access, accepts every launch and records launched URIs.
type MockPlatform struct {
	GrantCamera    bool
	CameraErr      error
	CanLaunchFunc  func(uri string) bool
	LaunchErr      error
	ScannersList   []scanners.Scanner
	mu             sync.Mutex
	launched       []string
	cameraRequests int
}

func NewMockPlatform() *MockPlatform {
	return &MockPlatform{GrantCamera: true}
}

func (*MockPlatform) ID() string {
	return "mock"
}

func (*MockPlatform) StartPre(_ *config.Instance) error {
	return nil
}

func (*MockPlatform) StartPost(_ *config.Instance) error {
	return nil
}

func (*MockPlatform) Stop() error {
	return nil
}

func (*MockPlatform) Settings() platforms.Settings {
	base := os.TempDir()
	return platforms.Settings{
		DataDir:   base,
		ConfigDir: base,
		TempDir:   base,
	}
}

func (m *MockPlatform) SupportedScanners(_ *config.Instance) []scanners.Scanner {
	return m.ScannersList
}

func (m *MockPlatform) RequestCameraAccess(_ context.Context) (bool, error) {
	m.mu.Lock()
	m.cameraRequests++
	m.mu.Unlock()
	return m.GrantCamera, m.CameraErr
}

func (m *MockPlatform) CanLaunch(_ context.Context, uri string) bool {
	if m.CanLaunchFunc == nil {
		return true
	}
	return m.CanLaunchFunc(uri)
}

func (m *MockPlatform) Launch(_ context.Context, uri string, _ bool) error {
	if m.LaunchErr != nil {
		return m.LaunchErr
	}
	m.mu.Lock()
	m.launched = append(m.launched, uri)
	m.mu.Unlock()
	return nil
}

// Launched returns the URIs handed off so far.
func (m *MockPlatform) Launched() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.launched...)
}

// CameraRequests returns how many times the permission prompt fired.
func (m *MockPlatform) CameraRequests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cameraRequests
}
