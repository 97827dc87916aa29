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

package config

import "fmt"

type Scanners struct {
	Connect     []ScannersConnect `toml:"connect,omitempty"`
	AutoConnect bool              `toml:"auto_connect"`
}

type ScannersConnect struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path,omitempty"`
}

func (s ScannersConnect) ConnectionString() string {
	return fmt.Sprintf("%s:%s", s.Driver, s.Path)
}

func (c *Instance) Scanners() Scanners {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Scanners
}

func (c *Instance) AutoConnect() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Scanners.AutoConnect
}

func (c *Instance) SetScannerConnections(scs []ScannersConnect) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Scanners.Connect = scs
}
