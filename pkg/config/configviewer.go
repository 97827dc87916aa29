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

// Defaults target Google's Scene Viewer, which handles .glb/.gltf URLs on
// any device with Google Play Services. All of them can be overridden for
// self-hosted or vendor-specific viewers.
const (
	DefaultViewerHost    = "arvr.google.com"
	DefaultViewerPackage = "com.google.android.googlequicksearchbox"
	DefaultViewerMode    = "ar_preferred"
	DefaultViewerTitle   = "3D Model"
)

// Display modes understood by Scene Viewer.
const (
	ViewerModeARPreferred = "ar_preferred"
	ViewerModeAROnly      = "ar_only"
	ViewerMode3DPreferred = "3d_preferred"
	ViewerMode3DOnly      = "3d_only"
)

type Viewer struct {
	Host           string   `toml:"host,omitempty"`
	Package        string   `toml:"package,omitempty"`
	Mode           string   `toml:"mode,omitempty"`
	Title          string   `toml:"title,omitempty"`
	AllowedSchemes []string `toml:"allowed_schemes,omitempty"`
}

func (c *Instance) ViewerHost() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Viewer.Host == "" {
		return DefaultViewerHost
	}
	return c.vals.Viewer.Host
}

func (c *Instance) ViewerPackage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Viewer.Package == "" {
		return DefaultViewerPackage
	}
	return c.vals.Viewer.Package
}

func (c *Instance) ViewerMode() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Viewer.Mode == "" {
		return DefaultViewerMode
	}
	return c.vals.Viewer.Mode
}

func (c *Instance) ViewerTitle() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Viewer.Title == "" {
		return DefaultViewerTitle
	}
	return c.vals.Viewer.Title
}

// AllowedSchemes returns the URI schemes the platform is allowed to hand
// off to an external handler. The intent scheme is always included so the
// native viewer fallback step can be probed.
func (c *Instance) AllowedSchemes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.vals.Viewer.AllowedSchemes) == 0 {
		return []string{"http", "https", "intent"}
	}
	return c.vals.Viewer.AllowedSchemes
}

func (c *Instance) SetViewerMode(mode string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Viewer.Mode = mode
}
