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

package platforms

import (
	"context"
	"errors"

	"github.com/scenescan/scenescan/pkg/config"
	"github.com/scenescan/scenescan/pkg/scanners"
)

var ErrNotSupported = errors.New("operation not supported on this platform")

const (
	PlatformIDLinux = "linux"
)

// Settings defines all simple settings/configuration values available for a
// platform.
type Settings struct {
	// DataDir is the root folder where any permanent files are stored.
	DataDir string
	// ConfigDir is the directory where the config file is stored.
	ConfigDir string
	// TempDir is a temporary directory where the logs are stored. Expect it
	// to be deleted.
	TempDir string
}

// Platform is the central interface that defines how the core interacts
// with a host OS. It covers the two collaborators the scan/launch flow
// depends on: the camera permission prompt and the external URI handler.
type Platform interface {
	// ID returns the unique ID of this platform.
	ID() string
	// StartPre runs any necessary platform setup BEFORE the main service
	// has started running.
	StartPre(*config.Instance) error
	// StartPost runs any necessary platform setup AFTER the main service
	// has started running.
	StartPost(*config.Instance) error
	// Stop runs any necessary cleanup tasks before the rest of the service
	// starts shutting down.
	Stop() error
	// Settings returns all simple platform-specific settings such as paths.
	Settings() Settings
	// SupportedScanners returns a list of supported scanner drivers for
	// the platform.
	SupportedScanners(*config.Instance) []scanners.Scanner
	// RequestCameraAccess triggers the OS camera permission prompt and
	// blocks until the user responds. Safe to call repeatedly; reflects
	// the current OS grant state on each call.
	RequestCameraAccess(context.Context) (bool, error)
	// CanLaunch asks the OS whether any installed handler can open the
	// given URI, without opening it.
	CanLaunch(ctx context.Context, uri string) bool
	// Launch opens the URI with its registered handler. When external is
	// true the handler is asked to run outside the calling application's
	// own context.
	Launch(ctx context.Context, uri string, external bool) error
}
