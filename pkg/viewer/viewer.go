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

// Package viewer hands a decoded model URL off to an AR viewer. It tries a
// native scene viewer intent first, then the viewer's web URL, then the raw
// payload in a browser, and reports which hand-off stuck.
package viewer

import (
	"errors"

	"github.com/scenescan/scenescan/pkg/config"
)

// Via identifies which hand-off route a launch went through.
type Via string

const (
	ViaNativeIntent Via = "native_intent"
	ViaWebViewer    Via = "web_viewer"
	ViaBrowser      Via = "browser"
)

// User-facing strings. These are part of the observable contract and
// asserted by end-to-end tests, change with care.
const (
	MsgScanFirst    = "Please scan a QR code first"
	MsgLaunchFailed = "Could not launch AR viewer"
)

// ReasonNoHandler is the failure reason when every fallback step reported
// no launchable handler.
const ReasonNoHandler = "no handler available"

// ErrNoPayload is returned when a launch is requested without a completed
// scan. It is a local precondition failure: no collaborator is contacted.
var ErrNoPayload = errors.New("no payload to launch")

// Outcome is the result of one walk down the fallback chain. Zero Via
// means the launch failed with Reason set.
type Outcome struct {
	Via    Via
	URI    string
	Reason string
}

// Launched returns true if any hand-off route accepted the payload.
func (o Outcome) Launched() bool {
	return o.Via != ""
}

func failed(reason string) Outcome {
	return Outcome{Reason: reason}
}

// Options describe the target viewer. Zero values fall back to the stock
// Scene Viewer hand-off.
type Options struct {
	// Host serves both the native scene viewer deep link and its web URL.
	Host string
	// Package is the Android package the native intent is scoped to.
	Package string
	// Mode is the viewer display mode query value.
	Mode string
	// Title is the display title passed to the viewer.
	Title string
}

func (o Options) withDefaults() Options {
	if o.Host == "" {
		o.Host = config.DefaultViewerHost
	}
	if o.Package == "" {
		o.Package = config.DefaultViewerPackage
	}
	if o.Mode == "" {
		o.Mode = config.DefaultViewerMode
	}
	if o.Title == "" {
		o.Title = config.DefaultViewerTitle
	}
	return o
}

// OptionsFromConfig reads the viewer settings from a config instance.
func OptionsFromConfig(cfg *config.Instance) Options {
	return Options{
		Host:    cfg.ViewerHost(),
		Package: cfg.ViewerPackage(),
		Mode:    cfg.ViewerMode(),
		Title:   cfg.ViewerTitle(),
	}
}
