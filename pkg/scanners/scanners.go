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

package scanners

import (
	"time"

	"github.com/scenescan/scenescan/pkg/config"
)

type DriverMetadata struct {
	ID             string
	Description    string
	DefaultEnabled bool
}

// Candidate is a single barcode decode candidate within a frame. A frame
// may contain several candidates when multiple codes are visible at once.
type Candidate struct {
	Payload string
}

// Frame is one decode pass over a camera frame, with its candidates in the
// order the decoder reported them.
type Frame struct {
	DecodeTime time.Time
	Candidates []Candidate
}

// FirstPayload returns the payload of the first candidate with a non-empty
// payload, or false if the frame has none.
func (f *Frame) FirstPayload() (string, bool) {
	for _, c := range f.Candidates {
		if c.Payload != "" {
			return c.Payload, true
		}
	}
	return "", false
}

type Scan struct {
	Error  error
	Frame  *Frame
	Source string
}

type Scanner interface {
	// Metadata returns static configuration for this driver.
	Metadata() DriverMetadata
	// IDs returns the device string prefixes supported by this scanner.
	IDs() []string
	// Open any necessary connections to the device and start the decode
	// stream. Takes a device connection string and a channel to send
	// decoded frames.
	Open(config.ScannersConnect, chan<- Scan) error
	// Close any open connections to the device and stop the decode stream.
	// Closing an already-closed scanner is a no-op.
	Close() error
	// Path returns the device connection path.
	Path() string
	// Connected returns true if the device is connected and decoding.
	Connected() bool
	// Info returns a string with information about the connected device.
	Info() string
}
