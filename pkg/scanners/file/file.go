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

// Package file implements a scanner driver backed by a plain text file.
// Each non-empty line of the file is treated as a decode candidate, so a
// frame with multiple candidates can be simulated by writing multiple
// lines. It stands in for a camera decoder on hosts without one and backs
// the end-to-end tests.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/scenescan/scenescan/pkg/config"
	"github.com/scenescan/scenescan/pkg/helpers"
	"github.com/scenescan/scenescan/pkg/scanners"
)

const pollInterval = 100 * time.Millisecond

type Scanner struct {
	cfg     *config.Instance
	device  config.ScannersConnect
	path    string
	polling bool
}

func NewScanner(cfg *config.Instance) *Scanner {
	return &Scanner{
		cfg: cfg,
	}
}

func (*Scanner) Metadata() scanners.DriverMetadata {
	return scanners.DriverMetadata{
		ID:             "file",
		Description:    "Text file decode stream",
		DefaultEnabled: true,
	}
}

func (*Scanner) IDs() []string {
	return []string{"file"}
}

func (s *Scanner) Open(device config.ScannersConnect, sq chan<- scanners.Scan) error {
	if !helpers.Contains(s.IDs(), device.Driver) {
		return errors.New("invalid scanner id: " + device.Driver)
	}

	path := device.Path

	if !filepath.IsAbs(path) {
		return errors.New("invalid device path, must be absolute")
	}

	parent := filepath.Dir(path)
	if parent == "" {
		return errors.New("invalid device path")
	}

	if _, err := os.Stat(parent); err != nil {
		return fmt.Errorf("failed to stat parent directory: %w", err)
	}

	if _, err := os.Stat(path); err != nil {
		// attempt to create empty file
		//nolint:gosec // Safe: creates decode stream files in controlled directories
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create file: %w", err)
		}
		_ = f.Close()
	}

	s.device = device
	s.path = path
	s.polling = true

	go func() {
		var last string

		for s.polling {
			time.Sleep(pollInterval)

			contents, err := os.ReadFile(s.path)
			if err != nil {
				sq <- scanners.Scan{
					Source: s.device.ConnectionString(),
					Error:  err,
				}
				continue
			}

			text := strings.TrimSpace(string(contents))

			// an empty file resets the stream so the same code can be
			// presented again
			if text == "" {
				last = ""
				continue
			}

			if text == last {
				continue
			}
			last = text

			frame := &scanners.Frame{
				DecodeTime: time.Now(),
			}
			for _, line := range strings.Split(text, "\n") {
				frame.Candidates = append(frame.Candidates, scanners.Candidate{
					Payload: strings.TrimSpace(line),
				})
			}

			log.Debug().Msgf("new frame with %d candidates", len(frame.Candidates))
			sq <- scanners.Scan{
				Source: s.device.ConnectionString(),
				Frame:  frame,
			}
		}
	}()

	return nil
}

func (s *Scanner) Close() error {
	s.polling = false
	return nil
}

func (s *Scanner) Path() string {
	return s.path
}

func (s *Scanner) Connected() bool {
	return s.polling
}

func (s *Scanner) Info() string {
	return s.path
}
