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

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/scenescan/scenescan/pkg/config"
	"github.com/scenescan/scenescan/pkg/helpers"
	"github.com/scenescan/scenescan/pkg/platforms"
	"github.com/scenescan/scenescan/pkg/scanners"
	"github.com/scenescan/scenescan/pkg/service/session"
	"github.com/scenescan/scenescan/pkg/service/state"
)

const monitorInterval = 5 * time.Second

// scannerStream adapts the configured scanner drivers to the session's
// decode stream control surface. Starting connects every configured device
// that isn't already up; stopping closes and deregisters them all. Both
// directions are idempotent.
type scannerStream struct {
	pl  platforms.Platform
	cfg *config.Instance
	st  *state.State
	sq  chan<- scanners.Scan
}

func newScannerStream(
	pl platforms.Platform,
	cfg *config.Instance,
	st *state.State,
	sq chan<- scanners.Scan,
) *scannerStream {
	return &scannerStream{
		pl:  pl,
		cfg: cfg,
		st:  st,
		sq:  sq,
	}
}

func (ss *scannerStream) StartDecode() error {
	devices := ss.cfg.Scanners().Connect
	if len(devices) == 0 {
		log.Warn().Msg("no scanner devices configured, decode stream is empty")
		return nil
	}

	var lastErr error
	for _, device := range devices {
		conn := device.ConnectionString()
		if sc, ok := ss.st.GetScanner(conn); ok && sc.Connected() {
			continue
		}

		sc, err := ss.connect(device)
		if err != nil {
			log.Error().Err(err).Msgf("error connecting scanner: %s", conn)
			lastErr = err
			continue
		}

		log.Info().Msgf("connected scanner: %s", conn)
		ss.st.SetScanner(conn, sc)
	}

	return lastErr
}

func (ss *scannerStream) connect(device config.ScannersConnect) (scanners.Scanner, error) {
	for _, sc := range ss.pl.SupportedScanners(ss.cfg) {
		if !helpers.Contains(sc.IDs(), device.Driver) {
			continue
		}
		if err := sc.Open(device, ss.sq); err != nil {
			return nil, fmt.Errorf("failed to open scanner: %w", err)
		}
		return sc, nil
	}
	return nil, fmt.Errorf("no driver for scanner: %s", device.Driver)
}

func (ss *scannerStream) StopDecode() error {
	for _, conn := range ss.st.ScannerConnections() {
		ss.st.RemoveScanner(conn)
	}
	return nil
}

// monitor drops scanners that report disconnected and, while a scan is
// active, tries to bring configured devices back up.
func (ss *scannerStream) monitor(ctx context.Context, sess *session.Session) {
	ticker := time.NewTicker(monitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, conn := range ss.st.ScannerConnections() {
				sc, ok := ss.st.GetScanner(conn)
				if ok && sc != nil && !sc.Connected() {
					log.Warn().Msgf("scanner disconnected: %s", conn)
					ss.st.RemoveScanner(conn)
				}
			}

			if sess.Active() && len(ss.cfg.Scanners().Connect) > 0 {
				if err := ss.StartDecode(); err != nil {
					log.Debug().Err(err).Msg("scanner reconnect failed")
				}
			}
		}
	}
}
