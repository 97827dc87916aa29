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

package state

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/scenescan/scenescan/pkg/api/models"
	"github.com/scenescan/scenescan/pkg/api/notifications"
	"github.com/scenescan/scenescan/pkg/helpers/syncutil"
	"github.com/scenescan/scenescan/pkg/platforms"
	"github.com/scenescan/scenescan/pkg/scanners"
	"github.com/scenescan/scenescan/pkg/service/permission"
	"github.com/scenescan/scenescan/pkg/service/session"
)

// State holds the runtime state of the Scenescan service.
//
// LOCKING RULES: The mu mutex protects all mutable fields. To prevent
// deadlocks:
//   - Never send to channels while holding the lock (notifications)
//   - Never call external methods (scanner.Close) results into callbacks
//     while holding the lock
//   - Pattern: lock, modify state, copy needed data, unlock, send
//     notifications
type State struct {
	platform      platforms.Platform
	ctx           context.Context
	ctxCancelFunc context.CancelFunc
	gate          *permission.Gate
	session       *session.Session
	scanners      map[string]scanners.Scanner
	Notifications chan<- models.Notification
	bootUUID      string
	mu            syncutil.RWMutex
	stopService   bool
}

func NewState(platform platforms.Platform, bootUUID string) (state *State, notificationCh <-chan models.Notification) {
	// Buffer headroom so bursts of frame/launch notifications never block
	// the scan path.
	ns := make(chan models.Notification, 500)
	ctx, ctxCancelFunc := context.WithCancel(context.Background())
	return &State{
		platform:      platform,
		scanners:      make(map[string]scanners.Scanner),
		Notifications: ns,
		ctx:           ctx,
		ctxCancelFunc: ctxCancelFunc,
		gate:          permission.NewGate(platform, ns),
		bootUUID:      bootUUID,
	}, ns
}

func (s *State) Gate() *permission.Gate {
	return s.gate
}

// SetSession attaches the scan session. Called once during service startup
// after the decode stream is wired up.
func (s *State) SetSession(sess *session.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = sess
}

func (s *State) Session() *session.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// GetScanner returns the Scanner registered for a connection string.
func (s *State) GetScanner(connection string) (scanners.Scanner, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, ok := s.scanners[connection]
	return sc, ok
}

// SetScanner registers a scanner using its connection string as the key.
// If a scanner with the same connection exists, it is closed first.
func (s *State) SetScanner(connection string, scanner scanners.Scanner) {
	s.mu.Lock()

	existing, ok := s.scanners[connection]
	if ok && existing != nil {
		err := existing.Close()
		if err != nil {
			log.Warn().Err(err).Msg("error closing existing scanner")
		}
	}

	s.scanners[connection] = scanner

	// Prepare payload inside lock
	payload := models.ScannerResponse{
		Connected: true,
		Driver:    scanner.Metadata().ID,
		Path:      scanner.Path(),
	}

	s.mu.Unlock()

	// Send notification outside lock to prevent deadlock
	notifications.ScannersAdded(s.Notifications, payload)
}

// RemoveScanner removes a scanner by its connection string and closes it.
func (s *State) RemoveScanner(connection string) {
	s.mu.Lock()

	sc, ok := s.scanners[connection]
	var driverID, path string
	if ok && sc != nil {
		driverID = sc.Metadata().ID
		path = sc.Path()
		err := sc.Close()
		if err != nil {
			log.Warn().Err(err).Msg("error closing scanner")
		}
	}
	delete(s.scanners, connection)

	// Prepare payload inside lock
	payload := models.ScannerResponse{
		Connected: false,
		Driver:    driverID,
		Path:      path,
	}

	s.mu.Unlock()

	// Send notification outside lock to prevent deadlock
	notifications.ScannersRemoved(s.Notifications, payload)
}

// ListScanners returns all registered Scanner instances.
func (s *State) ListScanners() []scanners.Scanner {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scs := make([]scanners.Scanner, 0, len(s.scanners))
	for _, sc := range s.scanners {
		scs = append(scs, sc)
	}

	return scs
}

// ScannerConnections returns the connection strings of all registered
// scanners.
func (s *State) ScannerConnections() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conns := make([]string, 0, len(s.scanners))
	for conn := range s.scanners {
		conns = append(conns, conn)
	}

	return conns
}

func (s *State) StopService() {
	s.mu.Lock()
	s.stopService = true
	s.mu.Unlock()
	s.ctxCancelFunc()
}

func (s *State) ShouldStopService() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stopService
}

func (s *State) GetContext() context.Context {
	return s.ctx
}

func (s *State) Platform() platforms.Platform {
	return s.platform
}

func (s *State) BootUUID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bootUUID
}
