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

// Package session owns the scan-active state and the last decoded payload.
// An active session and a held payload are mutually exclusive: accepting a
// payload always stops scanning.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/scenescan/scenescan/pkg/api/models"
	"github.com/scenescan/scenescan/pkg/api/notifications"
	"github.com/scenescan/scenescan/pkg/helpers/syncutil"
	"github.com/scenescan/scenescan/pkg/scanners"
	"github.com/scenescan/scenescan/pkg/service/permission"
)

// ErrPermissionRequired is returned by Start when camera access has not
// been granted. The scan surface stays disabled until the gate reports
// granted; re-requesting permission is the retry affordance.
var ErrPermissionRequired = errors.New("camera permission not granted")

// Stream is the decode stream control surface. Both calls are idempotent:
// stopping an already-stopped stream is a no-op, not an error.
type Stream interface {
	StartDecode() error
	StopDecode() error
}

type Session struct {
	gate      *permission.Gate
	stream    Stream
	clock     clockwork.Clock
	ns        chan<- models.Notification
	decodedAt time.Time
	payload   string
	source    string
	mu        syncutil.RWMutex
	active    bool
}

func New(
	gate *permission.Gate,
	stream Stream,
	clock clockwork.Clock,
	ns chan<- models.Notification,
) *Session {
	return &Session{
		gate:   gate,
		stream: stream,
		clock:  clock,
		ns:     ns,
	}
}

// Start arms the session and enables the decode stream. It refuses to arm
// unless camera access is granted, clears any previously held payload and
// is safe to call while already scanning.
func (s *Session) Start() error {
	if !s.gate.Granted() {
		return ErrPermissionRequired
	}

	s.mu.Lock()
	s.active = true
	s.payload = ""
	s.source = ""
	s.decodedAt = time.Time{}
	s.mu.Unlock()

	if err := s.stream.StartDecode(); err != nil {
		s.mu.Lock()
		s.active = false
		s.mu.Unlock()
		return fmt.Errorf("failed to start decode stream: %w", err)
	}

	notifications.ScanStarted(s.ns)
	return nil
}

// OnFrame consumes one decode pass from the stream. Frames arriving while
// the session is inactive are dropped entirely, which covers stale frames
// still in flight after a stop. The first candidate with a non-empty
// payload wins; frames with only empty candidates cause no transition.
// Returns true if a payload was accepted.
func (s *Session) OnFrame(frame *scanners.Frame, source string) bool {
	if frame == nil {
		return false
	}

	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return false
	}

	payload, ok := frame.FirstPayload()
	if !ok {
		s.mu.Unlock()
		return false
	}

	s.payload = payload
	s.source = source
	s.decodedAt = s.clock.Now()
	s.active = false

	// Prepare notification payload inside lock, send outside.
	params := models.ScanDecodedParams{
		Payload:  payload,
		Source:   source,
		ScanTime: s.decodedAt,
	}
	s.mu.Unlock()

	if err := s.stream.StopDecode(); err != nil {
		log.Warn().Err(err).Msg("error stopping decode stream after scan")
	}

	notifications.ScanDecoded(s.ns, params)
	return true
}

// Stop disarms the session unconditionally. Stopping an already-stopped
// session is a no-op.
func (s *Session) Stop() {
	s.mu.Lock()
	wasActive := s.active
	s.active = false
	s.mu.Unlock()

	if err := s.stream.StopDecode(); err != nil {
		log.Warn().Err(err).Msg("error stopping decode stream")
	}

	if wasActive {
		notifications.ScanStopped(s.ns)
	}
}

func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Payload returns the last decoded payload and whether one is held.
func (s *Session) Payload() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.payload, s.payload != ""
}

// LastScan returns the details of the last accepted decode.
func (s *Session) LastScan() models.ScanDecodedParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.ScanDecodedParams{
		Payload:  s.payload,
		Source:   s.source,
		ScanTime: s.decodedAt,
	}
}
