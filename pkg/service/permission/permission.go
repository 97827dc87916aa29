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

// Package permission tracks the camera authorization state that gates the
// scan surface.
package permission

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/scenescan/scenescan/pkg/api/models"
	"github.com/scenescan/scenescan/pkg/api/notifications"
	"github.com/scenescan/scenescan/pkg/helpers/syncutil"
)

type State int

const (
	Unknown State = iota
	Denied
	Granted
)

func (s State) String() string {
	switch s {
	case Denied:
		return "denied"
	case Granted:
		return "granted"
	default:
		return "unknown"
	}
}

// Requester is the OS permission collaborator: a single request/response
// prompt with no streaming.
type Requester interface {
	RequestCameraAccess(context.Context) (bool, error)
}

// Gate requests and tracks camera authorization. The state is in-memory
// only and scoped to the service lifetime.
type Gate struct {
	requester Requester
	ns        chan<- models.Notification
	mu        syncutil.RWMutex
	state     State
}

func NewGate(requester Requester, ns chan<- models.Notification) *Gate {
	return &Gate{
		requester: requester,
		ns:        ns,
	}
}

// Request triggers the OS permission prompt and records the result. It is
// idempotent: calling it again after a denial re-prompts (or reflects the
// current OS grant) and never fails on repeated calls. If the collaborator
// itself errors the recorded state is left untouched.
func (g *Gate) Request(ctx context.Context) (State, error) {
	granted, err := g.requester.RequestCameraAccess(ctx)
	if err != nil {
		log.Error().Err(err).Msg("camera permission request failed")
		return g.Current(), err
	}

	newState := Denied
	if granted {
		newState = Granted
	}

	g.mu.Lock()
	changed := g.state != newState
	g.state = newState
	g.mu.Unlock()

	// Notify outside the lock.
	if changed {
		notifications.PermissionUpdated(g.ns, newState.String())
	}

	return newState, nil
}

func (g *Gate) Current() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

func (g *Gate) Granted() bool {
	return g.Current() == Granted
}
