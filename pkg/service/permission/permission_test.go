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

package permission

import (
	"context"
	"errors"
	"testing"

	"github.com/scenescan/scenescan/pkg/api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRequester struct {
	err   error
	grant bool
	calls int
}

func (r *stubRequester) RequestCameraAccess(context.Context) (bool, error) {
	r.calls++
	return r.grant, r.err
}

func drain(ns chan models.Notification) []models.Notification {
	var out []models.Notification
	for {
		select {
		case n := <-ns:
			out = append(out, n)
		default:
			return out
		}
	}
}

func TestGateStartsUnknown(t *testing.T) {
	t.Parallel()

	gate := NewGate(&stubRequester{}, make(chan models.Notification, 8))
	assert.Equal(t, Unknown, gate.Current())
	assert.False(t, gate.Granted())
}

func TestRequestGranted(t *testing.T) {
	t.Parallel()

	ns := make(chan models.Notification, 8)
	gate := NewGate(&stubRequester{grant: true}, ns)

	state, err := gate.Request(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Granted, state)
	assert.True(t, gate.Granted())

	notifs := drain(ns)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotificationPermissionUpdated, notifs[0].Method)
}

func TestRequestDenied(t *testing.T) {
	t.Parallel()

	gate := NewGate(&stubRequester{grant: false}, make(chan models.Notification, 8))

	state, err := gate.Request(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Denied, state)
	assert.False(t, gate.Granted())
}

// Denial is never terminal: the same request path can be re-invoked and
// reflects the new answer.
func TestRequestRepeatableAfterDenial(t *testing.T) {
	t.Parallel()

	requester := &stubRequester{grant: false}
	gate := NewGate(requester, make(chan models.Notification, 8))

	_, err := gate.Request(context.Background())
	require.NoError(t, err)
	require.Equal(t, Denied, gate.Current())

	requester.grant = true
	state, err := gate.Request(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Granted, state)
	assert.Equal(t, 2, requester.calls)
}

func TestRequestErrorLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	requester := &stubRequester{grant: true}
	ns := make(chan models.Notification, 8)
	gate := NewGate(requester, ns)

	_, err := gate.Request(context.Background())
	require.NoError(t, err)
	require.Equal(t, Granted, gate.Current())
	drain(ns)

	requester.err = errors.New("prompt unavailable")
	state, err := gate.Request(context.Background())
	require.Error(t, err)
	assert.Equal(t, Granted, state)
	assert.Equal(t, Granted, gate.Current())
	assert.Empty(t, drain(ns))
}

func TestRequestUnchangedStateNoNotification(t *testing.T) {
	t.Parallel()

	ns := make(chan models.Notification, 8)
	gate := NewGate(&stubRequester{grant: true}, ns)

	_, err := gate.Request(context.Background())
	require.NoError(t, err)
	drain(ns)

	_, err = gate.Request(context.Background())
	require.NoError(t, err)
	assert.Empty(t, drain(ns))
}

func TestStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, "denied", Denied.String())
	assert.Equal(t, "granted", Granted.String())
}
