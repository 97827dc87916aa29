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

package session

import (
	"context"
	"errors"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/scenescan/scenescan/pkg/api/models"
	"github.com/scenescan/scenescan/pkg/scanners"
	"github.com/scenescan/scenescan/pkg/service/permission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRequester struct {
	err   error
	grant bool
}

func (r *stubRequester) RequestCameraAccess(context.Context) (bool, error) {
	return r.grant, r.err
}

type fakeStream struct {
	startErr error
	starts   int
	stops    int
}

func (s *fakeStream) StartDecode() error {
	s.starts++
	return s.startErr
}

func (s *fakeStream) StopDecode() error {
	s.stops++
	return nil
}

type fixture struct {
	session   *Session
	stream    *fakeStream
	requester *stubRequester
	gate      *permission.Gate
	ns        chan models.Notification
	clock     *clockwork.FakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ns := make(chan models.Notification, 32)
	requester := &stubRequester{}
	gate := permission.NewGate(requester, ns)
	stream := &fakeStream{}
	clock := clockwork.NewFakeClock()

	return &fixture{
		session:   New(gate, stream, clock, ns),
		stream:    stream,
		requester: requester,
		gate:      gate,
		ns:        ns,
		clock:     clock,
	}
}

func (f *fixture) grant(t *testing.T) {
	t.Helper()
	f.requester.grant = true
	_, err := f.gate.Request(context.Background())
	require.NoError(t, err)
}

// drain empties the notification channel and returns the methods seen.
func (f *fixture) drain() []string {
	var methods []string
	for {
		select {
		case n := <-f.ns:
			methods = append(methods, n.Method)
		default:
			return methods
		}
	}
}

func frameOf(payloads ...string) *scanners.Frame {
	frame := &scanners.Frame{}
	for _, p := range payloads {
		frame.Candidates = append(frame.Candidates, scanners.Candidate{Payload: p})
	}
	return frame
}

func TestStartRequiresPermission(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	err := f.session.Start()
	require.ErrorIs(t, err, ErrPermissionRequired)

	assert.False(t, f.session.Active())
	assert.Zero(t, f.stream.starts)
}

func TestStartAfterGrant(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.grant(t)
	f.drain()

	require.NoError(t, f.session.Start())

	assert.True(t, f.session.Active())
	assert.Equal(t, 1, f.stream.starts)
	assert.Contains(t, f.drain(), models.NotificationScanStarted)
}

// Denial is not terminal: re-requesting permission after the user relents
// re-enables scanning with no other state reset.
func TestDeniedThenGranted(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.requester.grant = false
	_, err := f.gate.Request(context.Background())
	require.NoError(t, err)
	require.ErrorIs(t, f.session.Start(), ErrPermissionRequired)

	f.grant(t)
	require.NoError(t, f.session.Start())
	assert.True(t, f.session.Active())
}

func TestStartClearsPreviousPayload(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.grant(t)

	require.NoError(t, f.session.Start())
	require.True(t, f.session.OnFrame(frameOf("https://example.com/a.glb"), "test"))

	require.NoError(t, f.session.Start())
	_, held := f.session.Payload()
	assert.False(t, held)
	assert.True(t, f.session.Active())
}

func TestStartDecodeErrorRevertsActive(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.grant(t)
	f.stream.startErr = errors.New("no device")

	require.Error(t, f.session.Start())
	assert.False(t, f.session.Active())
}

func TestOnFrameIgnoredWhenInactive(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.grant(t)

	accepted := f.session.OnFrame(frameOf("https://example.com/a.glb"), "test")
	assert.False(t, accepted)
	_, held := f.session.Payload()
	assert.False(t, held)
}

func TestOnFrameNil(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.grant(t)
	require.NoError(t, f.session.Start())

	assert.False(t, f.session.OnFrame(nil, "test"))
	assert.True(t, f.session.Active())
}

func TestFirstNonEmptyCandidateWins(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.grant(t)
	require.NoError(t, f.session.Start())
	f.drain()

	accepted := f.session.OnFrame(
		frameOf("", "https://example.com/a.glb", "https://example.com/b.glb"),
		"camera",
	)
	require.True(t, accepted)

	payload, held := f.session.Payload()
	assert.True(t, held)
	assert.Equal(t, "https://example.com/a.glb", payload)

	// accepting a payload disarms the session and stops the stream
	assert.False(t, f.session.Active())
	assert.Equal(t, 1, f.stream.stops)
	assert.Contains(t, f.drain(), models.NotificationScanDecoded)

	last := f.session.LastScan()
	assert.Equal(t, "camera", last.Source)
	assert.Equal(t, f.clock.Now(), last.ScanTime)
}

func TestAllEmptyCandidatesNoTransition(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.grant(t)
	require.NoError(t, f.session.Start())

	assert.False(t, f.session.OnFrame(frameOf("", ""), "test"))
	assert.True(t, f.session.Active())
	_, held := f.session.Payload()
	assert.False(t, held)
	assert.Zero(t, f.stream.stops)
}

// Only the first accepted frame wins; later frames arrive inactive and are
// dropped.
func TestSecondFrameDropped(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.grant(t)
	require.NoError(t, f.session.Start())

	require.True(t, f.session.OnFrame(frameOf("https://example.com/a.glb"), "test"))
	assert.False(t, f.session.OnFrame(frameOf("https://example.com/b.glb"), "test"))

	payload, _ := f.session.Payload()
	assert.Equal(t, "https://example.com/a.glb", payload)
}

func TestStopIdempotent(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.grant(t)
	require.NoError(t, f.session.Start())
	f.drain()

	f.session.Stop()
	f.session.Stop()

	assert.False(t, f.session.Active())

	stopped := 0
	for _, m := range f.drain() {
		if m == models.NotificationScanStopped {
			stopped++
		}
	}
	assert.Equal(t, 1, stopped)
}

func TestStopBeforeStart(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	assert.NotPanics(t, f.session.Stop)
	assert.False(t, f.session.Active())
	assert.NotContains(t, f.drain(), models.NotificationScanStopped)
}
