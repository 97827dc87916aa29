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

package methods

import (
	"context"
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/scenescan/scenescan/pkg/api/models"
	"github.com/scenescan/scenescan/pkg/api/models/requests"
	"github.com/scenescan/scenescan/pkg/config"
	"github.com/scenescan/scenescan/pkg/scanners"
	"github.com/scenescan/scenescan/pkg/service/session"
	"github.com/scenescan/scenescan/pkg/service/state"
	"github.com/scenescan/scenescan/pkg/testing/mocks"
	"github.com/scenescan/scenescan/pkg/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopStream struct{}

func (nopStream) StartDecode() error { return nil }
func (nopStream) StopDecode() error  { return nil }

type env struct {
	requests.RequestEnv
	platform *mocks.MockPlatform
	state    *state.State
	ns       <-chan models.Notification
	session  *session.Session
}

func newEnv(t *testing.T) *env {
	t.Helper()

	pl := mocks.NewMockPlatform()
	cfg, err := config.NewConfig(t.TempDir(), config.BaseDefaults)
	require.NoError(t, err)

	st, ns := state.NewState(pl, "boot-test")
	t.Cleanup(st.StopService)

	sess := session.New(st.Gate(), nopStream{}, clockwork.NewFakeClock(), st.Notifications)
	st.SetSession(sess)

	return &env{
		RequestEnv: requests.RequestEnv{
			Platform: pl,
			Config:   cfg,
			State:    st,
			IsLocal:  true,
		},
		platform: pl,
		state:    st,
		ns:       ns,
		session:  sess,
	}
}

func (e *env) grantAndScan(t *testing.T, payload string) {
	t.Helper()

	_, err := e.state.Gate().Request(context.Background())
	require.NoError(t, err)
	require.NoError(t, e.session.Start())
	require.True(t, e.session.OnFrame(&scanners.Frame{
		Candidates: []scanners.Candidate{{Payload: payload}},
	}, "test"))
}

func (e *env) drain() []string {
	var methods []string
	for {
		select {
		case n := <-e.ns:
			methods = append(methods, n.Method)
		default:
			return methods
		}
	}
}

func TestHandlePermissionRequest(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	resp, err := HandlePermissionRequest(e.RequestEnv)
	require.NoError(t, err)

	params, ok := resp.(models.PermissionParams)
	require.True(t, ok)
	assert.Equal(t, "granted", params.State)
	assert.Equal(t, 1, e.platform.CameraRequests())
}

func TestHandleScanStartRequiresPermission(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	_, err := HandleScanStart(e.RequestEnv)
	require.ErrorIs(t, err, session.ErrPermissionRequired)
	assert.False(t, e.session.Active())
}

func TestHandleScanStartStop(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	_, err := e.state.Gate().Request(context.Background())
	require.NoError(t, err)

	_, err = HandleScanStart(e.RequestEnv)
	require.NoError(t, err)
	assert.True(t, e.session.Active())

	_, err = HandleScanStop(e.RequestEnv)
	require.NoError(t, err)
	assert.False(t, e.session.Active())
}

// Launch with nothing scanned must refuse locally with the exact user
// message and never touch the platform.
func TestHandleViewerLaunchWithoutScan(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	_, err := HandleViewerLaunch(e.RequestEnv)
	require.Error(t, err)
	assert.Equal(t, viewer.MsgScanFirst, err.Error())
	assert.Empty(t, e.platform.Launched())
}

func TestHandleViewerLaunchExplicitPayload(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.RequestEnv.Params = []byte(`{"payload":"https://example.com/model.glb"}`)

	resp, err := HandleViewerLaunch(e.RequestEnv)
	require.NoError(t, err)

	launch, ok := resp.(models.LaunchResponse)
	require.True(t, ok)
	assert.True(t, launch.Launched)
	assert.Equal(t, string(viewer.ViaNativeIntent), launch.Via)
	assert.True(t, strings.HasPrefix(launch.URI, "intent://"))

	require.Len(t, e.platform.Launched(), 1)
	assert.Contains(t, e.drain(), models.NotificationViewerLaunched)
}

func TestHandleViewerLaunchUsesLastScan(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.grantAndScan(t, "https://example.com/model.glb")
	e.drain()

	resp, err := HandleViewerLaunch(e.RequestEnv)
	require.NoError(t, err)

	launch, ok := resp.(models.LaunchResponse)
	require.True(t, ok)
	assert.True(t, launch.Launched)
	assert.Contains(t, launch.URI, "file=https%3A%2F%2Fexample.com%2Fmodel.glb")
}

func TestHandleViewerLaunchNoHandler(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.platform.CanLaunchFunc = func(string) bool { return false }
	e.RequestEnv.Params = []byte(`{"payload":"https://example.com/model.glb"}`)

	resp, err := HandleViewerLaunch(e.RequestEnv)
	require.NoError(t, err)

	launch, ok := resp.(models.LaunchResponse)
	require.True(t, ok)
	assert.False(t, launch.Launched)
	assert.Equal(t, viewer.ReasonNoHandler, launch.Reason)
	assert.Equal(t, viewer.MsgLaunchFailed, launch.Message)
	assert.Contains(t, e.drain(), models.NotificationViewerFailed)
}

func TestHandleStatus(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	resp, err := HandleStatus(e.RequestEnv)
	require.NoError(t, err)

	status, ok := resp.(models.StatusResponse)
	require.True(t, ok)
	assert.Equal(t, "unknown", status.Permission)
	assert.False(t, status.Scanning)
	assert.Empty(t, status.LastPayload)
	assert.Empty(t, status.Scanners)
}

func TestHandleStatusAfterScan(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.grantAndScan(t, "https://example.com/model.glb")

	resp, err := HandleStatus(e.RequestEnv)
	require.NoError(t, err)

	status, ok := resp.(models.StatusResponse)
	require.True(t, ok)
	assert.Equal(t, "granted", status.Permission)
	assert.False(t, status.Scanning)
	assert.Equal(t, "https://example.com/model.glb", status.LastPayload)
}

func TestHandleSettingsUpdate(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.RequestEnv.Params = []byte(`{"debugLogging":true,"viewerMode":"ar_only"}`)

	_, err := HandleSettingsUpdate(e.RequestEnv)
	require.NoError(t, err)

	assert.True(t, e.Config.DebugLogging())
	assert.Equal(t, config.ViewerModeAROnly, e.Config.ViewerMode())
}

func TestHandleSettingsUpdateRejectsUnknownMode(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.RequestEnv.Params = []byte(`{"viewerMode":"spin"}`)

	_, err := HandleSettingsUpdate(e.RequestEnv)
	require.ErrorIs(t, err, ErrInvalidParams)
}

func TestHandleSettingsUpdateMissingParams(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	_, err := HandleSettingsUpdate(e.RequestEnv)
	require.ErrorIs(t, err, ErrMissingParams)
}

func TestHandleVersion(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	resp, err := HandleVersion(e.RequestEnv)
	require.NoError(t, err)

	version, ok := resp.(models.VersionResponse)
	require.True(t, ok)
	assert.Equal(t, config.AppVersion, version.Version)
	assert.Equal(t, "mock", version.Platform)
}
