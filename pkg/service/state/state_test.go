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
	"testing"

	"github.com/scenescan/scenescan/pkg/api/models"
	"github.com/scenescan/scenescan/pkg/config"
	"github.com/scenescan/scenescan/pkg/scanners/testutils"
	"github.com/scenescan/scenescan/pkg/testing/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T) (*State, <-chan models.Notification) {
	t.Helper()
	st, ns := NewState(mocks.NewMockPlatform(), "boot-test")
	t.Cleanup(st.StopService)
	return st, ns
}

func TestSetScannerNotifies(t *testing.T) {
	t.Parallel()

	st, ns := newTestState(t)

	sc := testutils.NewMockScanner()
	require.NoError(t, sc.Open(config.ScannersConnect{Driver: "mock", Path: "/dev/mock0"}, nil))

	st.SetScanner("mock:/dev/mock0", sc)

	n := <-ns
	assert.Equal(t, models.NotificationScannersAdded, n.Method)

	got, ok := st.GetScanner("mock:/dev/mock0")
	require.True(t, ok)
	assert.True(t, got.Connected())
	assert.Len(t, st.ListScanners(), 1)
	assert.Equal(t, []string{"mock:/dev/mock0"}, st.ScannerConnections())
}

// Registering over an existing connection closes the old scanner first.
func TestSetScannerReplacesExisting(t *testing.T) {
	t.Parallel()

	st, ns := newTestState(t)

	oldSc := testutils.NewMockScanner()
	require.NoError(t, oldSc.Open(config.ScannersConnect{Driver: "mock", Path: "/dev/mock0"}, nil))
	newSc := testutils.NewMockScanner()
	require.NoError(t, newSc.Open(config.ScannersConnect{Driver: "mock", Path: "/dev/mock0"}, nil))

	st.SetScanner("mock:/dev/mock0", oldSc)
	<-ns
	st.SetScanner("mock:/dev/mock0", newSc)
	<-ns

	assert.Equal(t, 1, oldSc.CloseCalls)
	assert.Len(t, st.ListScanners(), 1)
}

func TestRemoveScannerClosesAndNotifies(t *testing.T) {
	t.Parallel()

	st, ns := newTestState(t)

	sc := testutils.NewMockScanner()
	require.NoError(t, sc.Open(config.ScannersConnect{Driver: "mock", Path: "/dev/mock0"}, nil))
	st.SetScanner("mock:/dev/mock0", sc)
	<-ns

	st.RemoveScanner("mock:/dev/mock0")

	n := <-ns
	assert.Equal(t, models.NotificationScannersRemoved, n.Method)
	assert.Equal(t, 1, sc.CloseCalls)
	assert.Empty(t, st.ListScanners())

	_, ok := st.GetScanner("mock:/dev/mock0")
	assert.False(t, ok)
}

func TestStopServiceCancelsContext(t *testing.T) {
	t.Parallel()

	st, _ := NewState(mocks.NewMockPlatform(), "boot-test")

	require.False(t, st.ShouldStopService())
	st.StopService()

	assert.True(t, st.ShouldStopService())
	select {
	case <-st.GetContext().Done():
	default:
		t.Fatal("context not cancelled after StopService")
	}
}

func TestBootUUID(t *testing.T) {
	t.Parallel()

	st, _ := newTestState(t)
	assert.Equal(t, "boot-test", st.BootUUID())
	assert.Equal(t, "mock", st.Platform().ID())
}
