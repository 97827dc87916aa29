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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(t *testing.T) *Instance {
	t.Helper()

	cfg, err := NewConfig(t.TempDir(), BaseDefaults)
	require.NoError(t, err)
	return cfg
}

func TestNewConfigWritesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, CfgFile))
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIPort, cfg.APIPort())
	assert.Equal(t, DefaultViewerHost, cfg.ViewerHost())
	assert.Equal(t, DefaultViewerMode, cfg.ViewerMode())
	assert.Equal(t, DefaultViewerTitle, cfg.ViewerTitle())
	assert.True(t, cfg.AutoConnect())
	assert.False(t, cfg.DebugLogging())
}

func TestSaveGeneratesDeviceID(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)
	assert.NotEmpty(t, cfg.DeviceID())

	// device id is stable across reloads
	id := cfg.DeviceID()
	require.NoError(t, cfg.Load())
	assert.Equal(t, id, cfg.DeviceID())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)

	cfg.SetAPIPort(9000)
	cfg.SetViewerMode(ViewerModeAROnly)
	cfg.SetDebugLogging(true)
	cfg.SetScannerConnections([]ScannersConnect{
		{Driver: "file", Path: "/tmp/scan.txt"},
	})
	require.NoError(t, cfg.Save())

	loaded, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)

	assert.Equal(t, 9000, loaded.APIPort())
	assert.Equal(t, ViewerModeAROnly, loaded.ViewerMode())
	assert.True(t, loaded.DebugLogging())

	devices := loaded.Scanners().Connect
	require.Len(t, devices, 1)
	assert.Equal(t, "file", devices[0].Driver)
	assert.Equal(t, "file:/tmp/scan.txt", devices[0].ConnectionString())
}

func TestLoadRejectsSchemaMismatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)

	err = os.WriteFile(cfg.Path(), []byte("config_schema = 99\n"), 0o600)
	require.NoError(t, err)

	require.Error(t, cfg.Load())
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)

	// file only overrides the port; everything else stays default
	err = os.WriteFile(cfg.Path(), []byte(
		"config_schema = 1\n\n[service]\napi_port = 9123\n",
	), 0o600)
	require.NoError(t, err)
	require.NoError(t, cfg.Load())

	assert.Equal(t, 9123, cfg.APIPort())
	assert.Equal(t, DefaultViewerHost, cfg.ViewerHost())
	assert.True(t, cfg.AutoConnect())
}

func TestEnvOverridesConfigPath(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "custom.toml")
	t.Setenv(CfgEnv, cfgPath)

	cfg, err := NewConfig(t.TempDir(), BaseDefaults)
	require.NoError(t, err)
	assert.Equal(t, cfgPath, cfg.Path())
}
