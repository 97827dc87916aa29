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

//go:build linux

package linux

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog/log"
	"github.com/scenescan/scenescan/pkg/config"
	"github.com/scenescan/scenescan/pkg/helpers"
	"github.com/scenescan/scenescan/pkg/platforms"
	"github.com/scenescan/scenescan/pkg/scanners"
	"github.com/scenescan/scenescan/pkg/scanners/file"
)

// launchableSchemes are the URI schemes xdg-open is expected to have a
// handler for on a desktop session. Android-style intent URIs are never
// launchable here, which pushes the viewer chain to its web fallback.
var launchableSchemes = []string{"http", "https"}

type Platform struct {
	cfg *config.Instance
}

func (*Platform) ID() string {
	return platforms.PlatformIDLinux
}

func (p *Platform) StartPre(cfg *config.Instance) error {
	p.cfg = cfg
	return nil
}

func (*Platform) StartPost(*config.Instance) error {
	return nil
}

func (*Platform) Stop() error {
	return nil
}

func (*Platform) Settings() platforms.Settings {
	return platforms.Settings{
		DataDir:   filepath.Join(xdg.DataHome, config.AppName),
		ConfigDir: filepath.Join(xdg.ConfigHome, config.AppName),
		TempDir:   filepath.Join(os.TempDir(), config.AppName),
	}
}

func (*Platform) SupportedScanners(cfg *config.Instance) []scanners.Scanner {
	return []scanners.Scanner{
		file.NewScanner(cfg),
	}
}

// RequestCameraAccess reports granted without prompting. Desktop sessions
// have no runtime camera grant, but routing through the gate keeps the
// state machine identical to hosts that do.
func (*Platform) RequestCameraAccess(context.Context) (bool, error) {
	return true, nil
}

func (p *Platform) CanLaunch(_ context.Context, uri string) bool {
	u, err := url.Parse(uri)
	if err != nil {
		return false
	}

	launchable := false
	for _, scheme := range launchableSchemes {
		if strings.EqualFold(u.Scheme, scheme) {
			launchable = true
			break
		}
	}
	if !launchable {
		return false
	}

	if p.cfg != nil && !helpers.Contains(p.cfg.AllowedSchemes(), strings.ToLower(u.Scheme)) {
		return false
	}

	if _, err := exec.LookPath("xdg-open"); err != nil {
		log.Debug().Err(err).Msg("xdg-open not found, cannot launch URIs")
		return false
	}

	return true
}

// Launch opens the URI with xdg-open, fire-and-forget. The external flag is
// implicit on desktop: the handler always runs outside this process.
func (p *Platform) Launch(ctx context.Context, uri string, _ bool) error {
	if err := helpers.ValidateLaunchURL(uri, launchableSchemes); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, "xdg-open", uri)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open URI handler: %w", err)
	}
	return nil
}
