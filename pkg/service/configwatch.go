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
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/scenescan/scenescan/pkg/api/models"
	"github.com/scenescan/scenescan/pkg/api/notifications"
	"github.com/scenescan/scenescan/pkg/config"
)

// watchConfig reloads the config file when it is modified on disk and
// notifies API clients. Watching the parent directory instead of the file
// itself survives editors that replace the file on save.
func watchConfig(ctx context.Context, cfg *config.Instance, ns chan<- models.Notification) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Error().Err(err).Msg("error creating config watcher")
		return
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing config watcher")
		}
	}()

	cfgPath := cfg.Path()
	if err := watcher.Add(filepath.Dir(cfgPath)); err != nil {
		log.Error().Err(err).Msg("error watching config directory")
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Name != cfgPath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			log.Info().Msg("config file changed, reloading")
			if err := cfg.Load(); err != nil {
				log.Error().Err(err).Msg("error reloading config")
				continue
			}
			notifications.SettingsReloaded(ns)
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Error().Err(watchErr).Msg("config watcher error")
		}
	}
}
