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
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/scenescan/scenescan/pkg/api"
	"github.com/scenescan/scenescan/pkg/config"
	"github.com/scenescan/scenescan/pkg/platforms"
	"github.com/scenescan/scenescan/pkg/scanners"
	"github.com/scenescan/scenescan/pkg/service/broker"
	"github.com/scenescan/scenescan/pkg/service/session"
	"github.com/scenescan/scenescan/pkg/service/state"
)

func setupEnvironment(pl platforms.Platform) error {
	log.Info().Msg("creating platform directories")
	dirs := []string{
		pl.Settings().ConfigDir,
		pl.Settings().TempDir,
		pl.Settings().DataDir,
	}
	for _, dir := range dirs {
		err := os.MkdirAll(dir, 0o750)
		if err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// Start brings up the whole core: state, notification broker, scan queue,
// viewer chain and the local API. It returns a function that stops
// everything again.
func Start(
	pl platforms.Platform,
	cfg *config.Instance,
) (stop func() error, err error) {
	log.Info().Msgf("version: %s", config.AppVersion)

	bootUUID := uuid.New().String()
	log.Info().Msgf("boot session UUID: %s", bootUUID)

	st, ns := state.NewState(pl, bootUUID)

	// Broadcast notifications to all consumers
	notifBroker := broker.NewBroker(st.GetContext(), ns)
	notifBroker.Start()

	sq := make(chan scanners.Scan) // scan queue from drivers

	err = setupEnvironment(pl)
	if err != nil {
		log.Error().Err(err).Msg("error setting up environment")
		return nil, err
	}

	log.Info().Msg("running platform pre start")
	err = pl.StartPre(cfg)
	if err != nil {
		log.Error().Err(err).Msg("platform start pre error")
		return nil, fmt.Errorf("platform start pre failed: %w", err)
	}

	log.Info().Msg("initializing scan session")
	stream := newScannerStream(pl, cfg, st, sq)
	sess := session.New(st.Gate(), stream, clockwork.NewRealClock(), st.Notifications)
	st.SetSession(sess)

	log.Info().Msg("starting API service")
	apiNotifications, _ := notifBroker.Subscribe(100)
	go api.Start(pl, cfg, st, apiNotifications)

	log.Info().Msg("starting scan queue processor")
	go processScanQueue(st, sess, cfg, sq)

	log.Info().Msg("starting scanner monitor")
	go stream.monitor(st.GetContext(), sess)

	log.Info().Msg("watching config file for changes")
	go watchConfig(st.GetContext(), cfg, st.Notifications)

	log.Info().Msg("running platform post start")
	err = pl.StartPost(cfg)
	if err != nil {
		log.Error().Err(err).Msg("platform post start error")
		return nil, fmt.Errorf("platform start post failed: %w", err)
	}
	log.Info().Msg("service fully initialized")

	return func() error {
		sess.Stop()
		st.StopService()
		if stopErr := pl.Stop(); stopErr != nil {
			log.Warn().Msgf("error stopping platform: %s", stopErr)
		}
		return nil
	}, nil
}
