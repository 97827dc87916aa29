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
	"github.com/rs/zerolog/log"
	"github.com/scenescan/scenescan/pkg/api/models"
	"github.com/scenescan/scenescan/pkg/api/notifications"
	"github.com/scenescan/scenescan/pkg/config"
	"github.com/scenescan/scenescan/pkg/scanners"
	"github.com/scenescan/scenescan/pkg/service/session"
	"github.com/scenescan/scenescan/pkg/service/state"
	"github.com/scenescan/scenescan/pkg/viewer"
)

// processScanQueue is the single consumer of the scan queue. It feeds
// frames to the session and, when a payload is accepted, walks the viewer
// chain and reports the outcome. Running launches inline keeps a single
// writer over the scan/launch state.
func processScanQueue(
	st *state.State,
	sess *session.Session,
	cfg *config.Instance,
	sq <-chan scanners.Scan,
) {
	for {
		select {
		case <-st.GetContext().Done():
			log.Debug().Msg("scan queue processor stopped")
			return
		case scan := <-sq:
			if scan.Error != nil {
				log.Error().Err(scan.Error).Msgf("error from scanner: %s", scan.Source)
				continue
			}

			if !sess.OnFrame(scan.Frame, scan.Source) {
				continue
			}

			payload, ok := sess.Payload()
			if !ok {
				continue
			}

			// the chain is rebuilt per launch so settings changes apply
			// without a restart
			chain := viewer.NewChain(st.Platform(), viewer.OptionsFromConfig(cfg))
			outcome, err := chain.Launch(st.GetContext(), payload)
			if err != nil {
				// only possible for an empty payload, which OnFrame
				// already rules out
				log.Error().Err(err).Msg("launch refused")
				continue
			}

			notifyOutcome(st.Notifications, outcome)
		}
	}
}

// notifyOutcome pushes the result of a viewer launch onto the
// notification queue.
func notifyOutcome(ns chan<- models.Notification, outcome viewer.Outcome) {
	if outcome.Launched() {
		notifications.ViewerLaunched(ns, models.ViewerLaunchedParams{
			Via: string(outcome.Via),
			URI: outcome.URI,
		})
		return
	}
	notifications.ViewerFailed(ns, models.ViewerFailedParams{
		Reason:  outcome.Reason,
		Message: viewer.MsgLaunchFailed,
	})
}
