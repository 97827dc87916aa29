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
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/scenescan/scenescan/pkg/api/models"
	"github.com/scenescan/scenescan/pkg/api/models/requests"
	"github.com/scenescan/scenescan/pkg/api/notifications"
	"github.com/scenescan/scenescan/pkg/viewer"
)

// HandleViewerLaunch re-runs the viewer hand-off, either for an explicit
// payload or for the last decoded scan. Requesting a launch with nothing
// scanned is refused before any platform call is made.
func HandleViewerLaunch(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received viewer launch request")

	var params models.LaunchParams
	if len(env.Params) > 0 {
		err := json.Unmarshal(env.Params, &params)
		if err != nil {
			return nil, ErrInvalidParams
		}
	}

	payload := ""
	if params.Payload != nil {
		payload = *params.Payload
	} else if sess := env.State.Session(); sess != nil {
		if last, ok := sess.Payload(); ok {
			payload = last
		}
	}

	if payload == "" {
		return nil, errors.New(viewer.MsgScanFirst)
	}

	chain := viewer.NewChain(env.Platform, viewer.OptionsFromConfig(env.Config))
	outcome, err := chain.Launch(env.State.GetContext(), payload)
	if err != nil {
		return nil, errors.New(viewer.MsgScanFirst)
	}

	resp := models.LaunchResponse{
		Launched: outcome.Launched(),
		Via:      string(outcome.Via),
		URI:      outcome.URI,
		Reason:   outcome.Reason,
	}

	if outcome.Launched() {
		notifications.ViewerLaunched(env.State.Notifications, models.ViewerLaunchedParams{
			Via: string(outcome.Via),
			URI: outcome.URI,
		})
	} else {
		resp.Message = viewer.MsgLaunchFailed
		notifications.ViewerFailed(env.State.Notifications, models.ViewerFailedParams{
			Reason:  outcome.Reason,
			Message: viewer.MsgLaunchFailed,
		})
	}

	return resp, nil
}
